package search

// FilterSchema describes one facet for the frontend search form builder.
type FilterSchema struct {
	Type       string             `json:"type"`
	Items      *FilterSchemaItems `json:"items,omitempty"`
	Properties map[string]any     `json:"properties,omitempty"`
	Title      string             `json:"title"`
	XAttrs     map[string]any     `json:"x-attrs"`
}

// FilterSchemaItems describes the element type of an array facet.
type FilterSchemaItems struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

func chipItems() *FilterSchemaItems {
	return &FilterSchemaItems{
		Type: "object",
		Properties: map[string]any{
			"id":    map[string]any{"type": "integer"},
			"label": map[string]any{"type": "string"},
		},
	}
}

func chipAttrs(label, format, source string, order int, allowUnknown bool) map[string]any {
	return map[string]any{
		"field_format":          format,
		"field_type":            "chips",
		"dynamic_autosuggest":   true,
		"allow_unknown_entries": allowUnknown,
		"source":                "/api/v1/autocomplete?type=" + source,
		"placeholder":           "Enter " + label,
		"order":                 order,
	}
}

// FiltersSchema returns the static facet schema for GET /search/filters. The
// keys and x-attrs drive the search form in the frontend.
func FiltersSchema() map[string]FilterSchema {
	return map[string]FilterSchema{
		FacetTitle: {
			Type:   "array",
			Items:  chipItems(),
			Title:  "Title",
			XAttrs: chipAttrs("Title", "half", "titles", 1, true),
		},
		FacetArtists: {
			Type:   "array",
			Items:  chipItems(),
			Title:  "Artist",
			XAttrs: chipAttrs("Artist", "half", "artists", 2, true),
		},
		FacetPlaceOfProduction: {
			Type:   "array",
			Items:  chipItems(),
			Title:  "Place of Production",
			XAttrs: chipAttrs("Place of Production", "third", "locations", 3, true),
		},
		FacetLocation: {
			Type:   "array",
			Items:  chipItems(),
			Title:  "Location",
			XAttrs: chipAttrs("Location", "third", "locations", 4, true),
		},
		FacetKeywords: {
			Type:   "array",
			Items:  chipItems(),
			Title:  "Keywords",
			XAttrs: chipAttrs("Keywords", "third", "keywords", 5, false),
		},
		FacetDate: {
			Type: "object",
			Properties: map[string]any{
				"date_from": map[string]any{"type": "string"},
				"date_to":   map[string]any{"type": "string"},
			},
			Title: "Date from, to",
			XAttrs: map[string]any{
				"field_format": "full",
				"field_type":   "date",
				"date_format":  "year",
				"placeholder":  map[string]any{"date": "Enter Year"},
				"order":        6,
			},
		},
	}
}
