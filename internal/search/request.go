package search

import (
	"encoding/json"
	"fmt"
	"strconv"

	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

// DefaultLimit is the page size applied when a search request carries none.
const DefaultLimit = 30

// Facet keys accepted in a search request (closed set).
const (
	FacetTitle             = "title"
	FacetArtists           = "artists"
	FacetPlaceOfProduction = "place_of_production"
	FacetLocation          = "location"
	FacetKeywords          = "keywords"
	FacetDate              = "date"
)

// FacetKeys lists all valid facet keys in schema order.
var FacetKeys = []string{
	FacetTitle,
	FacetArtists,
	FacetPlaceOfProduction,
	FacetLocation,
	FacetKeywords,
	FacetDate,
}

// Request is the wire shape of POST /search.
type Request struct {
	Q       string   `json:"q"`
	Limit   *int     `json:"limit,omitempty"`
	Offset  *int     `json:"offset,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
	Filters []Filter `json:"filters,omitempty"`
}

// Filter is one facet of a search request. FilterValues is an array of
// strings and {"id": N} objects for every facet except date, which carries a
// single {"date_from", "date_to"} object.
type Filter struct {
	ID           string          `json:"id"`
	FilterValues json.RawMessage `json:"filter_values"`
}

// Value is one parsed facet value: either free text or a reference.
// References are artwork IDs on the title facet and numeric IDs elsewhere.
type Value struct {
	Text      string
	ID        int64
	ArtworkID string
}

// IsRef reports whether the value is a reference rather than free text.
func (v Value) IsRef() bool {
	return v.ID != 0 || v.ArtworkID != ""
}

// DateRange is the parsed date facet. At least one bound is set.
type DateRange struct {
	From *int
	To   *int
}

// Criteria is a fully validated search request, ready for the repository.
type Criteria struct {
	Q       string
	Limit   int
	Offset  int
	Exclude []string

	Title             []Value
	Artists           []Value
	PlaceOfProduction []Value
	Location          []Value
	Keywords          []Value
	Date              *DateRange
}

// HasFilters reports whether any facet filter is active.
func (c *Criteria) HasFilters() bool {
	return len(c.Title) > 0 || len(c.Artists) > 0 || len(c.PlaceOfProduction) > 0 ||
		len(c.Location) > 0 || len(c.Keywords) > 0 || c.Date != nil
}

// Parse validates the request and converts it into Criteria. All validation
// failures return an INVALID_INPUT error; a request never yields partial
// results.
func Parse(req *Request) (*Criteria, error) {
	c := &Criteria{
		Q:       req.Q,
		Limit:   DefaultLimit,
		Offset:  0,
		Exclude: req.Exclude,
	}

	if req.Limit != nil {
		if *req.Limit <= 0 {
			return nil, apperrors.InvalidInput("limit must be a positive integer")
		}
		c.Limit = *req.Limit
	}
	if req.Offset != nil {
		if *req.Offset < 0 {
			return nil, apperrors.InvalidInput("offset must be a non-negative integer")
		}
		c.Offset = *req.Offset
	}

	for _, f := range req.Filters {
		switch f.ID {
		case FacetTitle:
			values, err := parseValues(f.ID, f.FilterValues, true)
			if err != nil {
				return nil, err
			}
			c.Title = append(c.Title, values...)
		case FacetArtists:
			values, err := parseValues(f.ID, f.FilterValues, false)
			if err != nil {
				return nil, err
			}
			c.Artists = append(c.Artists, values...)
		case FacetPlaceOfProduction:
			values, err := parseValues(f.ID, f.FilterValues, false)
			if err != nil {
				return nil, err
			}
			c.PlaceOfProduction = append(c.PlaceOfProduction, values...)
		case FacetLocation:
			values, err := parseValues(f.ID, f.FilterValues, false)
			if err != nil {
				return nil, err
			}
			c.Location = append(c.Location, values...)
		case FacetKeywords:
			values, err := parseValues(f.ID, f.FilterValues, false)
			if err != nil {
				return nil, err
			}
			c.Keywords = append(c.Keywords, values...)
		case FacetDate:
			dr, err := parseDate(f.FilterValues)
			if err != nil {
				return nil, err
			}
			c.Date = dr
		default:
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid filter id %q", f.ID))
		}
	}

	return c, nil
}

// refValue is the {"id": N} form of a facet value. The ID is numeric for
// persons and taxonomy nodes and a string for artworks, so it is decoded
// leniently and validated per facet.
type refValue struct {
	ID json.RawMessage `json:"id"`
}

func parseValues(facet string, raw json.RawMessage, artworkRefs bool) ([]Value, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("filter_values for %s filter must be an array", facet))
	}

	values := make([]Value, 0, len(items))
	for _, item := range items {
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			if text == "" {
				return nil, invalidValue(facet)
			}
			values = append(values, Value{Text: text})
			continue
		}

		var ref refValue
		if err := json.Unmarshal(item, &ref); err != nil || ref.ID == nil {
			return nil, invalidValue(facet)
		}

		if artworkRefs {
			id, err := parseStringOrNumber(ref.ID)
			if err != nil || id == "" {
				return nil, invalidValue(facet)
			}
			values = append(values, Value{ArtworkID: id})
			continue
		}

		var id int64
		if err := json.Unmarshal(ref.ID, &id); err != nil || id <= 0 {
			return nil, invalidValue(facet)
		}
		values = append(values, Value{ID: id})
	}

	return values, nil
}

// parseStringOrNumber accepts both "abc" and plain numbers as an ID value and
// returns its string form.
func parseStringOrNumber(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

// dateBound accepts the year as either a JSON string or a number.
type dateBound struct {
	DateFrom json.RawMessage `json:"date_from"`
	DateTo   json.RawMessage `json:"date_to"`
}

func parseDate(raw json.RawMessage) (*DateRange, error) {
	var bounds dateBound
	if err := json.Unmarshal(raw, &bounds); err != nil {
		return nil, apperrors.InvalidInput("invalid filter_values format for date filter")
	}

	from, err := parseYear(bounds.DateFrom)
	if err != nil {
		return nil, err
	}
	to, err := parseYear(bounds.DateTo)
	if err != nil {
		return nil, err
	}

	if from == nil && to == nil {
		return nil, apperrors.InvalidInput("invalid filter_values format for date filter")
	}
	if from != nil && to != nil && *to < *from {
		return nil, apperrors.InvalidInput("date_from needs to be less than or equal to date_to")
	}

	return &DateRange{From: from, To: to}, nil
}

func parseYear(raw json.RawMessage) (*int, error) {
	if raw == nil {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil, nil
		}
		year, err := strconv.Atoi(s)
		if err != nil {
			return nil, apperrors.InvalidInput("invalid format of at least one filter_value for date filter")
		}
		return &year, nil
	}

	var year int
	if err := json.Unmarshal(raw, &year); err != nil {
		return nil, apperrors.InvalidInput("invalid format of at least one filter_value for date filter")
	}
	return &year, nil
}

func invalidValue(facet string) error {
	return apperrors.InvalidInput(fmt.Sprintf("invalid format of at least one filter_value for %s filter", facet))
}
