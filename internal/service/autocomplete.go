package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

// Suggestion source types (closed set).
const (
	TypeTitles             = "titles"
	TypeArtists            = "artists"
	TypeUsers              = "users"
	TypeKeywords           = "keywords"
	TypeLocations          = "locations"
	TypeUserAlbumsEditable = "user_albums_editable"
)

// DefaultSuggestionLimit caps suggestions per source type.
const DefaultSuggestionLimit = 10

// typeLabels maps each source type to its localized group label.
var typeLabels = map[string]map[string]string{
	TypeTitles:             {"de": "Titel", "en": "Titles"},
	TypeArtists:            {"de": "Künstler*innen", "en": "Artists"},
	TypeUsers:              {"de": "Benutzer*innen", "en": "Users"},
	TypeKeywords:           {"de": "Schlagwörter", "en": "Keywords"},
	TypeLocations:          {"de": "Orte", "en": "Locations"},
	TypeUserAlbumsEditable: {"de": "Bearbeitbare Alben", "en": "Editable albums"},
}

// AutocompleteService serves typed suggestion lookups for the search form.
type AutocompleteService struct {
	repo   repository.AutocompleteRepository
	logger *slog.Logger
}

// NewAutocompleteService creates a new autocomplete service.
func NewAutocompleteService(repo repository.AutocompleteRepository, logger *slog.Logger) *AutocompleteService {
	return &AutocompleteService{
		repo:   repo,
		logger: logger,
	}
}

// Group is one source type's suggestions in a multi-type response.
type Group struct {
	ID    string                  `json:"id"`
	Label string                  `json:"label"`
	Data  []repository.Suggestion `json:"data"`
}

// Suggest runs the lookups for the requested types. With exactly one type the
// result is the flat suggestion list; with several it is one group per type,
// in request order.
func (s *AutocompleteService) Suggest(ctx context.Context, userID, q string, types []string, lang string, limit int) (any, error) {
	if strings.TrimSpace(q) == "" {
		return nil, apperrors.InvalidInput("q is required")
	}
	if len(types) == 0 {
		return nil, apperrors.InvalidInput("type is required")
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	seen := make(map[string]bool, len(types))
	for _, t := range types {
		if _, ok := typeLabels[t]; !ok {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid type %q", t))
		}
		if seen[t] {
			return nil, apperrors.InvalidInput(fmt.Sprintf("duplicate type %q", t))
		}
		seen[t] = true
	}

	groups := make([]Group, 0, len(types))
	for _, t := range types {
		suggestions, err := s.lookup(ctx, t, userID, q, lang, limit)
		if err != nil {
			return nil, fmt.Errorf("autocomplete %s: %w", t, err)
		}
		groups = append(groups, Group{ID: t, Label: s.label(t, lang), Data: suggestions})
	}

	if len(groups) == 1 {
		return groups[0].Data, nil
	}
	return groups, nil
}

func (s *AutocompleteService) lookup(ctx context.Context, typ, userID, q, lang string, limit int) ([]repository.Suggestion, error) {
	switch typ {
	case TypeTitles:
		return s.repo.Titles(ctx, q, limit)
	case TypeArtists:
		return s.repo.Artists(ctx, q, limit)
	case TypeUsers:
		return s.repo.Users(ctx, q, limit)
	case TypeKeywords:
		return s.repo.Keywords(ctx, q, lang, limit)
	case TypeLocations:
		return s.repo.Locations(ctx, q, lang, limit)
	case TypeUserAlbumsEditable:
		if userID == "" {
			return nil, apperrors.Unauthorized("authentication required for album suggestions")
		}
		return s.repo.EditableAlbums(ctx, userID, q, limit)
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid type %q", typ))
	}
}

func (s *AutocompleteService) label(typ, lang string) string {
	labels := typeLabels[typ]
	if l, ok := labels[lang]; ok {
		return l
	}
	return labels["en"]
}
