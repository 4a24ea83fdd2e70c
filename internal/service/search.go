package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	"github.com/base-angewandte/image-backend-sub000/internal/search"
)

// SearchService implements the ranked artwork search.
type SearchService struct {
	searchRepo  repository.SearchRepository
	artworkRepo repository.ArtworkRepository
	mediaBase   string
	logger      *slog.Logger
}

// NewSearchService creates a new search service. mediaBase is prepended to the
// stored image paths so clients receive absolute URLs.
func NewSearchService(searchRepo repository.SearchRepository, artworkRepo repository.ArtworkRepository, mediaBase string, logger *slog.Logger) *SearchService {
	return &SearchService{
		searchRepo:  searchRepo,
		artworkRepo: artworkRepo,
		mediaBase:   strings.TrimRight(mediaBase, "/"),
		logger:      logger,
	}
}

// ArtistRef is an artist reference inside a search result item.
type ArtistRef struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

// ResultItem is one artwork in a search result page.
type ResultItem struct {
	ID                  string      `json:"id"`
	ImageOriginal       string      `json:"image_original"`
	ImageFullsize       string      `json:"image_fullsize"`
	Credits             string      `json:"credits"`
	Title               string      `json:"title"`
	DiscriminatoryTerms []string    `json:"discriminatory_terms"`
	Date                string      `json:"date"`
	Artists             []ArtistRef `json:"artists"`
	Score               float64     `json:"score"`
}

// Result is a search result page.
type Result struct {
	Total   int          `json:"total"`
	Results []ResultItem `json:"results"`
}

// Search validates the request, runs the ranked query, and projects one
// result page. lang selects the localized title.
func (s *SearchService) Search(ctx context.Context, req *search.Request, lang string) (*Result, error) {
	criteria, err := search.Parse(req)
	if err != nil {
		return nil, err
	}

	hits, total, err := s.searchRepo.Search(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("search artworks: %w", err)
	}

	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.Artwork.ID
	}

	artists, err := s.artworkRepo.ArtistsByArtworkIDs(ctx, ids)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load artists for search results",
			slog.String("error", err.Error()),
		)
		artists = map[string][]domain.Person{}
	}

	terms, err := s.artworkRepo.TermsByArtworkIDs(ctx, ids)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load discriminatory terms for search results",
			slog.String("error", err.Error()),
		)
		terms = map[string][]string{}
	}

	items := make([]ResultItem, len(hits))
	for i, h := range hits {
		item := ResultItem{
			ID:                  h.Artwork.ID,
			ImageOriginal:       s.mediaURL(h.Artwork.ImageOriginal),
			ImageFullsize:       s.mediaURL(h.Artwork.ImageFullsize),
			Credits:             h.Artwork.Credits,
			Title:               h.Artwork.LocalizedTitle(lang),
			DiscriminatoryTerms: emptyStrings(terms[h.Artwork.ID]),
			Date:                h.Artwork.Date,
			Artists:             []ArtistRef{},
			Score:               h.Rank,
		}
		for _, p := range artists[h.Artwork.ID] {
			item.Artists = append(item.Artists, ArtistRef{ID: p.ID, Value: p.Name})
		}
		items[i] = item
	}

	return &Result{Total: total, Results: items}, nil
}

// Filters returns the facet schema the frontend renders the search form from.
func (s *SearchService) Filters() map[string]search.FilterSchema {
	return search.FiltersSchema()
}

func (s *SearchService) mediaURL(path string) string {
	if path == "" || s.mediaBase == "" {
		return path
	}
	return s.mediaBase + "/" + strings.TrimLeft(path, "/")
}

func emptyStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
