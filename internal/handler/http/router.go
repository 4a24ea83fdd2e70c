package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	"github.com/base-angewandte/image-backend-sub000/internal/service"
	"github.com/base-angewandte/image-backend-sub000/pkg/health"
	"github.com/base-angewandte/image-backend-sub000/pkg/middleware"
)

// RouterConfig carries the service wiring the router needs.
type RouterConfig struct {
	SearchService       *service.SearchService
	AutocompleteService *service.AutocompleteService
	ArtworkService      *service.ArtworkService
	AlbumService        *service.AlbumService
	FolderService       *service.FolderService
	TermService         *service.DiscriminatoryTermService
	TaxonomyRepo        repository.TaxonomyRepository
	UserRepo            repository.UserRepository
	HealthHandler       *health.Handler
	CORS                middleware.CORSConfig
	PprofCIDRs          []string
	ServiceName         string
}

// NewRouter creates a chi router with all image backend routes registered.
func NewRouter(cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.Identity())

	// Operational endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	searchHandler := NewSearchHandler(cfg.SearchService, logger)
	autocompleteHandler := NewAutocompleteHandler(cfg.AutocompleteService, logger)
	artworkHandler := NewArtworkHandler(cfg.ArtworkService, logger)
	albumHandler := NewAlbumHandler(cfg.AlbumService, logger)
	folderHandler := NewFolderHandler(cfg.FolderService, logger)
	termHandler := NewTermHandler(cfg.TermService, logger)
	vocabularyHandler := NewVocabularyHandler(cfg.TaxonomyRepo, logger)
	userHandler := NewUserHandler(cfg.UserRepo, logger)

	r.Route("/api/v1/search", func(r chi.Router) {
		r.With(ContentTypeJSON).Post("/", searchHandler.Search)
		r.Get("/filters", searchHandler.Filters)
	})

	r.Get("/api/v1/autocomplete", autocompleteHandler.Suggest)

	r.Route("/api/v1/artworks", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", artworkHandler.ListArtworks)
		r.Get("/{id}", artworkHandler.GetArtwork)
		r.Post("/", artworkHandler.CreateArtwork)
		r.Put("/{id}", artworkHandler.UpdateArtwork)
		r.Delete("/{id}", artworkHandler.DeleteArtwork)
	})

	r.Route("/api/v1/albums", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.RequireUser)

		r.Get("/", albumHandler.ListAlbums)
		r.Get("/{id}", albumHandler.GetAlbum)
		r.Post("/", albumHandler.CreateAlbum)
		r.Put("/{id}", albumHandler.UpdateAlbum)
		r.Delete("/{id}", albumHandler.DeleteAlbum)
		r.Post("/{id}/append-artwork", albumHandler.AppendArtwork)
		r.Post("/{id}/remove-artwork", albumHandler.RemoveArtwork)
		r.Get("/{id}/permissions", albumHandler.ListPermissions)
		r.Post("/{id}/permissions", albumHandler.Share)
		r.Delete("/{id}/permissions/{userId}", albumHandler.Unshare)
	})

	r.Route("/api/v1/folders", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.RequireUser)

		r.Get("/", folderHandler.ListFolders)
		r.Get("/root", folderHandler.GetRoot)
		r.Get("/{id}", folderHandler.GetFolder)
		r.Post("/", folderHandler.CreateFolder)
		r.Put("/{id}", folderHandler.UpdateFolder)
		r.Delete("/{id}", folderHandler.DeleteFolder)
		r.Post("/{id}/albums", folderHandler.AddAlbum)
		r.Delete("/{id}/albums/{albumId}", folderHandler.RemoveAlbum)
	})

	r.Get("/api/v1/discriminatory-terms", termHandler.ListTerms)

	r.Route("/api/v1/vocabulary", func(r chi.Router) {
		r.Get("/keywords/{id}", vocabularyHandler.GetKeyword)
		r.Get("/keywords/{id}/descendants", vocabularyHandler.GetKeywordDescendants)
		r.Get("/locations/{id}", vocabularyHandler.GetLocation)
		r.Get("/locations/{id}/descendants", vocabularyHandler.GetLocationDescendants)
	})

	r.With(middleware.RequireUser).Get("/api/v1/user", userHandler.GetCurrentUser)

	return r
}
