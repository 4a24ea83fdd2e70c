package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

// IndexerService recomputes artwork search vectors. Artwork events rebuild a
// single vector; vocabulary events fan out to every artwork whose vector
// embeds the changed entity.
type IndexerService struct {
	repo   repository.IndexRepository
	logger *slog.Logger
}

// NewIndexerService creates a new indexer service.
func NewIndexerService(repo repository.IndexRepository, logger *slog.Logger) *IndexerService {
	return &IndexerService{
		repo:   repo,
		logger: logger,
	}
}

// RebuildArtwork recomputes one artwork's search vector. A missing artwork is
// not an error: the row may have been deleted since the event was published.
func (s *IndexerService) RebuildArtwork(ctx context.Context, artworkID string) error {
	if err := s.repo.Rebuild(ctx, artworkID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "artwork vanished before reindexing",
				slog.String("artwork_id", artworkID),
			)
			return nil
		}
		return fmt.Errorf("rebuild artwork index: %w", err)
	}

	s.logger.InfoContext(ctx, "artwork index rebuilt",
		slog.String("artwork_id", artworkID),
	)

	return nil
}

// ReindexPerson rebuilds every artwork the person contributed to in any role.
func (s *IndexerService) ReindexPerson(ctx context.Context, personID int64) error {
	ids, err := s.repo.DependentsOnPerson(ctx, personID)
	if err != nil {
		return fmt.Errorf("resolve person dependents: %w", err)
	}
	return s.rebuildAll(ctx, "person", personID, ids)
}

// ReindexKeyword rebuilds every artwork tagged with the keyword or one of its
// ancestors.
func (s *IndexerService) ReindexKeyword(ctx context.Context, keywordID int64) error {
	ids, err := s.repo.DependentsOnKeyword(ctx, keywordID)
	if err != nil {
		return fmt.Errorf("resolve keyword dependents: %w", err)
	}
	return s.rebuildAll(ctx, "keyword", keywordID, ids)
}

// ReindexLocation rebuilds every artwork referencing the location or one of
// its ancestors, as whereabouts or place of production.
func (s *IndexerService) ReindexLocation(ctx context.Context, locationID int64) error {
	ids, err := s.repo.DependentsOnLocation(ctx, locationID)
	if err != nil {
		return fmt.Errorf("resolve location dependents: %w", err)
	}
	return s.rebuildAll(ctx, "location", locationID, ids)
}

// ReindexMaterial rebuilds every artwork made of the material.
func (s *IndexerService) ReindexMaterial(ctx context.Context, materialID int64) error {
	ids, err := s.repo.DependentsOnMaterial(ctx, materialID)
	if err != nil {
		return fmt.Errorf("resolve material dependents: %w", err)
	}
	return s.rebuildAll(ctx, "material", materialID, ids)
}

func (s *IndexerService) rebuildAll(ctx context.Context, kind string, entityID int64, artworkIDs []string) error {
	for _, id := range artworkIDs {
		if err := s.RebuildArtwork(ctx, id); err != nil {
			return fmt.Errorf("rebuild dependent artwork %s: %w", id, err)
		}
	}

	s.logger.InfoContext(ctx, "vocabulary change reindexed",
		slog.String("kind", kind),
		slog.Int64("entity_id", entityID),
		slog.Int("artworks", len(artworkIDs)),
	)

	return nil
}
