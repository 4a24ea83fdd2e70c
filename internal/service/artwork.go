package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/internal/event"
	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

// ArtworkService implements the catalogue operations on artworks.
type ArtworkService struct {
	repo     repository.ArtworkRepository
	persons  repository.PersonRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewArtworkService creates a new artwork service.
func NewArtworkService(repo repository.ArtworkRepository, persons repository.PersonRepository, producer *event.Producer, logger *slog.Logger) *ArtworkService {
	return &ArtworkService{
		repo:     repo,
		persons:  persons,
		producer: producer,
		logger:   logger,
	}
}

// CreateArtworkInput holds the parameters for creating an artwork.
type CreateArtworkInput struct {
	Title                 string
	TitleEnglish          string
	TitleComment          string
	Date                  string
	DateYearFrom          *int
	DateYearTo            *int
	MaterialDescriptionDE string
	MaterialDescriptionEN string
	DimensionsDisplay     string
	CommentsDE            string
	CommentsEN            string
	Credits               string
	CreditsLink           string
	Link                  string
	LocationID            *int64
	ImageOriginal         string
	ImageFullsize         string
	Published             bool
	Checked               bool
	ArtistIDs             []int64
	PhotographerIDs       []int64
	AuthorIDs             []int64
	GraphicDesignerIDs    []int64
	KeywordIDs            []int64
	MaterialIDs           []int64
	PlaceOfProductionIDs  []int64
}

// UpdateArtworkInput holds the parameters for a partial artwork update. Nil
// fields stay untouched; relation slices replace the stored set when present.
type UpdateArtworkInput struct {
	Title                 *string
	TitleEnglish          *string
	TitleComment          *string
	Date                  *string
	DateYearFrom          *int
	DateYearTo            *int
	MaterialDescriptionDE *string
	MaterialDescriptionEN *string
	DimensionsDisplay     *string
	CommentsDE            *string
	CommentsEN            *string
	Credits               *string
	CreditsLink           *string
	Link                  *string
	LocationID            *int64
	ImageOriginal         *string
	ImageFullsize         *string
	Published             *bool
	Checked               *bool
	ArtistIDs             []int64
	PhotographerIDs       []int64
	AuthorIDs             []int64
	GraphicDesignerIDs    []int64
	KeywordIDs            []int64
	MaterialIDs           []int64
	PlaceOfProductionIDs  []int64
}

// CreateArtwork creates a new artwork and announces it for indexing.
func (s *ArtworkService) CreateArtwork(ctx context.Context, input *CreateArtworkInput) (*domain.Artwork, error) {
	if input.Title == "" {
		return nil, apperrors.InvalidInput("artwork title is required")
	}
	if input.DateYearFrom != nil && input.DateYearTo != nil && *input.DateYearTo < *input.DateYearFrom {
		return nil, apperrors.InvalidInput("date_year_from needs to be less than or equal to date_year_to")
	}

	now := time.Now().UTC()
	artwork := &domain.Artwork{
		ID:                    uuid.New().String(),
		Title:                 input.Title,
		TitleEnglish:          input.TitleEnglish,
		TitleComment:          input.TitleComment,
		Date:                  input.Date,
		DateYearFrom:          input.DateYearFrom,
		DateYearTo:            input.DateYearTo,
		MaterialDescriptionDE: input.MaterialDescriptionDE,
		MaterialDescriptionEN: input.MaterialDescriptionEN,
		DimensionsDisplay:     input.DimensionsDisplay,
		CommentsDE:            input.CommentsDE,
		CommentsEN:            input.CommentsEN,
		Credits:               input.Credits,
		CreditsLink:           input.CreditsLink,
		Link:                  input.Link,
		LocationID:            input.LocationID,
		ImageOriginal:         input.ImageOriginal,
		ImageFullsize:         input.ImageFullsize,
		Published:             input.Published,
		Checked:               input.Checked,
		KeywordIDs:            input.KeywordIDs,
		MaterialIDs:           input.MaterialIDs,
		PlaceOfProductionIDs:  input.PlaceOfProductionIDs,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.resolvePersons(ctx, artwork, input.ArtistIDs, input.PhotographerIDs, input.AuthorIDs, input.GraphicDesignerIDs); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, artwork); err != nil {
		return nil, fmt.Errorf("create artwork: %w", err)
	}

	if err := s.producer.PublishArtworkCreated(ctx, artwork); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish artwork.created event",
			slog.String("artwork_id", artwork.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "artwork created",
		slog.String("artwork_id", artwork.ID),
		slog.String("title", artwork.Title),
	)

	return artwork, nil
}

// GetArtwork retrieves an artwork by its ID, relations included.
func (s *ArtworkService) GetArtwork(ctx context.Context, id string) (*domain.Artwork, error) {
	artwork, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get artwork by id: %w", err)
	}
	return artwork, nil
}

// ListArtworks returns a paginated artwork list.
func (s *ArtworkService) ListArtworks(ctx context.Context, filter repository.ArtworkFilter) ([]domain.Artwork, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 20
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	artworks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list artworks: %w", err)
	}

	return artworks, total, nil
}

// UpdateArtwork applies partial updates to an existing artwork and announces
// the change for re-indexing.
func (s *ArtworkService) UpdateArtwork(ctx context.Context, id string, input *UpdateArtworkInput) (*domain.Artwork, error) {
	artwork, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get artwork for update: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, apperrors.InvalidInput("artwork title must not be empty")
		}
		artwork.Title = *input.Title
	}
	if input.TitleEnglish != nil {
		artwork.TitleEnglish = *input.TitleEnglish
	}
	if input.TitleComment != nil {
		artwork.TitleComment = *input.TitleComment
	}
	if input.Date != nil {
		artwork.Date = *input.Date
	}
	if input.DateYearFrom != nil {
		artwork.DateYearFrom = input.DateYearFrom
	}
	if input.DateYearTo != nil {
		artwork.DateYearTo = input.DateYearTo
	}
	if artwork.DateYearFrom != nil && artwork.DateYearTo != nil && *artwork.DateYearTo < *artwork.DateYearFrom {
		return nil, apperrors.InvalidInput("date_year_from needs to be less than or equal to date_year_to")
	}
	if input.MaterialDescriptionDE != nil {
		artwork.MaterialDescriptionDE = *input.MaterialDescriptionDE
	}
	if input.MaterialDescriptionEN != nil {
		artwork.MaterialDescriptionEN = *input.MaterialDescriptionEN
	}
	if input.DimensionsDisplay != nil {
		artwork.DimensionsDisplay = *input.DimensionsDisplay
	}
	if input.CommentsDE != nil {
		artwork.CommentsDE = *input.CommentsDE
	}
	if input.CommentsEN != nil {
		artwork.CommentsEN = *input.CommentsEN
	}
	if input.Credits != nil {
		artwork.Credits = *input.Credits
	}
	if input.CreditsLink != nil {
		artwork.CreditsLink = *input.CreditsLink
	}
	if input.Link != nil {
		artwork.Link = *input.Link
	}
	if input.LocationID != nil {
		artwork.LocationID = input.LocationID
	}
	if input.ImageOriginal != nil {
		artwork.ImageOriginal = *input.ImageOriginal
	}
	if input.ImageFullsize != nil {
		artwork.ImageFullsize = *input.ImageFullsize
	}
	if input.Published != nil {
		artwork.Published = *input.Published
	}
	if input.Checked != nil {
		artwork.Checked = *input.Checked
	}
	if input.KeywordIDs != nil {
		artwork.KeywordIDs = input.KeywordIDs
	}
	if input.MaterialIDs != nil {
		artwork.MaterialIDs = input.MaterialIDs
	}
	if input.PlaceOfProductionIDs != nil {
		artwork.PlaceOfProductionIDs = input.PlaceOfProductionIDs
	}

	if input.ArtistIDs != nil || input.PhotographerIDs != nil || input.AuthorIDs != nil || input.GraphicDesignerIDs != nil {
		artistIDs := personIDsOrCurrent(input.ArtistIDs, artwork.Artists)
		photographerIDs := personIDsOrCurrent(input.PhotographerIDs, artwork.Photographers)
		authorIDs := personIDsOrCurrent(input.AuthorIDs, artwork.Authors)
		designerIDs := personIDsOrCurrent(input.GraphicDesignerIDs, artwork.GraphicDesigners)
		if err := s.resolvePersons(ctx, artwork, artistIDs, photographerIDs, authorIDs, designerIDs); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, artwork); err != nil {
		return nil, fmt.Errorf("update artwork: %w", err)
	}

	if err := s.producer.PublishArtworkUpdated(ctx, artwork); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish artwork.updated event",
			slog.String("artwork_id", artwork.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "artwork updated",
		slog.String("artwork_id", artwork.ID),
	)

	return artwork, nil
}

// DeleteArtwork removes an artwork by its ID.
func (s *ArtworkService) DeleteArtwork(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get artwork for delete: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}

	if err := s.producer.PublishArtworkDeleted(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish artwork.deleted event",
			slog.String("artwork_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "artwork deleted",
		slog.String("artwork_id", id),
	)

	return nil
}

// resolvePersons loads all referenced persons and assigns them to the
// artwork's role slices, preserving the requested order. Unknown IDs fail the
// whole operation.
func (s *ArtworkService) resolvePersons(ctx context.Context, artwork *domain.Artwork, artistIDs, photographerIDs, authorIDs, designerIDs []int64) error {
	all := make([]int64, 0, len(artistIDs)+len(photographerIDs)+len(authorIDs)+len(designerIDs))
	all = append(all, artistIDs...)
	all = append(all, photographerIDs...)
	all = append(all, authorIDs...)
	all = append(all, designerIDs...)

	if len(all) == 0 {
		artwork.Artists = nil
		artwork.Photographers = nil
		artwork.Authors = nil
		artwork.GraphicDesigners = nil
		return nil
	}

	persons, err := s.persons.ListByIDs(ctx, all)
	if err != nil {
		return fmt.Errorf("load persons: %w", err)
	}

	byID := make(map[int64]domain.Person, len(persons))
	for _, p := range persons {
		byID[p.ID] = p
	}

	pick := func(ids []int64) ([]domain.Person, error) {
		picked := make([]domain.Person, 0, len(ids))
		for _, id := range ids {
			p, ok := byID[id]
			if !ok {
				return nil, apperrors.InvalidInput(fmt.Sprintf("unknown person id %d", id))
			}
			picked = append(picked, p)
		}
		return picked, nil
	}

	if artwork.Artists, err = pick(artistIDs); err != nil {
		return err
	}
	if artwork.Photographers, err = pick(photographerIDs); err != nil {
		return err
	}
	if artwork.Authors, err = pick(authorIDs); err != nil {
		return err
	}
	if artwork.GraphicDesigners, err = pick(designerIDs); err != nil {
		return err
	}

	return nil
}

// personIDsOrCurrent keeps the stored relation when the input omits it.
func personIDsOrCurrent(input []int64, current []domain.Person) []int64 {
	if input != nil {
		return input
	}
	ids := make([]int64, len(current))
	for i, p := range current {
		ids[i] = p.ID
	}
	return ids
}
