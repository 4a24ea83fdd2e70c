package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

func newArtworkService(repo *mockArtworkRepository, persons *mockPersonRepository) *ArtworkService {
	return NewArtworkService(repo, persons, newTestProducer(), newTestLogger())
}

func TestCreateArtwork_Success(t *testing.T) {
	repo := new(mockArtworkRepository)
	persons := new(mockPersonRepository)
	svc := newArtworkService(repo, persons)
	ctx := context.Background()

	persons.On("ListByIDs", ctx, []int64{7}).Return([]domain.Person{{ID: 7, Name: "Maria Lassnig"}}, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Artwork")).Return(nil)

	input := &CreateArtworkInput{
		Title:        "Selbstportrait",
		TitleEnglish: "Self-Portrait",
		Date:         "um 1960",
		DateYearFrom: intPtr(1955),
		DateYearTo:   intPtr(1965),
		Published:    true,
		ArtistIDs:    []int64{7},
	}

	artwork, err := svc.CreateArtwork(ctx, input)
	require.NoError(t, err)
	assert.NotEmpty(t, artwork.ID)
	assert.Equal(t, "Selbstportrait", artwork.Title)
	require.Len(t, artwork.Artists, 1)
	assert.Equal(t, "Maria Lassnig", artwork.Artists[0].Name)
	repo.AssertExpectations(t)
	persons.AssertExpectations(t)
}

func TestCreateArtwork_EmptyTitle(t *testing.T) {
	repo := new(mockArtworkRepository)
	svc := newArtworkService(repo, new(mockPersonRepository))

	_, err := svc.CreateArtwork(context.Background(), &CreateArtworkInput{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateArtwork_InvalidYearRange(t *testing.T) {
	repo := new(mockArtworkRepository)
	svc := newArtworkService(repo, new(mockPersonRepository))

	input := &CreateArtworkInput{
		Title:        "Selbstportrait",
		DateYearFrom: intPtr(1970),
		DateYearTo:   intPtr(1950),
	}

	_, err := svc.CreateArtwork(context.Background(), input)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateArtwork_UnknownPerson(t *testing.T) {
	repo := new(mockArtworkRepository)
	persons := new(mockPersonRepository)
	svc := newArtworkService(repo, persons)
	ctx := context.Background()

	persons.On("ListByIDs", ctx, []int64{99}).Return([]domain.Person{}, nil)

	input := &CreateArtworkInput{Title: "Selbstportrait", ArtistIDs: []int64{99}}

	_, err := svc.CreateArtwork(ctx, input)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Create")
}

func TestGetArtwork_Success(t *testing.T) {
	repo := new(mockArtworkRepository)
	svc := newArtworkService(repo, new(mockPersonRepository))
	ctx := context.Background()

	repo.On("GetByID", ctx, "art-1").Return(&domain.Artwork{ID: "art-1", Title: "Selbstportrait"}, nil)

	artwork, err := svc.GetArtwork(ctx, "art-1")
	require.NoError(t, err)
	assert.Equal(t, "art-1", artwork.ID)
}

func TestGetArtwork_NotFound(t *testing.T) {
	repo := new(mockArtworkRepository)
	svc := newArtworkService(repo, new(mockPersonRepository))
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("artwork", "missing"))

	_, err := svc.GetArtwork(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListArtworks_NormalizesPagination(t *testing.T) {
	repo := new(mockArtworkRepository)
	svc := newArtworkService(repo, new(mockPersonRepository))
	ctx := context.Background()

	repo.On("List", ctx, repository.ArtworkFilter{Page: 1, PerPage: 20}).
		Return([]domain.Artwork{{ID: "art-1"}}, 1, nil)

	artworks, total, err := svc.ListArtworks(ctx, repository.ArtworkFilter{Page: 0, PerPage: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, artworks, 1)
	repo.AssertExpectations(t)
}

func TestListArtworks_CapsPerPage(t *testing.T) {
	repo := new(mockArtworkRepository)
	svc := newArtworkService(repo, new(mockPersonRepository))
	ctx := context.Background()

	repo.On("List", ctx, repository.ArtworkFilter{Page: 2, PerPage: 100}).
		Return([]domain.Artwork{}, 0, nil)

	_, _, err := svc.ListArtworks(ctx, repository.ArtworkFilter{Page: 2, PerPage: 500})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateArtwork_PartialKeepsPersons(t *testing.T) {
	repo := new(mockArtworkRepository)
	persons := new(mockPersonRepository)
	svc := newArtworkService(repo, persons)
	ctx := context.Background()

	stored := &domain.Artwork{
		ID:      "art-1",
		Title:   "Selbstportrait",
		Artists: []domain.Person{{ID: 7, Name: "Maria Lassnig"}},
	}
	repo.On("GetByID", ctx, "art-1").Return(stored, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Artwork")).Return(nil)

	title := "Selbstportrait II"
	artwork, err := svc.UpdateArtwork(ctx, "art-1", &UpdateArtworkInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Selbstportrait II", artwork.Title)
	require.Len(t, artwork.Artists, 1)
	persons.AssertNotCalled(t, "ListByIDs")
	repo.AssertExpectations(t)
}

func TestUpdateArtwork_ReplacesRoleRelations(t *testing.T) {
	repo := new(mockArtworkRepository)
	persons := new(mockPersonRepository)
	svc := newArtworkService(repo, persons)
	ctx := context.Background()

	stored := &domain.Artwork{
		ID:      "art-1",
		Title:   "Selbstportrait",
		Artists: []domain.Person{{ID: 7, Name: "Maria Lassnig"}},
	}
	repo.On("GetByID", ctx, "art-1").Return(stored, nil)
	persons.On("ListByIDs", ctx, []int64{7, 8}).
		Return([]domain.Person{{ID: 7, Name: "Maria Lassnig"}, {ID: 8, Name: "Josef Mikl"}}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Artwork")).Return(nil)

	artwork, err := svc.UpdateArtwork(ctx, "art-1", &UpdateArtworkInput{PhotographerIDs: []int64{8}})
	require.NoError(t, err)
	require.Len(t, artwork.Photographers, 1)
	assert.Equal(t, "Josef Mikl", artwork.Photographers[0].Name)
	require.Len(t, artwork.Artists, 1)
	assert.Equal(t, "Maria Lassnig", artwork.Artists[0].Name)
	repo.AssertExpectations(t)
	persons.AssertExpectations(t)
}

func TestUpdateArtwork_InvalidYearRange(t *testing.T) {
	repo := new(mockArtworkRepository)
	svc := newArtworkService(repo, new(mockPersonRepository))
	ctx := context.Background()

	stored := &domain.Artwork{ID: "art-1", Title: "Selbstportrait", DateYearFrom: intPtr(1950)}
	repo.On("GetByID", ctx, "art-1").Return(stored, nil)

	_, err := svc.UpdateArtwork(ctx, "art-1", &UpdateArtworkInput{DateYearTo: intPtr(1940)})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Update")
}

func TestDeleteArtwork_Success(t *testing.T) {
	repo := new(mockArtworkRepository)
	svc := newArtworkService(repo, new(mockPersonRepository))
	ctx := context.Background()

	repo.On("GetByID", ctx, "art-1").Return(&domain.Artwork{ID: "art-1"}, nil)
	repo.On("Delete", ctx, "art-1").Return(nil)

	err := svc.DeleteArtwork(ctx, "art-1")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDeleteArtwork_NotFound(t *testing.T) {
	repo := new(mockArtworkRepository)
	svc := newArtworkService(repo, new(mockPersonRepository))
	ctx := context.Background()

	repo.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("artwork", "missing"))

	err := svc.DeleteArtwork(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	repo.AssertNotCalled(t, "Delete")
}
