package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/base-angewandte/image-backend-sub000/internal/repository"
)

func TestAutocompleteRepository_Titles_AttachesTerms(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAutocompleteRepository(mock)

	mock.ExpectQuery("SELECT id, title FROM artworks").
		WithArgs("%portrait%", 10).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "title"}).
				AddRow("art-1", "Selbstportrait").
				AddRow("art-2", "Portraitstudie"),
		)
	mock.ExpectQuery("FROM artwork_discriminatory_terms rel").
		WithArgs([]string{"art-1", "art-2"}).
		WillReturnRows(
			pgxmock.NewRows([]string{"artwork_id", "term"}).
				AddRow("art-2", "Eskimo"),
		)

	suggestions, err := repo.Titles(context.Background(), "portrait", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Selbstportrait", suggestions[0].Label)
	assert.Empty(t, suggestions[0].Data["discriminatory_terms"])
	assert.Equal(t, []string{"Eskimo"}, suggestions[1].Data["discriminatory_terms"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAutocompleteRepository_Titles_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAutocompleteRepository(mock)

	mock.ExpectQuery("SELECT id, title FROM artworks").
		WithArgs("%xyz%", 10).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title"}))

	suggestions, err := repo.Titles(context.Background(), "xyz", 10)
	require.NoError(t, err)
	assert.Equal(t, []repository.Suggestion{}, suggestions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAutocompleteRepository_Artists(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAutocompleteRepository(mock)

	mock.ExpectQuery("SELECT id, name FROM persons").
		WithArgs("%lass%", 10).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "name"}).
				AddRow(int64(7), "Maria Lassnig"),
		)

	suggestions, err := repo.Artists(context.Background(), "lass", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, int64(7), suggestions[0].ID)
	assert.Equal(t, "Maria Lassnig", suggestions[0].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAutocompleteRepository_Keywords_LocalizedLabel(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAutocompleteRepository(mock)

	mock.ExpectQuery("SELECT id, name, name_en FROM keywords").
		WithArgs("%paint%", 10).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "name", "name_en"}).
				AddRow(int64(42), "Malerei", "painting"),
		)

	suggestions, err := repo.Keywords(context.Background(), "paint", "en", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "painting", suggestions[0].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAutocompleteRepository_Locations_FallsBackToGerman(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAutocompleteRepository(mock)

	mock.ExpectQuery("SELECT id, name, name_en FROM locations").
		WithArgs("%wien%", 10).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "name", "name_en"}).
				AddRow(int64(3), "Wien", ""),
		)

	suggestions, err := repo.Locations(context.Background(), "wien", "en", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Wien", suggestions[0].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAutocompleteRepository_Users_SimilarityThreshold(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAutocompleteRepository(mock)

	mock.ExpectQuery("word_similarity").
		WithArgs("anna", 0.6, 10).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "first_name", "last_name"}).
				AddRow("user-1", "Anna", "Berger"),
		)

	suggestions, err := repo.Users(context.Background(), "anna", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "user-1", suggestions[0].ID)
	assert.Equal(t, "Anna Berger", suggestions[0].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAutocompleteRepository_EditableAlbums(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewAutocompleteRepository(mock)

	mock.ExpectQuery("SELECT a.id, a.title FROM albums a").
		WithArgs("user-1", "%diplom%", 10).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "title"}).
				AddRow("album-1", "Diplomarbeiten 2025"),
		)

	suggestions, err := repo.EditableAlbums(context.Background(), "user-1", "diplom", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Diplomarbeiten 2025", suggestions[0].Label)
	assert.NoError(t, mock.ExpectationsWereMet())
}
