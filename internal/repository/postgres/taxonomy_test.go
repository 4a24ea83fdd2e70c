package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

func TestTaxonomyRepository_GetKeyword_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewTaxonomyRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM keywords WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "parent_id", "name", "name_en", "created_at", "updated_at"}).
				AddRow(int64(42), int64Ptr(1), "Malerei", "painting", now, now),
		)

	k, err := repo.GetKeyword(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), k.ID)
	assert.Equal(t, "Malerei", k.Name)
	assert.Equal(t, "painting", k.NameEn)
	require.NotNil(t, k.ParentID)
	assert.Equal(t, int64(1), *k.ParentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxonomyRepository_GetKeyword_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewTaxonomyRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM keywords WHERE id").
		WithArgs(int64(999)).
		WillReturnError(pgx.ErrNoRows)

	k, err := repo.GetKeyword(context.Background(), 999)
	assert.Nil(t, k)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxonomyRepository_GetLocation_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewTaxonomyRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM locations WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "parent_id", "name", "name_en", "synonyms", "created_at", "updated_at"}).
				AddRow(int64(3), nil, "Wien", "Vienna", []string{"Vindobona"}, now, now),
		)

	l, err := repo.GetLocation(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Wien", l.Name)
	assert.Equal(t, []string{"Vindobona"}, l.Synonyms)
	assert.Nil(t, l.ParentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxonomyRepository_KeywordDescendants(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewTaxonomyRepository(mock)

	mock.ExpectQuery("WITH RECURSIVE subtree").
		WithArgs(int64(1)).
		WillReturnRows(
			pgxmock.NewRows([]string{"id"}).
				AddRow(int64(1)).
				AddRow(int64(42)).
				AddRow(int64(43)),
		)

	ids, err := repo.KeywordDescendants(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 42, 43}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxonomyRepository_LocationDescendants_LeafNode(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewTaxonomyRepository(mock)

	mock.ExpectQuery("WITH RECURSIVE subtree").
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	ids, err := repo.LocationDescendants(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_GetByID_Success2(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPersonRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM persons WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "name", "synonyms", "date_birth", "date_death", "created_at", "updated_at"}).
				AddRow(int64(7), "Maria Lassnig", []string{}, nil, nil, now, now),
		)

	p, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Maria Lassnig", p.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_GetByID_NotFound2(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPersonRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM persons WHERE id").
		WithArgs(int64(999)).
		WillReturnError(pgx.ErrNoRows)

	p, err := repo.GetByID(context.Background(), 999)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_ListByIDs_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPersonRepository(mock)

	persons, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, persons)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscriminatoryTermRepository_List2(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewDiscriminatoryTermRepository(mock)

	mock.ExpectQuery("SELECT id, term FROM discriminatory_terms ORDER BY term").
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "term"}).
				AddRow(int64(1), "Eskimo").
				AddRow(int64(2), "Zigeuner"),
		)

	terms, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, "Eskimo", terms[0].Term)
	assert.NoError(t, mock.ExpectationsWereMet())
}
