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

func TestPersonRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPersonRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM persons WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "name", "synonyms", "date_birth", "date_death", "created_at", "updated_at"}).
				AddRow(int64(7), "Maria Lassnig", []string{"M. Lassnig"}, nil, nil, now, now),
		)

	p, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Maria Lassnig", p.Name)
	assert.Equal(t, []string{"M. Lassnig"}, p.Synonyms)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPersonRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM persons WHERE id").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	p, err := repo.GetByID(context.Background(), 99)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPersonRepository_ListByIDs_EmptyInput(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPersonRepository(mock)

	persons, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, persons)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersonRepository_ListByIDs_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewPersonRepository(mock)

	ids := []int64{7, 8}
	mock.ExpectQuery("SELECT .+ FROM persons WHERE id = ANY").
		WithArgs(ids).
		WillReturnRows(
			pgxmock.NewRows([]string{"id", "name", "synonyms", "date_birth", "date_death", "created_at", "updated_at"}).
				AddRow(int64(8), "Anna Berger", []string{}, nil, nil, now, now).
				AddRow(int64(7), "Maria Lassnig", []string{}, nil, nil, now, now),
		)

	persons, err := repo.ListByIDs(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, "Anna Berger", persons[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
