package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscriminatoryTermRepository_List(t *testing.T) {
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

func TestDiscriminatoryTermRepository_List_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewDiscriminatoryTermRepository(mock)

	mock.ExpectQuery("SELECT id, term FROM discriminatory_terms ORDER BY term").
		WillReturnRows(pgxmock.NewRows([]string{"id", "term"}))

	terms, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, terms)
	assert.Empty(t, terms)
}
