package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/base-angewandte/image-backend-sub000/internal/search"
)

var searchCols = []string{
	"id", "title", "title_english", "date", "credits",
	"image_original", "image_fullsize", "updated_at",
	"rank", "sim_title", "sim_title_en", "sim_persons", "total_count",
}

func searchRow(id, title string, rank float64, total int) []any {
	return []any{
		id, title, "", "um 1960", "Sammlung Wien",
		"artworks/" + id + "/original.tif", "artworks/" + id + "/fullsize.jpg", now,
		rank, 0.5, 0.0, 0.0, total,
	}
}

func TestSearchRepository_Search_WithQuery(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewSearchRepository(mock)

	c := &search.Criteria{Q: "lassnig", Limit: 30, Offset: 0}

	mock.ExpectQuery(`ts_rank\(a.search_vector, websearch_to_tsquery\('simple'`).
		WithArgs("lassnig", 30, 0).
		WillReturnRows(
			pgxmock.NewRows(searchCols).
				AddRow(searchRow("art-1", "Selbstportrait", 0.91, 2)...).
				AddRow(searchRow("art-2", "Kopf", 0.42, 2)...),
		)

	hits, total, err := repo.Search(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
	assert.Equal(t, 2, total)
	assert.Equal(t, "art-1", hits[0].Artwork.ID)
	assert.InDelta(t, 0.91, hits[0].Rank, 0.001)
	assert.True(t, hits[0].Artwork.Published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRepository_Search_NoQuery(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewSearchRepository(mock)

	c := &search.Criteria{Limit: 30, Offset: 0}

	// Without a query string the rank is constant and ordering falls back to
	// recency, so only limit and offset are bound.
	mock.ExpectQuery(`ORDER BY a.updated_at DESC, a.title ASC`).
		WithArgs(30, 0).
		WillReturnRows(pgxmock.NewRows(searchCols).AddRow(searchRow("art-1", "Selbstportrait", 1.0, 1)...))

	hits, total, err := repo.Search(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1.0, hits[0].Rank)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRepository_Search_FiltersOnlyOrdersByTitle(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewSearchRepository(mock)

	c := &search.Criteria{
		Limit:   30,
		Offset:  0,
		Artists: []search.Value{{Text: "lassnig"}},
	}

	mock.ExpectQuery(`ORDER BY a.title ASC`).
		WithArgs("%lassnig%", 30, 0).
		WillReturnRows(pgxmock.NewRows(searchCols).AddRow(searchRow("art-1", "Selbstportrait", 1.0, 1)...))

	hits, total, err := repo.Search(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRepository_Search_Exclude(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewSearchRepository(mock)

	c := &search.Criteria{
		Q:       "portrait",
		Limit:   10,
		Offset:  0,
		Exclude: []string{"art-9"},
	}

	mock.ExpectQuery(`NOT \(a.id = ANY`).
		WithArgs("portrait", []string{"art-9"}, 10, 0).
		WillReturnRows(pgxmock.NewRows(searchCols))

	hits, total, err := repo.Search(context.Background(), c)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRepository_Search_TitleRef(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewSearchRepository(mock)

	c := &search.Criteria{
		Limit:  30,
		Offset: 0,
		Title:  []search.Value{{ArtworkID: "art-1"}},
	}

	mock.ExpectQuery(`a.id = \$1`).
		WithArgs("art-1", 30, 0).
		WillReturnRows(pgxmock.NewRows(searchCols).AddRow(searchRow("art-1", "Selbstportrait", 1.0, 1)...))

	hits, _, err := repo.Search(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRepository_Search_KeywordRefExpandsSubtree(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewSearchRepository(mock)

	c := &search.Criteria{
		Limit:    30,
		Offset:   0,
		Keywords: []search.Value{{ID: 42}},
	}

	mock.ExpectQuery(`WITH RECURSIVE subtree`).
		WithArgs(int64(42), 30, 0).
		WillReturnRows(pgxmock.NewRows(searchCols).AddRow(searchRow("art-1", "Selbstportrait", 1.0, 1)...))

	hits, _, err := repo.Search(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRepository_Search_DateBothBounds(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewSearchRepository(mock)

	c := &search.Criteria{
		Limit:  30,
		Offset: 0,
		Date:   &search.DateRange{From: intPtr(1950), To: intPtr(1970)},
	}

	mock.ExpectQuery(`a.date_year_from BETWEEN`).
		WithArgs(1950, 1970, 30, 0).
		WillReturnRows(pgxmock.NewRows(searchCols).AddRow(searchRow("art-1", "Selbstportrait", 1.0, 1)...))

	hits, _, err := repo.Search(context.Background(), c)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRepository_Search_DateOnlyFrom(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewSearchRepository(mock)

	c := &search.Criteria{
		Limit:  30,
		Offset: 0,
		Date:   &search.DateRange{From: intPtr(1950)},
	}

	mock.ExpectQuery(`a.date_year_from >= \$1 OR a.date_year_to >= \$1`).
		WithArgs(1950, 30, 0).
		WillReturnRows(pgxmock.NewRows(searchCols))

	_, _, err := repo.Search(context.Background(), c)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
