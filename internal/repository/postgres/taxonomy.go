package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/pkg/database"
	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

// TaxonomyRepository implements repository.TaxonomyRepository using PostgreSQL.
// Keyword and location trees are stored as adjacency lists; subtree expansion
// runs a recursive CTE.
type TaxonomyRepository struct {
	db database.DBTX
}

// NewTaxonomyRepository creates a new PostgreSQL-backed taxonomy repository.
func NewTaxonomyRepository(db database.DBTX) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

// GetKeyword retrieves a keyword node by ID.
func (r *TaxonomyRepository) GetKeyword(ctx context.Context, id int64) (*domain.Keyword, error) {
	query := `
		SELECT id, parent_id, name, name_en, created_at, updated_at
		FROM keywords
		WHERE id = $1`

	var k domain.Keyword
	err := r.db.QueryRow(ctx, query, id).Scan(
		&k.ID, &k.ParentID, &k.Name, &k.NameEn, &k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan keyword: %w", err)
	}

	return &k, nil
}

// GetLocation retrieves a location node by ID.
func (r *TaxonomyRepository) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	query := `
		SELECT id, parent_id, name, name_en, synonyms, created_at, updated_at
		FROM locations
		WHERE id = $1`

	var l domain.Location
	err := r.db.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.ParentID, &l.Name, &l.NameEn, &l.Synonyms, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan location: %w", err)
	}

	return &l, nil
}

// KeywordDescendants returns the IDs of the node and all its descendants.
func (r *TaxonomyRepository) KeywordDescendants(ctx context.Context, id int64) ([]int64, error) {
	return r.descendants(ctx, "keywords", id)
}

// LocationDescendants returns the IDs of the node and all its descendants.
func (r *TaxonomyRepository) LocationDescendants(ctx context.Context, id int64) ([]int64, error) {
	return r.descendants(ctx, "locations", id)
}

func (r *TaxonomyRepository) descendants(ctx context.Context, table string, id int64) ([]int64, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM %[1]s WHERE id = $1
			UNION ALL
			SELECT n.id FROM %[1]s n JOIN subtree s ON n.parent_id = s.id
		)
		SELECT id FROM subtree ORDER BY id`, table)

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query %s subtree: %w", table, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var nodeID int64
		if err := rows.Scan(&nodeID); err != nil {
			return nil, fmt.Errorf("scan %s subtree row: %w", table, err)
		}
		ids = append(ids, nodeID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s subtree rows: %w", table, err)
	}

	return ids, nil
}
