package postgres

import (
	"context"
	"fmt"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/pkg/database"
)

// DiscriminatoryTermRepository implements repository.DiscriminatoryTermRepository
// using PostgreSQL.
type DiscriminatoryTermRepository struct {
	db database.DBTX
}

// NewDiscriminatoryTermRepository creates a new PostgreSQL-backed repository
// for the flagged-terms list.
func NewDiscriminatoryTermRepository(db database.DBTX) *DiscriminatoryTermRepository {
	return &DiscriminatoryTermRepository{db: db}
}

// List returns all discriminatory terms ordered by term.
func (r *DiscriminatoryTermRepository) List(ctx context.Context) ([]domain.DiscriminatoryTerm, error) {
	rows, err := r.db.Query(ctx, `SELECT id, term FROM discriminatory_terms ORDER BY term`)
	if err != nil {
		return nil, fmt.Errorf("list discriminatory terms: %w", err)
	}
	defer rows.Close()

	var terms []domain.DiscriminatoryTerm
	for rows.Next() {
		var t domain.DiscriminatoryTerm
		if err := rows.Scan(&t.ID, &t.Term); err != nil {
			return nil, fmt.Errorf("scan discriminatory term row: %w", err)
		}
		terms = append(terms, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate discriminatory term rows: %w", err)
	}

	if terms == nil {
		terms = []domain.DiscriminatoryTerm{}
	}

	return terms, nil
}
