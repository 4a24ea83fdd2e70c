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

// PersonRepository implements repository.PersonRepository using PostgreSQL.
type PersonRepository struct {
	db database.DBTX
}

// NewPersonRepository creates a new PostgreSQL-backed person repository.
func NewPersonRepository(db database.DBTX) *PersonRepository {
	return &PersonRepository{db: db}
}

// GetByID retrieves a person by ID.
func (r *PersonRepository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	query := `
		SELECT id, name, synonyms, date_birth, date_death, created_at, updated_at
		FROM persons
		WHERE id = $1`

	var p domain.Person
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Synonyms, &p.DateBirth, &p.DateDeath, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan person: %w", err)
	}

	return &p, nil
}

// ListByIDs retrieves all persons with the given IDs.
func (r *PersonRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Person, error) {
	if len(ids) == 0 {
		return []domain.Person{}, nil
	}

	query := `
		SELECT id, name, synonyms, date_birth, date_death, created_at, updated_at
		FROM persons
		WHERE id = ANY($1)
		ORDER BY name`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var persons []domain.Person
	for rows.Next() {
		var p domain.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Synonyms, &p.DateBirth, &p.DateDeath, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan person row: %w", err)
		}
		persons = append(persons, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate person rows: %w", err)
	}

	return persons, nil
}
