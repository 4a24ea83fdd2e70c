package postgres

import (
	"context"
	"fmt"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	"github.com/base-angewandte/image-backend-sub000/pkg/database"
)

// userSimilarityThreshold is the minimum trigram word similarity for user
// name suggestions.
const userSimilarityThreshold = 0.6

// AutocompleteRepository implements repository.AutocompleteRepository using
// PostgreSQL ILIKE lookups and pg_trgm similarity for user names.
type AutocompleteRepository struct {
	db database.DBTX
}

// NewAutocompleteRepository creates a new PostgreSQL-backed autocomplete repository.
func NewAutocompleteRepository(db database.DBTX) *AutocompleteRepository {
	return &AutocompleteRepository{db: db}
}

// Titles suggests published artworks by title, with their discriminatory
// terms attached so the frontend can render content notices.
func (r *AutocompleteRepository) Titles(ctx context.Context, q string, limit int) ([]repository.Suggestion, error) {
	query := `
		SELECT id, title
		FROM artworks
		WHERE published = TRUE
		  AND (title ILIKE $1 OR title_english ILIKE $1)
		ORDER BY title
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, likePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete titles: %w", err)
	}
	defer rows.Close()

	var (
		suggestions []repository.Suggestion
		ids         []string
	)
	for rows.Next() {
		var (
			id    string
			title string
		)
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scan title row: %w", err)
		}
		ids = append(ids, id)
		suggestions = append(suggestions, repository.Suggestion{ID: id, Label: title})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate title rows: %w", err)
	}

	terms, err := r.termsByArtworkIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range suggestions {
		id := suggestions[i].ID.(string)
		suggestions[i].Data = map[string]any{"discriminatory_terms": terms[id]}
	}

	return emptyIfNil(suggestions), nil
}

// Artists suggests persons by name.
func (r *AutocompleteRepository) Artists(ctx context.Context, q string, limit int) ([]repository.Suggestion, error) {
	query := `
		SELECT id, name
		FROM persons
		WHERE name ILIKE $1
		ORDER BY name
		LIMIT $2`

	return r.scanIntSuggestions(ctx, query, "autocomplete artists", likePattern(q), limit)
}

// Keywords suggests keyword nodes by name or English name, localized.
func (r *AutocompleteRepository) Keywords(ctx context.Context, q, lang string, limit int) ([]repository.Suggestion, error) {
	query := `
		SELECT id, name, name_en
		FROM keywords
		WHERE name ILIKE $1 OR name_en ILIKE $1
		ORDER BY name
		LIMIT $2`

	return r.scanLocalizedSuggestions(ctx, query, "autocomplete keywords", lang, likePattern(q), limit)
}

// Locations suggests location nodes by name or English name, localized.
func (r *AutocompleteRepository) Locations(ctx context.Context, q, lang string, limit int) ([]repository.Suggestion, error) {
	query := `
		SELECT id, name, name_en
		FROM locations
		WHERE name ILIKE $1 OR name_en ILIKE $1
		ORDER BY name
		LIMIT $2`

	return r.scanLocalizedSuggestions(ctx, query, "autocomplete locations", lang, likePattern(q), limit)
}

// Users suggests users whose full name word-matches the query with a trigram
// similarity of at least 0.6, best matches first.
func (r *AutocompleteRepository) Users(ctx context.Context, q string, limit int) ([]repository.Suggestion, error) {
	query := `
		SELECT id, first_name, last_name
		FROM users
		WHERE word_similarity($1, first_name || ' ' || last_name) >= $2
		ORDER BY word_similarity($1, first_name || ' ' || last_name) DESC
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, q, userSimilarityThreshold, limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete users: %w", err)
	}
	defer rows.Close()

	var suggestions []repository.Suggestion
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		suggestions = append(suggestions, repository.Suggestion{ID: u.ID, Label: u.DisplayName()})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return emptyIfNil(suggestions), nil
}

// EditableAlbums suggests albums the user owns or may edit, by title.
func (r *AutocompleteRepository) EditableAlbums(ctx context.Context, userID, q string, limit int) ([]repository.Suggestion, error) {
	query := `
		SELECT a.id, a.title
		FROM albums a
		WHERE (a.owner_id = $1
		   OR EXISTS (
			SELECT 1 FROM album_permissions ap
			WHERE ap.album_id = a.id AND ap.user_id = $1 AND ap.permission = 'EDIT'))
		  AND a.title ILIKE $2
		ORDER BY a.title
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, userID, likePattern(q), limit)
	if err != nil {
		return nil, fmt.Errorf("autocomplete editable albums: %w", err)
	}
	defer rows.Close()

	var suggestions []repository.Suggestion
	for rows.Next() {
		var (
			id    string
			title string
		)
		if err := rows.Scan(&id, &title); err != nil {
			return nil, fmt.Errorf("scan album row: %w", err)
		}
		suggestions = append(suggestions, repository.Suggestion{ID: id, Label: title})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate album rows: %w", err)
	}

	return emptyIfNil(suggestions), nil
}

func (r *AutocompleteRepository) scanIntSuggestions(ctx context.Context, query, op string, args ...any) ([]repository.Suggestion, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var suggestions []repository.Suggestion
	for rows.Next() {
		var (
			id    int64
			label string
		)
		if err := rows.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		suggestions = append(suggestions, repository.Suggestion{ID: id, Label: label})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate rows: %w", op, err)
	}

	return emptyIfNil(suggestions), nil
}

func (r *AutocompleteRepository) scanLocalizedSuggestions(ctx context.Context, query, op, lang string, args ...any) ([]repository.Suggestion, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var suggestions []repository.Suggestion
	for rows.Next() {
		var (
			id           int64
			name, nameEn string
		)
		if err := rows.Scan(&id, &name, &nameEn); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", op, err)
		}
		node := domain.Keyword{ID: id, Name: name, NameEn: nameEn}
		suggestions = append(suggestions, repository.Suggestion{ID: id, Label: node.LocalizedName(lang)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate rows: %w", op, err)
	}

	return emptyIfNil(suggestions), nil
}

// termsByArtworkIDs mirrors ArtworkRepository.TermsByArtworkIDs for title
// suggestions.
func (r *AutocompleteRepository) termsByArtworkIDs(ctx context.Context, artworkIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(artworkIDs))
	if len(artworkIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT rel.artwork_id, t.term
		FROM artwork_discriminatory_terms rel
		JOIN discriminatory_terms t ON t.id = rel.term_id
		WHERE rel.artwork_id = ANY($1)
		ORDER BY rel.artwork_id, t.term`

	rows, err := r.db.Query(ctx, query, artworkIDs)
	if err != nil {
		return nil, fmt.Errorf("load discriminatory terms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var artworkID, term string
		if err := rows.Scan(&artworkID, &term); err != nil {
			return nil, fmt.Errorf("scan term row: %w", err)
		}
		result[artworkID] = append(result[artworkID], term)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate term rows: %w", err)
	}

	return result, nil
}

func emptyIfNil(s []repository.Suggestion) []repository.Suggestion {
	if s == nil {
		return []repository.Suggestion{}
	}
	return s
}
