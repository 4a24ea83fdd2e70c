package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	"github.com/base-angewandte/image-backend-sub000/pkg/database"
	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

const artworkColumns = `id, title, title_english, title_comment, date, date_year_from, date_year_to,
		material_description_de, material_description_en, dimensions_display, comments_de, comments_en,
		credits, credits_link, link, location_id, image_original, image_fullsize, published, checked,
		created_at, updated_at`

// Person relation join tables, one per role.
var personRelationTables = map[string]string{
	domain.RoleArtist:          "artwork_artists",
	domain.RolePhotographer:    "artwork_photographers",
	domain.RoleAuthor:          "artwork_authors",
	domain.RoleGraphicDesigner: "artwork_graphic_designers",
}

// ArtworkRepository implements repository.ArtworkRepository using PostgreSQL.
type ArtworkRepository struct {
	db database.DBTX
}

// NewArtworkRepository creates a new PostgreSQL-backed artwork repository.
func NewArtworkRepository(db database.DBTX) *ArtworkRepository {
	return &ArtworkRepository{db: db}
}

// Create inserts a new artwork together with its relation rows.
func (r *ArtworkRepository) Create(ctx context.Context, a *domain.Artwork) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO artworks (` + artworkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	_, err = tx.Exec(ctx, query,
		a.ID,
		a.Title,
		a.TitleEnglish,
		a.TitleComment,
		a.Date,
		a.DateYearFrom,
		a.DateYearTo,
		a.MaterialDescriptionDE,
		a.MaterialDescriptionEN,
		a.DimensionsDisplay,
		a.CommentsDE,
		a.CommentsEN,
		a.Credits,
		a.CreditsLink,
		a.Link,
		a.LocationID,
		a.ImageOriginal,
		a.ImageFullsize,
		a.Published,
		a.Checked,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("artwork", "id", a.ID)
		}
		return fmt.Errorf("insert artwork: %w", err)
	}

	if err := r.replaceRelations(ctx, tx, a); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID retrieves an artwork by its identifier, relations included.
func (r *ArtworkRepository) GetByID(ctx context.Context, id string) (*domain.Artwork, error) {
	query := `
		SELECT ` + artworkColumns + `
		FROM artworks
		WHERE id = $1`

	a, err := r.scanArtwork(ctx, query, id)
	if err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// List returns artworks matching the filter along with the total count.
func (r *ArtworkRepository) List(ctx context.Context, filter repository.ArtworkFilter) ([]domain.Artwork, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.OnlyPublished {
		conditions = append(conditions, "published = TRUE")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Use count(*) OVER() for total count in a single query.
	query := fmt.Sprintf(`
		SELECT `+artworkColumns+`,
			   count(*) OVER() AS total_count
		FROM artworks
		%s
		ORDER BY updated_at DESC, title ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list artworks: %w", err)
	}
	defer rows.Close()

	var (
		artworks   []domain.Artwork
		totalCount int
	)

	for rows.Next() {
		var a domain.Artwork
		if err := scanArtworkFields(rows, &a, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("scan artwork row: %w", err)
		}
		artworks = append(artworks, a)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate artwork rows: %w", err)
	}

	if artworks == nil {
		artworks = []domain.Artwork{}
	}

	return artworks, totalCount, nil
}

// Update modifies an existing artwork and replaces its relation rows.
func (r *ArtworkRepository) Update(ctx context.Context, a *domain.Artwork) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	a.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE artworks
		SET title = $1, title_english = $2, title_comment = $3, date = $4,
		    date_year_from = $5, date_year_to = $6, material_description_de = $7,
		    material_description_en = $8, dimensions_display = $9, comments_de = $10,
		    comments_en = $11, credits = $12, credits_link = $13, link = $14,
		    location_id = $15, image_original = $16, image_fullsize = $17,
		    published = $18, checked = $19, updated_at = $20
		WHERE id = $21`

	ct, err := tx.Exec(ctx, query,
		a.Title,
		a.TitleEnglish,
		a.TitleComment,
		a.Date,
		a.DateYearFrom,
		a.DateYearTo,
		a.MaterialDescriptionDE,
		a.MaterialDescriptionEN,
		a.DimensionsDisplay,
		a.CommentsDE,
		a.CommentsEN,
		a.Credits,
		a.CreditsLink,
		a.Link,
		a.LocationID,
		a.ImageOriginal,
		a.ImageFullsize,
		a.Published,
		a.Checked,
		a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("update artwork: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("artwork", a.ID)
	}

	if err := r.replaceRelations(ctx, tx, a); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes an artwork. Relation rows cascade via foreign keys.
func (r *ArtworkRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM artworks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("artwork", id)
	}

	return nil
}

// ArtistsByArtworkIDs batch-loads the artist relation for a result page.
func (r *ArtworkRepository) ArtistsByArtworkIDs(ctx context.Context, artworkIDs []string) (map[string][]domain.Person, error) {
	result := make(map[string][]domain.Person, len(artworkIDs))
	if len(artworkIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT rel.artwork_id, p.id, p.name, p.synonyms
		FROM artwork_artists rel
		JOIN persons p ON p.id = rel.person_id
		WHERE rel.artwork_id = ANY($1)
		ORDER BY rel.artwork_id, rel.position`

	rows, err := r.db.Query(ctx, query, artworkIDs)
	if err != nil {
		return nil, fmt.Errorf("load artists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			artworkID string
			p         domain.Person
		)
		if err := rows.Scan(&artworkID, &p.ID, &p.Name, &p.Synonyms); err != nil {
			return nil, fmt.Errorf("scan artist row: %w", err)
		}
		result[artworkID] = append(result[artworkID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artist rows: %w", err)
	}

	return result, nil
}

// TermsByArtworkIDs batch-loads discriminatory terms for a result page,
// ordered by term.
func (r *ArtworkRepository) TermsByArtworkIDs(ctx context.Context, artworkIDs []string) (map[string][]string, error) {
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
		var (
			artworkID string
			term      string
		)
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

// replaceRelations rewrites all relation rows of an artwork inside the given tx.
func (r *ArtworkRepository) replaceRelations(ctx context.Context, tx pgx.Tx, a *domain.Artwork) error {
	personIDs := map[string][]domain.Person{
		domain.RoleArtist:          a.Artists,
		domain.RolePhotographer:    a.Photographers,
		domain.RoleAuthor:          a.Authors,
		domain.RoleGraphicDesigner: a.GraphicDesigners,
	}
	for role, persons := range personIDs {
		table := personRelationTables[role]
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE artwork_id = $1", table), a.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
		for i, p := range persons {
			_, err := tx.Exec(ctx,
				fmt.Sprintf("INSERT INTO %s (artwork_id, person_id, position) VALUES ($1, $2, $3)", table),
				a.ID, p.ID, i,
			)
			if err != nil {
				return fmt.Errorf("insert %s: %w", table, err)
			}
		}
	}

	idRelations := []struct {
		table  string
		column string
		ids    []int64
	}{
		{"artwork_keywords", "keyword_id", a.KeywordIDs},
		{"artwork_materials", "material_id", a.MaterialIDs},
		{"artwork_places_of_production", "location_id", a.PlaceOfProductionIDs},
	}
	for _, rel := range idRelations {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE artwork_id = $1", rel.table), a.ID); err != nil {
			return fmt.Errorf("clear %s: %w", rel.table, err)
		}
		for _, id := range rel.ids {
			_, err := tx.Exec(ctx,
				fmt.Sprintf("INSERT INTO %s (artwork_id, %s) VALUES ($1, $2)", rel.table, rel.column),
				a.ID, id,
			)
			if err != nil {
				return fmt.Errorf("insert %s: %w", rel.table, err)
			}
		}
	}

	return nil
}

// loadRelations populates the relation fields of a single artwork.
func (r *ArtworkRepository) loadRelations(ctx context.Context, a *domain.Artwork) error {
	for role, table := range personRelationTables {
		query := fmt.Sprintf(`
			SELECT p.id, p.name, p.synonyms
			FROM %s rel
			JOIN persons p ON p.id = rel.person_id
			WHERE rel.artwork_id = $1
			ORDER BY rel.position`, table)

		rows, err := r.db.Query(ctx, query, a.ID)
		if err != nil {
			return fmt.Errorf("load %s: %w", table, err)
		}

		var persons []domain.Person
		for rows.Next() {
			var p domain.Person
			if err := rows.Scan(&p.ID, &p.Name, &p.Synonyms); err != nil {
				rows.Close()
				return fmt.Errorf("scan %s row: %w", table, err)
			}
			persons = append(persons, p)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate %s rows: %w", table, err)
		}

		switch role {
		case domain.RoleArtist:
			a.Artists = persons
		case domain.RolePhotographer:
			a.Photographers = persons
		case domain.RoleAuthor:
			a.Authors = persons
		case domain.RoleGraphicDesigner:
			a.GraphicDesigners = persons
		}
	}

	idRelations := []struct {
		table  string
		column string
		target *[]int64
	}{
		{"artwork_keywords", "keyword_id", &a.KeywordIDs},
		{"artwork_materials", "material_id", &a.MaterialIDs},
		{"artwork_places_of_production", "location_id", &a.PlaceOfProductionIDs},
	}
	for _, rel := range idRelations {
		query := fmt.Sprintf("SELECT %s FROM %s WHERE artwork_id = $1 ORDER BY %s", rel.column, rel.table, rel.column)
		rows, err := r.db.Query(ctx, query, a.ID)
		if err != nil {
			return fmt.Errorf("load %s: %w", rel.table, err)
		}
		var ids []int64
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return fmt.Errorf("scan %s row: %w", rel.table, err)
			}
			ids = append(ids, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate %s rows: %w", rel.table, err)
		}
		*rel.target = ids
	}

	terms, err := r.TermsByArtworkIDs(ctx, []string{a.ID})
	if err != nil {
		return err
	}
	a.DiscriminatoryTerms = terms[a.ID]

	return nil
}

// scanArtwork is a helper that executes a query expected to return a single artwork row.
func (r *ArtworkRepository) scanArtwork(ctx context.Context, query string, args ...any) (*domain.Artwork, error) {
	var a domain.Artwork

	row := r.db.QueryRow(ctx, query, args...)
	if err := scanArtworkFields(row, &a, nil); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan artwork: %w", err)
	}

	return &a, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanArtworkFields scans the artworkColumns list, plus an optional trailing
// total_count column, into an Artwork.
func scanArtworkFields(row rowScanner, a *domain.Artwork, totalCount *int) error {
	dest := []any{
		&a.ID,
		&a.Title,
		&a.TitleEnglish,
		&a.TitleComment,
		&a.Date,
		&a.DateYearFrom,
		&a.DateYearTo,
		&a.MaterialDescriptionDE,
		&a.MaterialDescriptionEN,
		&a.DimensionsDisplay,
		&a.CommentsDE,
		&a.CommentsEN,
		&a.Credits,
		&a.CreditsLink,
		&a.Link,
		&a.LocationID,
		&a.ImageOriginal,
		&a.ImageFullsize,
		&a.Published,
		&a.Checked,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
	if totalCount != nil {
		dest = append(dest, totalCount)
	}
	return row.Scan(dest...)
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
