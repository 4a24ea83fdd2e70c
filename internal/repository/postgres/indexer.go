package postgres

import (
	"context"
	"fmt"

	"github.com/base-angewandte/image-backend-sub000/pkg/database"
	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

// IndexRepository implements repository.IndexRepository using PostgreSQL.
// It recomputes the denormalized search columns and the weighted search
// vector of artworks.
type IndexRepository struct {
	db database.DBTX
}

// NewIndexRepository creates a new PostgreSQL-backed index repository.
func NewIndexRepository(db database.DBTX) *IndexRepository {
	return &IndexRepository{db: db}
}

// rebuildQuery assembles the four shadow strings in a subquery, then writes
// them and the weighted tsvector in one UPDATE. The shadow strings cover:
// person names with synonyms (all roles), location names/English names/
// synonyms including descendants of the artwork's nodes, keyword names and
// English names including descendants, and material names plus the free-text
// material descriptions.
const rebuildQuery = `
	UPDATE artworks SET
		search_persons = s.persons,
		search_locations = s.locations,
		search_keywords = s.keywords,
		search_materials = s.materials,
		search_vector =
			setweight(to_tsvector('simple', coalesce(artworks.title, '')), 'A') ||
			setweight(to_tsvector('simple', coalesce(artworks.title_english, '')), 'A') ||
			setweight(to_tsvector('simple', s.persons), 'A') ||
			setweight(to_tsvector('german', coalesce(artworks.comments_de, '')), 'B') ||
			setweight(to_tsvector('english', coalesce(artworks.comments_en, '')), 'B') ||
			setweight(to_tsvector('simple', s.keywords), 'B') ||
			setweight(to_tsvector('simple', s.locations), 'B') ||
			setweight(to_tsvector('simple', coalesce(artworks.credits, '')), 'C') ||
			setweight(to_tsvector('simple', coalesce(artworks.credits_link, '')), 'C') ||
			setweight(to_tsvector('simple', s.materials), 'C') ||
			setweight(to_tsvector('simple', coalesce(artworks.dimensions_display, '')), 'C') ||
			setweight(to_tsvector('simple', coalesce(artworks.link, '')), 'C') ||
			setweight(to_tsvector('simple', coalesce(artworks.date, '')), 'C')
	FROM (
		SELECT
			coalesce((
				SELECT string_agg(p.name || CASE WHEN coalesce(array_length(p.synonyms, 1), 0) = 0
					THEN '' ELSE ' ' || array_to_string(p.synonyms, ' ') END, ' ')
				FROM persons p
				WHERE p.id IN (
					SELECT person_id FROM artwork_artists WHERE artwork_id = $1
					UNION
					SELECT person_id FROM artwork_photographers WHERE artwork_id = $1
					UNION
					SELECT person_id FROM artwork_authors WHERE artwork_id = $1
					UNION
					SELECT person_id FROM artwork_graphic_designers WHERE artwork_id = $1
				)
			), '') AS persons,
			coalesce((
				WITH RECURSIVE loc_tree AS (
					SELECT l.id, l.name, l.name_en, l.synonyms
					FROM locations l
					WHERE l.id IN (SELECT location_id FROM artwork_places_of_production WHERE artwork_id = $1)
					   OR l.id = (SELECT location_id FROM artworks WHERE id = $1)
					UNION
					SELECT c.id, c.name, c.name_en, c.synonyms
					FROM locations c JOIN loc_tree t ON c.parent_id = t.id
				)
				SELECT string_agg(name
					|| CASE WHEN name_en = '' THEN '' ELSE ' ' || name_en END
					|| CASE WHEN coalesce(array_length(synonyms, 1), 0) = 0
						THEN '' ELSE ' ' || array_to_string(synonyms, ' ') END, ' ')
				FROM loc_tree
			), '') AS locations,
			coalesce((
				WITH RECURSIVE kw_tree AS (
					SELECT k.id, k.name, k.name_en
					FROM keywords k
					WHERE k.id IN (SELECT keyword_id FROM artwork_keywords WHERE artwork_id = $1)
					UNION
					SELECT c.id, c.name, c.name_en
					FROM keywords c JOIN kw_tree t ON c.parent_id = t.id
				)
				SELECT string_agg(name
					|| CASE WHEN name_en = '' THEN '' ELSE ' ' || name_en END, ' ')
				FROM kw_tree
			), '') AS keywords,
			trim(coalesce((
				SELECT string_agg(m.name
					|| CASE WHEN m.name_en = '' THEN '' ELSE ' ' || m.name_en END, ' ')
				FROM materials m
				WHERE m.id IN (SELECT material_id FROM artwork_materials WHERE artwork_id = $1)
			), '')
				|| ' ' || (SELECT coalesce(material_description_de, '') FROM artworks WHERE id = $1)
				|| ' ' || (SELECT coalesce(material_description_en, '') FROM artworks WHERE id = $1)
			) AS materials
	) s
	WHERE artworks.id = $1`

// Rebuild recomputes the shadow columns and search vector of one artwork.
func (r *IndexRepository) Rebuild(ctx context.Context, artworkID string) error {
	ct, err := r.db.Exec(ctx, rebuildQuery, artworkID)
	if err != nil {
		return fmt.Errorf("rebuild search vector: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("artwork", artworkID)
	}

	return nil
}

// DependentsOnPerson returns the IDs of artworks referencing the person in
// any role.
func (r *IndexRepository) DependentsOnPerson(ctx context.Context, personID int64) ([]string, error) {
	query := `
		SELECT artwork_id FROM artwork_artists WHERE person_id = $1
		UNION
		SELECT artwork_id FROM artwork_photographers WHERE person_id = $1
		UNION
		SELECT artwork_id FROM artwork_authors WHERE person_id = $1
		UNION
		SELECT artwork_id FROM artwork_graphic_designers WHERE person_id = $1`

	return r.scanIDs(ctx, query, "person dependents", personID)
}

// DependentsOnKeyword returns the IDs of artworks referencing the keyword or
// any of its ancestors. An artwork indexes the descendants of its keyword
// nodes, so a change to a node affects every artwork tagged above it.
func (r *IndexRepository) DependentsOnKeyword(ctx context.Context, keywordID int64) ([]string, error) {
	query := `
		WITH RECURSIVE ancestors AS (
			SELECT id, parent_id FROM keywords WHERE id = $1
			UNION ALL
			SELECT k.id, k.parent_id FROM keywords k JOIN ancestors a ON k.id = a.parent_id
		)
		SELECT DISTINCT artwork_id
		FROM artwork_keywords
		WHERE keyword_id IN (SELECT id FROM ancestors)`

	return r.scanIDs(ctx, query, "keyword dependents", keywordID)
}

// DependentsOnLocation returns the IDs of artworks referencing the location
// or any of its ancestors, as whereabouts or place of production.
func (r *IndexRepository) DependentsOnLocation(ctx context.Context, locationID int64) ([]string, error) {
	query := `
		WITH RECURSIVE ancestors AS (
			SELECT id, parent_id FROM locations WHERE id = $1
			UNION ALL
			SELECT l.id, l.parent_id FROM locations l JOIN ancestors a ON l.id = a.parent_id
		)
		SELECT artwork_id
		FROM artwork_places_of_production
		WHERE location_id IN (SELECT id FROM ancestors)
		UNION
		SELECT id
		FROM artworks
		WHERE location_id IN (SELECT id FROM ancestors)`

	return r.scanIDs(ctx, query, "location dependents", locationID)
}

// DependentsOnMaterial returns the IDs of artworks referencing the material.
func (r *IndexRepository) DependentsOnMaterial(ctx context.Context, materialID int64) ([]string, error) {
	query := `SELECT DISTINCT artwork_id FROM artwork_materials WHERE material_id = $1`

	return r.scanIDs(ctx, query, "material dependents", materialID)
}

func (r *IndexRepository) scanIDs(ctx context.Context, query, op string, args ...any) ([]string, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", op, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", op, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", op, err)
	}

	return ids, nil
}
