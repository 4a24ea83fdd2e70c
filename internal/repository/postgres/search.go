package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	"github.com/base-angewandte/image-backend-sub000/internal/search"
	"github.com/base-angewandte/image-backend-sub000/pkg/database"
)

// minRank is the relevance threshold below which full-text matches are dropped.
const minRank = 0.1

// SearchRepository implements repository.SearchRepository using PostgreSQL
// full-text search (tsvector) combined with pg_trgm word similarity.
type SearchRepository struct {
	db database.DBTX
}

// NewSearchRepository creates a new PostgreSQL-backed search repository.
func NewSearchRepository(db database.DBTX) *SearchRepository {
	return &SearchRepository{db: db}
}

// searchQuery accumulates WHERE conditions and their positional arguments.
type searchQuery struct {
	conditions []string
	args       []any
}

// arg registers a query argument and returns its placeholder.
func (q *searchQuery) arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *searchQuery) where(cond string) {
	q.conditions = append(q.conditions, cond)
}

// rankExpression builds the relevance scorer for a query string placeholder:
// weighted tsvector rank (normalization 32 maps it into [0,1)) plus word
// similarities on the title, English title, and denormalized person names.
func rankExpression(qPlaceholder string) string {
	return fmt.Sprintf(
		`ts_rank(a.search_vector, websearch_to_tsquery('simple', %[1]s), 32)
		 + word_similarity(%[1]s, a.title)
		 + word_similarity(%[1]s, a.title_english)
		 + word_similarity(%[1]s, a.search_persons)`,
		qPlaceholder,
	)
}

// Search executes the ranked query for the given criteria and returns one
// result page plus the total number of matching rows.
func (r *SearchRepository) Search(ctx context.Context, c *search.Criteria) ([]repository.SearchHit, int, error) {
	q := &searchQuery{}

	// Only published artworks are ever searchable.
	q.where("a.published = TRUE")

	rankExpr := "1.0"
	orderBy := "a.updated_at DESC, a.title ASC"
	simColumns := "0.0 AS sim_title, 0.0 AS sim_title_en, 0.0 AS sim_persons"

	if c.Q != "" {
		p := q.arg(c.Q)
		rankExpr = rankExpression(p)
		q.where(fmt.Sprintf("(%s) >= %v", rankExpr, minRank))
		simColumns = fmt.Sprintf(
			`word_similarity(%[1]s, a.title) AS sim_title,
			 word_similarity(%[1]s, a.title_english) AS sim_title_en,
			 word_similarity(%[1]s, a.search_persons) AS sim_persons`,
			p,
		)
		orderBy = "rank DESC, sim_title DESC, sim_title_en DESC, sim_persons DESC, a.updated_at DESC"
	} else if c.HasFilters() {
		orderBy = "a.title ASC"
	}

	if len(c.Exclude) > 0 {
		q.where(fmt.Sprintf("NOT (a.id = ANY(%s))", q.arg(c.Exclude)))
	}

	addTitleConditions(q, c.Title)
	addArtistConditions(q, c.Artists)
	addPlaceOfProductionConditions(q, c.PlaceOfProduction)
	addLocationConditions(q, c.Location)
	addKeywordConditions(q, c.Keywords)
	addDateCondition(q, c.Date)

	query := fmt.Sprintf(`
		SELECT a.id, a.title, a.title_english, a.date, a.credits,
			   a.image_original, a.image_fullsize, a.updated_at,
			   %s AS rank,
			   %s,
			   count(*) OVER() AS total_count
		FROM artworks a
		WHERE %s
		ORDER BY %s
		LIMIT %s OFFSET %s`,
		rankExpr,
		simColumns,
		strings.Join(q.conditions, "\n		  AND "),
		orderBy,
		q.arg(c.Limit),
		q.arg(c.Offset),
	)

	rows, err := r.db.Query(ctx, query, q.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search artworks: %w", err)
	}
	defer rows.Close()

	var (
		hits       []repository.SearchHit
		totalCount int
	)

	for rows.Next() {
		var (
			hit                            repository.SearchHit
			simTitle, simTitleEn, simPersons float64
		)
		if err := rows.Scan(
			&hit.Artwork.ID,
			&hit.Artwork.Title,
			&hit.Artwork.TitleEnglish,
			&hit.Artwork.Date,
			&hit.Artwork.Credits,
			&hit.Artwork.ImageOriginal,
			&hit.Artwork.ImageFullsize,
			&hit.Artwork.UpdatedAt,
			&hit.Rank,
			&simTitle,
			&simTitleEn,
			&simPersons,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan search row: %w", err)
		}
		hit.Artwork.Published = true
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate search rows: %w", err)
	}

	if hits == nil {
		hits = []repository.SearchHit{}
	}

	return hits, totalCount, nil
}

// addTitleConditions matches free text against both title columns and
// references against the artwork ID.
func addTitleConditions(q *searchQuery, values []search.Value) {
	for _, v := range values {
		if v.IsRef() {
			q.where(fmt.Sprintf("a.id = %s", q.arg(v.ArtworkID)))
			continue
		}
		p := q.arg(likePattern(v.Text))
		q.where(fmt.Sprintf(
			"(unaccent(a.title) ILIKE unaccent(%[1]s) OR unaccent(a.title_english) ILIKE unaccent(%[1]s))", p,
		))
	}
}

// addArtistConditions matches via EXISTS so an artwork matching several
// artists still yields a single row.
func addArtistConditions(q *searchQuery, values []search.Value) {
	for _, v := range values {
		if v.IsRef() {
			q.where(fmt.Sprintf(`EXISTS (
				SELECT 1 FROM artwork_artists rel
				WHERE rel.artwork_id = a.id AND rel.person_id = %s)`, q.arg(v.ID)))
			continue
		}
		p := q.arg(likePattern(v.Text))
		q.where(fmt.Sprintf(`EXISTS (
			SELECT 1 FROM artwork_artists rel
			JOIN persons p ON p.id = rel.person_id
			WHERE rel.artwork_id = a.id
			  AND (unaccent(p.name) ILIKE unaccent(%[1]s)
			    OR unaccent(array_to_string(p.synonyms, ' ')) ILIKE unaccent(%[1]s)))`, p))
	}
}

// locationSubtree expands a location reference to the node and all its
// descendants.
func locationSubtree(placeholder string) string {
	return fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM locations WHERE id = %s
			UNION ALL
			SELECT l.id FROM locations l JOIN subtree s ON l.parent_id = s.id
		)
		SELECT id FROM subtree`, placeholder)
}

// keywordSubtree expands a keyword reference to the node and all its
// descendants.
func keywordSubtree(placeholder string) string {
	return fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM keywords WHERE id = %s
			UNION ALL
			SELECT k.id FROM keywords k JOIN subtree s ON k.parent_id = s.id
		)
		SELECT id FROM subtree`, placeholder)
}

// locationTextMatch matches a location's name, English name, or synonyms.
func locationTextMatch(placeholder string) string {
	return fmt.Sprintf(`(unaccent(l.name) ILIKE unaccent(%[1]s)
			    OR unaccent(l.name_en) ILIKE unaccent(%[1]s)
			    OR unaccent(array_to_string(l.synonyms, ' ')) ILIKE unaccent(%[1]s))`, placeholder)
}

func addPlaceOfProductionConditions(q *searchQuery, values []search.Value) {
	for _, v := range values {
		if v.IsRef() {
			q.where(fmt.Sprintf(`EXISTS (
				SELECT 1 FROM artwork_places_of_production rel
				WHERE rel.artwork_id = a.id AND rel.location_id IN (%s))`,
				locationSubtree(q.arg(v.ID))))
			continue
		}
		p := q.arg(likePattern(v.Text))
		q.where(fmt.Sprintf(`EXISTS (
			SELECT 1 FROM artwork_places_of_production rel
			JOIN locations l ON l.id = rel.location_id
			WHERE rel.artwork_id = a.id AND %s)`, locationTextMatch(p)))
	}
}

func addLocationConditions(q *searchQuery, values []search.Value) {
	for _, v := range values {
		if v.IsRef() {
			q.where(fmt.Sprintf("a.location_id IN (%s)", locationSubtree(q.arg(v.ID))))
			continue
		}
		p := q.arg(likePattern(v.Text))
		q.where(fmt.Sprintf(`EXISTS (
			SELECT 1 FROM locations l
			WHERE l.id = a.location_id AND %s)`, locationTextMatch(p)))
	}
}

func addKeywordConditions(q *searchQuery, values []search.Value) {
	for _, v := range values {
		if v.IsRef() {
			q.where(fmt.Sprintf(`EXISTS (
				SELECT 1 FROM artwork_keywords rel
				WHERE rel.artwork_id = a.id AND rel.keyword_id IN (%s))`,
				keywordSubtree(q.arg(v.ID))))
			continue
		}
		p := q.arg(likePattern(v.Text))
		q.where(fmt.Sprintf(`EXISTS (
			SELECT 1 FROM artwork_keywords rel
			JOIN keywords k ON k.id = rel.keyword_id
			WHERE rel.artwork_id = a.id
			  AND (unaccent(k.name) ILIKE unaccent(%[1]s)
			    OR unaccent(k.name_en) ILIKE unaccent(%[1]s)))`, p))
	}
}

// addDateCondition applies the year-range rules: a single bound matches every
// artwork whose span touches that side of the timeline, both bounds match
// artworks whose span intersects or fully contains the range.
func addDateCondition(q *searchQuery, dr *search.DateRange) {
	if dr == nil {
		return
	}

	switch {
	case dr.To == nil:
		p := q.arg(*dr.From)
		q.where(fmt.Sprintf("(a.date_year_from >= %[1]s OR a.date_year_to >= %[1]s)", p))
	case dr.From == nil:
		p := q.arg(*dr.To)
		q.where(fmt.Sprintf("(a.date_year_from <= %[1]s OR a.date_year_to <= %[1]s)", p))
	default:
		from := q.arg(*dr.From)
		to := q.arg(*dr.To)
		q.where(fmt.Sprintf(`(a.date_year_from BETWEEN %[1]s AND %[2]s
			OR a.date_year_to BETWEEN %[1]s AND %[2]s
			OR (a.date_year_from <= %[1]s AND a.date_year_to >= %[2]s))`, from, to))
	}
}

func likePattern(s string) string {
	return "%" + s + "%"
}
