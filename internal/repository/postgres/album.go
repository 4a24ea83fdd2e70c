package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/pkg/database"
	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

// AlbumRepository implements repository.AlbumRepository using PostgreSQL.
type AlbumRepository struct {
	db database.DBTX
}

// NewAlbumRepository creates a new PostgreSQL-backed album repository.
func NewAlbumRepository(db database.DBTX) *AlbumRepository {
	return &AlbumRepository{db: db}
}

// Create inserts a new album.
func (r *AlbumRepository) Create(ctx context.Context, a *domain.Album) error {
	query := `
		INSERT INTO albums (id, title, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, a.ID, a.Title, a.OwnerID, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("album", "id", a.ID)
		}
		return fmt.Errorf("insert album: %w", err)
	}

	return nil
}

// GetByID retrieves an album with its ordered artwork IDs.
func (r *AlbumRepository) GetByID(ctx context.Context, id string) (*domain.Album, error) {
	query := `
		SELECT id, title, owner_id, created_at, updated_at
		FROM albums
		WHERE id = $1`

	var a domain.Album
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Title, &a.OwnerID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan album: %w", err)
	}

	artworkIDs, err := r.artworkIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	a.ArtworkIDs = artworkIDs

	return &a, nil
}

// ListForUser returns albums the user owns or has been granted access to.
func (r *AlbumRepository) ListForUser(ctx context.Context, userID string) ([]domain.Album, error) {
	query := `
		SELECT a.id, a.title, a.owner_id, a.created_at, a.updated_at
		FROM albums a
		WHERE a.owner_id = $1
		   OR EXISTS (
			SELECT 1 FROM album_permissions ap
			WHERE ap.album_id = a.id AND ap.user_id = $1)
		ORDER BY a.title`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var albums []domain.Album
	for rows.Next() {
		var a domain.Album
		if err := rows.Scan(&a.ID, &a.Title, &a.OwnerID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan album row: %w", err)
		}
		albums = append(albums, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate album rows: %w", err)
	}

	if albums == nil {
		albums = []domain.Album{}
	}

	return albums, nil
}

// Update modifies an album's title.
func (r *AlbumRepository) Update(ctx context.Context, a *domain.Album) error {
	a.UpdatedAt = time.Now().UTC()

	ct, err := r.db.Exec(ctx,
		`UPDATE albums SET title = $1, updated_at = $2 WHERE id = $3`,
		a.Title, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("album", a.ID)
	}

	return nil
}

// Delete removes an album. Memberships and permissions cascade.
func (r *AlbumRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("album", id)
	}

	return nil
}

// AppendArtwork adds an artwork at the end of the album. Appending an artwork
// twice is a no-op.
func (r *AlbumRepository) AppendArtwork(ctx context.Context, albumID, artworkID string) error {
	query := `
		INSERT INTO album_artworks (album_id, artwork_id, position)
		SELECT $1, $2, coalesce(max(position) + 1, 0)
		FROM album_artworks
		WHERE album_id = $1
		ON CONFLICT (album_id, artwork_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, albumID, artworkID); err != nil {
		return fmt.Errorf("append artwork to album: %w", err)
	}

	return nil
}

// RemoveArtwork removes an artwork from the album.
func (r *AlbumRepository) RemoveArtwork(ctx context.Context, albumID, artworkID string) error {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM album_artworks WHERE album_id = $1 AND artwork_id = $2`,
		albumID, artworkID,
	)
	if err != nil {
		return fmt.Errorf("remove artwork from album: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("album artwork", artworkID)
	}

	return nil
}

// Permissions returns all permission entries of an album.
func (r *AlbumRepository) Permissions(ctx context.Context, albumID string) ([]domain.AlbumPermission, error) {
	query := `
		SELECT id, album_id, user_id, permission, created_at
		FROM album_permissions
		WHERE album_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("list album permissions: %w", err)
	}
	defer rows.Close()

	var perms []domain.AlbumPermission
	for rows.Next() {
		var p domain.AlbumPermission
		if err := rows.Scan(&p.ID, &p.AlbumID, &p.UserID, &p.Permission, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan permission row: %w", err)
		}
		perms = append(perms, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate permission rows: %w", err)
	}

	return perms, nil
}

// UpsertPermission grants or changes a user's permission on an album.
func (r *AlbumRepository) UpsertPermission(ctx context.Context, p *domain.AlbumPermission) error {
	query := `
		INSERT INTO album_permissions (id, album_id, user_id, permission, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (album_id, user_id) DO UPDATE SET permission = EXCLUDED.permission`

	if _, err := r.db.Exec(ctx, query, p.ID, p.AlbumID, p.UserID, p.Permission, p.CreatedAt); err != nil {
		return fmt.Errorf("upsert album permission: %w", err)
	}

	return nil
}

// DeletePermission revokes a user's access to an album.
func (r *AlbumRepository) DeletePermission(ctx context.Context, albumID, userID string) error {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM album_permissions WHERE album_id = $1 AND user_id = $2`,
		albumID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete album permission: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("album permission", userID)
	}

	return nil
}

func (r *AlbumRepository) artworkIDs(ctx context.Context, albumID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT artwork_id FROM album_artworks WHERE album_id = $1 ORDER BY position`,
		albumID,
	)
	if err != nil {
		return nil, fmt.Errorf("load album artworks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan album artwork row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate album artwork rows: %w", err)
	}

	return ids, nil
}
