package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/pkg/database"
	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

// FolderRepository implements repository.FolderRepository using PostgreSQL.
type FolderRepository struct {
	db database.DBTX
}

// NewFolderRepository creates a new PostgreSQL-backed folder repository.
func NewFolderRepository(db database.DBTX) *FolderRepository {
	return &FolderRepository{db: db}
}

// Create inserts a new folder.
func (r *FolderRepository) Create(ctx context.Context, f *domain.Folder) error {
	query := `
		INSERT INTO folders (id, title, owner_id, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query, f.ID, f.Title, f.OwnerID, f.ParentID, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("folder", "id", f.ID)
		}
		return fmt.Errorf("insert folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder with its album memberships.
func (r *FolderRepository) GetByID(ctx context.Context, id string) (*domain.Folder, error) {
	query := `
		SELECT id, title, owner_id, parent_id, created_at, updated_at
		FROM folders
		WHERE id = $1`

	var f domain.Folder
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Title, &f.OwnerID, &f.ParentID, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan folder: %w", err)
	}

	albumIDs, err := r.albumIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	f.AlbumIDs = albumIDs

	return &f, nil
}

// ListForUser returns all folders owned by the user.
func (r *FolderRepository) ListForUser(ctx context.Context, userID string) ([]domain.Folder, error) {
	query := `
		SELECT id, title, owner_id, parent_id, created_at, updated_at
		FROM folders
		WHERE owner_id = $1
		ORDER BY title`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []domain.Folder
	for rows.Next() {
		var f domain.Folder
		if err := rows.Scan(&f.ID, &f.Title, &f.OwnerID, &f.ParentID, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan folder row: %w", err)
		}
		folders = append(folders, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder rows: %w", err)
	}

	if folders == nil {
		folders = []domain.Folder{}
	}

	return folders, nil
}

// Update modifies a folder's title and parent.
func (r *FolderRepository) Update(ctx context.Context, f *domain.Folder) error {
	f.UpdatedAt = time.Now().UTC()

	ct, err := r.db.Exec(ctx,
		`UPDATE folders SET title = $1, parent_id = $2, updated_at = $3 WHERE id = $4`,
		f.Title, f.ParentID, f.UpdatedAt, f.ID,
	)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("folder", f.ID)
	}

	return nil
}

// Delete removes a folder. Album memberships cascade; albums themselves stay.
func (r *FolderRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("folder", id)
	}

	return nil
}

// GetRootForUser returns the user's root folder, creating it on first use.
func (r *FolderRepository) GetRootForUser(ctx context.Context, userID string) (*domain.Folder, error) {
	query := `
		SELECT id, title, owner_id, parent_id, created_at, updated_at
		FROM folders
		WHERE owner_id = $1 AND parent_id IS NULL`

	var f domain.Folder
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&f.ID, &f.Title, &f.OwnerID, &f.ParentID, &f.CreatedAt, &f.UpdatedAt,
	)
	if err == nil {
		return &f, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("scan root folder: %w", err)
	}

	now := time.Now().UTC()
	root := &domain.Folder{
		ID:        uuid.New().String(),
		Title:     domain.RootFolderTitle,
		OwnerID:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Create(ctx, root); err != nil {
		return nil, err
	}

	return root, nil
}

// AddAlbum places an album into a folder. Adding it twice is a no-op.
func (r *FolderRepository) AddAlbum(ctx context.Context, folderID, albumID string) error {
	query := `
		INSERT INTO folder_albums (folder_id, album_id)
		VALUES ($1, $2)
		ON CONFLICT (folder_id, album_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, query, folderID, albumID); err != nil {
		return fmt.Errorf("add album to folder: %w", err)
	}

	return nil
}

// RemoveAlbum takes an album out of a folder.
func (r *FolderRepository) RemoveAlbum(ctx context.Context, folderID, albumID string) error {
	ct, err := r.db.Exec(ctx,
		`DELETE FROM folder_albums WHERE folder_id = $1 AND album_id = $2`,
		folderID, albumID,
	)
	if err != nil {
		return fmt.Errorf("remove album from folder: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("folder album", albumID)
	}

	return nil
}

func (r *FolderRepository) albumIDs(ctx context.Context, folderID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT album_id FROM folder_albums WHERE folder_id = $1 ORDER BY album_id`,
		folderID,
	)
	if err != nil {
		return nil, fmt.Errorf("load folder albums: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan folder album row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder album rows: %w", err)
	}

	return ids, nil
}
