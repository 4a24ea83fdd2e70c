package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/internal/repository"
	apperrors "github.com/base-angewandte/image-backend-sub000/pkg/errors"
)

// AlbumService implements album curation and sharing.
type AlbumService struct {
	repo     repository.AlbumRepository
	artworks repository.ArtworkRepository
	users    repository.UserRepository
	logger   *slog.Logger
}

// NewAlbumService creates a new album service.
func NewAlbumService(repo repository.AlbumRepository, artworks repository.ArtworkRepository, users repository.UserRepository, logger *slog.Logger) *AlbumService {
	return &AlbumService{
		repo:     repo,
		artworks: artworks,
		users:    users,
		logger:   logger,
	}
}

// CreateAlbum creates an empty album owned by the requesting user.
func (s *AlbumService) CreateAlbum(ctx context.Context, userID, title string) (*domain.Album, error) {
	if title == "" {
		return nil, apperrors.InvalidInput("album title is required")
	}

	now := time.Now().UTC()
	album := &domain.Album{
		ID:        uuid.New().String(),
		Title:     title,
		OwnerID:   userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, album); err != nil {
		return nil, fmt.Errorf("create album: %w", err)
	}

	s.logger.InfoContext(ctx, "album created",
		slog.String("album_id", album.ID),
		slog.String("owner_id", userID),
	)

	return album, nil
}

// GetAlbum retrieves an album the user may see.
func (s *AlbumService) GetAlbum(ctx context.Context, userID, albumID string) (*domain.Album, error) {
	album, perms, err := s.loadAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	if !album.CanView(userID, perms) {
		return nil, apperrors.Forbidden("no access to this album")
	}

	return album, nil
}

// ListAlbums returns all albums the user owns or has been granted access to.
func (s *AlbumService) ListAlbums(ctx context.Context, userID string) ([]domain.Album, error) {
	albums, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

// UpdateAlbum renames an album. The owner and EDIT-sharees may rename.
func (s *AlbumService) UpdateAlbum(ctx context.Context, userID, albumID, title string) (*domain.Album, error) {
	if title == "" {
		return nil, apperrors.InvalidInput("album title is required")
	}

	album, perms, err := s.loadAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if !album.CanEdit(userID, perms) {
		return nil, apperrors.Forbidden("no edit access to this album")
	}

	album.Title = title
	if err := s.repo.Update(ctx, album); err != nil {
		return nil, fmt.Errorf("update album: %w", err)
	}

	return album, nil
}

// DeleteAlbum removes an album. Only the owner may delete.
func (s *AlbumService) DeleteAlbum(ctx context.Context, userID, albumID string) error {
	album, _, err := s.loadAlbum(ctx, albumID)
	if err != nil {
		return err
	}
	if album.OwnerID != userID {
		return apperrors.Forbidden("only the owner may delete an album")
	}

	if err := s.repo.Delete(ctx, albumID); err != nil {
		return fmt.Errorf("delete album: %w", err)
	}

	s.logger.InfoContext(ctx, "album deleted",
		slog.String("album_id", albumID),
	)

	return nil
}

// AppendArtwork adds an existing artwork at the end of an album. Appending a
// second time is a no-op.
func (s *AlbumService) AppendArtwork(ctx context.Context, userID, albumID, artworkID string) error {
	album, perms, err := s.loadAlbum(ctx, albumID)
	if err != nil {
		return err
	}
	if !album.CanEdit(userID, perms) {
		return apperrors.Forbidden("no edit access to this album")
	}

	if _, err := s.artworks.GetByID(ctx, artworkID); err != nil {
		return fmt.Errorf("get artwork for album append: %w", err)
	}

	if err := s.repo.AppendArtwork(ctx, albumID, artworkID); err != nil {
		return fmt.Errorf("append artwork: %w", err)
	}

	return nil
}

// RemoveArtwork removes an artwork from an album.
func (s *AlbumService) RemoveArtwork(ctx context.Context, userID, albumID, artworkID string) error {
	album, perms, err := s.loadAlbum(ctx, albumID)
	if err != nil {
		return err
	}
	if !album.CanEdit(userID, perms) {
		return apperrors.Forbidden("no edit access to this album")
	}

	if err := s.repo.RemoveArtwork(ctx, albumID, artworkID); err != nil {
		return fmt.Errorf("remove artwork: %w", err)
	}

	return nil
}

// Permissions returns the album's permission entries filtered to what the
// requesting user may see.
func (s *AlbumService) Permissions(ctx context.Context, userID, albumID string) ([]domain.AlbumPermission, error) {
	album, perms, err := s.loadAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if !album.CanView(userID, perms) {
		return nil, apperrors.Forbidden("no access to this album")
	}

	visible := album.VisiblePermissions(userID, perms)
	if visible == nil {
		visible = []domain.AlbumPermission{}
	}
	return visible, nil
}

// Share grants another user VIEW or EDIT access. Only the owner may share.
func (s *AlbumService) Share(ctx context.Context, userID, albumID, targetUserID, permission string) (*domain.AlbumPermission, error) {
	if !domain.IsValidPermission(permission) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid permission %q", permission))
	}

	album, _, err := s.loadAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if album.OwnerID != userID {
		return nil, apperrors.Forbidden("only the owner may share an album")
	}
	if targetUserID == album.OwnerID {
		return nil, apperrors.InvalidInput("cannot share an album with its owner")
	}

	if _, err := s.users.GetByID(ctx, targetUserID); err != nil {
		return nil, fmt.Errorf("get user for album share: %w", err)
	}

	perm := &domain.AlbumPermission{
		ID:         uuid.New().String(),
		AlbumID:    albumID,
		UserID:     targetUserID,
		Permission: permission,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.UpsertPermission(ctx, perm); err != nil {
		return nil, fmt.Errorf("share album: %w", err)
	}

	s.logger.InfoContext(ctx, "album shared",
		slog.String("album_id", albumID),
		slog.String("target_user_id", targetUserID),
		slog.String("permission", permission),
	)

	return perm, nil
}

// Unshare revokes a user's access. The owner may revoke anyone, a sharee only
// themselves.
func (s *AlbumService) Unshare(ctx context.Context, userID, albumID, targetUserID string) error {
	album, _, err := s.loadAlbum(ctx, albumID)
	if err != nil {
		return err
	}
	if album.OwnerID != userID && userID != targetUserID {
		return apperrors.Forbidden("only the owner may revoke another user's access")
	}

	if err := s.repo.DeletePermission(ctx, albumID, targetUserID); err != nil {
		return fmt.Errorf("unshare album: %w", err)
	}

	return nil
}

func (s *AlbumService) loadAlbum(ctx context.Context, albumID string) (*domain.Album, []domain.AlbumPermission, error) {
	album, err := s.repo.GetByID(ctx, albumID)
	if err != nil {
		return nil, nil, fmt.Errorf("get album by id: %w", err)
	}

	perms, err := s.repo.Permissions(ctx, albumID)
	if err != nil {
		return nil, nil, fmt.Errorf("load album permissions: %w", err)
	}

	return album, perms, nil
}
