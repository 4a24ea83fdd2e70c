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

// FolderService implements the per-user folder tree albums are organized in.
type FolderService struct {
	repo   repository.FolderRepository
	albums repository.AlbumRepository
	logger *slog.Logger
}

// NewFolderService creates a new folder service.
func NewFolderService(repo repository.FolderRepository, albums repository.AlbumRepository, logger *slog.Logger) *FolderService {
	return &FolderService{
		repo:   repo,
		albums: albums,
		logger: logger,
	}
}

// GetRoot returns the user's root folder, creating it on first access.
func (s *FolderService) GetRoot(ctx context.Context, userID string) (*domain.Folder, error) {
	root, err := s.repo.GetRootForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get root folder: %w", err)
	}
	return root, nil
}

// CreateFolder creates a folder under the given parent, or under the root
// folder when no parent is given.
func (s *FolderService) CreateFolder(ctx context.Context, userID, title string, parentID *string) (*domain.Folder, error) {
	if title == "" {
		return nil, apperrors.InvalidInput("folder title is required")
	}

	if parentID == nil {
		root, err := s.repo.GetRootForUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("get root folder: %w", err)
		}
		parentID = &root.ID
	} else {
		parent, err := s.repo.GetByID(ctx, *parentID)
		if err != nil {
			return nil, fmt.Errorf("get parent folder: %w", err)
		}
		if parent.OwnerID != userID {
			return nil, apperrors.Forbidden("no access to the parent folder")
		}
	}

	now := time.Now().UTC()
	folder := &domain.Folder{
		ID:        uuid.New().String(),
		Title:     title,
		OwnerID:   userID,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}

	s.logger.InfoContext(ctx, "folder created",
		slog.String("folder_id", folder.ID),
		slog.String("owner_id", userID),
	)

	return folder, nil
}

// GetFolder retrieves one of the user's folders with its album memberships.
func (s *FolderService) GetFolder(ctx context.Context, userID, folderID string) (*domain.Folder, error) {
	folder, err := s.repo.GetByID(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("get folder by id: %w", err)
	}
	if folder.OwnerID != userID {
		return nil, apperrors.Forbidden("no access to this folder")
	}
	return folder, nil
}

// ListFolders returns all folders owned by the user.
func (s *FolderService) ListFolders(ctx context.Context, userID string) ([]domain.Folder, error) {
	folders, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

// UpdateFolder renames one of the user's folders. The root folder cannot be
// renamed.
func (s *FolderService) UpdateFolder(ctx context.Context, userID, folderID, title string) (*domain.Folder, error) {
	if title == "" {
		return nil, apperrors.InvalidInput("folder title is required")
	}

	folder, err := s.repo.GetByID(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("get folder for update: %w", err)
	}
	if folder.OwnerID != userID {
		return nil, apperrors.Forbidden("no access to this folder")
	}
	if folder.ParentID == nil {
		return nil, apperrors.InvalidInput("the root folder cannot be renamed")
	}

	folder.Title = title
	if err := s.repo.Update(ctx, folder); err != nil {
		return nil, fmt.Errorf("update folder: %w", err)
	}

	return folder, nil
}

// DeleteFolder removes one of the user's folders. Albums inside it survive;
// the root folder cannot be deleted.
func (s *FolderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	folder, err := s.repo.GetByID(ctx, folderID)
	if err != nil {
		return fmt.Errorf("get folder for delete: %w", err)
	}
	if folder.OwnerID != userID {
		return apperrors.Forbidden("no access to this folder")
	}
	if folder.ParentID == nil {
		return apperrors.InvalidInput("the root folder cannot be deleted")
	}

	if err := s.repo.Delete(ctx, folderID); err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}

	return nil
}

// AddAlbum places an album the user can see into one of their folders.
func (s *FolderService) AddAlbum(ctx context.Context, userID, folderID, albumID string) error {
	folder, err := s.repo.GetByID(ctx, folderID)
	if err != nil {
		return fmt.Errorf("get folder: %w", err)
	}
	if folder.OwnerID != userID {
		return apperrors.Forbidden("no access to this folder")
	}

	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return fmt.Errorf("get album: %w", err)
	}
	perms, err := s.albums.Permissions(ctx, albumID)
	if err != nil {
		return fmt.Errorf("load album permissions: %w", err)
	}
	if !album.CanView(userID, perms) {
		return apperrors.Forbidden("no access to this album")
	}

	if err := s.repo.AddAlbum(ctx, folderID, albumID); err != nil {
		return fmt.Errorf("add album to folder: %w", err)
	}

	return nil
}

// RemoveAlbum takes an album out of one of the user's folders.
func (s *FolderService) RemoveAlbum(ctx context.Context, userID, folderID, albumID string) error {
	folder, err := s.repo.GetByID(ctx, folderID)
	if err != nil {
		return fmt.Errorf("get folder: %w", err)
	}
	if folder.OwnerID != userID {
		return apperrors.Forbidden("no access to this folder")
	}

	if err := s.repo.RemoveAlbum(ctx, folderID, albumID); err != nil {
		return fmt.Errorf("remove album from folder: %w", err)
	}

	return nil
}
