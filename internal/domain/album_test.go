package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sharedAlbum() *Album {
	return &Album{ID: "album-1", Title: "Diplomarbeiten 2025", OwnerID: "owner"}
}

func TestIsValidPermission(t *testing.T) {
	assert.True(t, IsValidPermission(PermissionView))
	assert.True(t, IsValidPermission(PermissionEdit))
	assert.False(t, IsValidPermission("ADMIN"))
	assert.False(t, IsValidPermission("view"))
}

func TestAlbumCanEdit(t *testing.T) {
	album := sharedAlbum()
	perms := []AlbumPermission{
		{UserID: "editor", Permission: PermissionEdit},
		{UserID: "viewer", Permission: PermissionView},
	}

	assert.True(t, album.CanEdit("owner", nil))
	assert.True(t, album.CanEdit("editor", perms))
	assert.False(t, album.CanEdit("viewer", perms))
	assert.False(t, album.CanEdit("stranger", perms))
}

func TestAlbumCanView(t *testing.T) {
	album := sharedAlbum()
	perms := []AlbumPermission{
		{UserID: "viewer", Permission: PermissionView},
	}

	assert.True(t, album.CanView("owner", nil))
	assert.True(t, album.CanView("viewer", perms))
	assert.False(t, album.CanView("stranger", perms))
}

func TestAlbumVisiblePermissions(t *testing.T) {
	album := sharedAlbum()
	perms := []AlbumPermission{
		{UserID: "editor-1", Permission: PermissionEdit},
		{UserID: "editor-2", Permission: PermissionEdit},
		{UserID: "viewer", Permission: PermissionView},
	}

	assert.Len(t, album.VisiblePermissions("owner", perms), 3)

	editorView := album.VisiblePermissions("editor-1", perms)
	assert.Len(t, editorView, 2)
	for _, p := range editorView {
		assert.Equal(t, PermissionEdit, p.Permission)
	}

	viewerView := album.VisiblePermissions("viewer", perms)
	assert.Len(t, viewerView, 1)
	assert.Equal(t, "viewer", viewerView[0].UserID)

	assert.Nil(t, album.VisiblePermissions("stranger", perms))
}
