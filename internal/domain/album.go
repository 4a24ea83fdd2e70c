package domain

import "time"

// Album permission levels (closed set).
const (
	PermissionView = "VIEW"
	PermissionEdit = "EDIT"
)

// IsValidPermission checks whether the given string is a known permission level.
func IsValidPermission(p string) bool {
	return p == PermissionView || p == PermissionEdit
}

// Album is a user-curated collection of artworks.
type Album struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	OwnerID    string    `json:"owner_id"`
	ArtworkIDs []string  `json:"artwork_ids,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AlbumPermission grants a user VIEW or EDIT access to somebody else's album.
type AlbumPermission struct {
	ID         string    `json:"id"`
	AlbumID    string    `json:"album_id"`
	UserID     string    `json:"user_id"`
	Permission string    `json:"permission"`
	CreatedAt  time.Time `json:"created_at"`
}

// CanEdit reports whether the given user may modify the album. The owner and
// EDIT-sharees may, VIEW-sharees may not.
func (a *Album) CanEdit(userID string, permissions []AlbumPermission) bool {
	if a.OwnerID == userID {
		return true
	}
	for _, p := range permissions {
		if p.UserID == userID && p.Permission == PermissionEdit {
			return true
		}
	}
	return false
}

// CanView reports whether the given user may see the album at all.
func (a *Album) CanView(userID string, permissions []AlbumPermission) bool {
	if a.OwnerID == userID {
		return true
	}
	for _, p := range permissions {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// VisiblePermissions filters the album's permission entries down to what the
// given user is allowed to see: the owner sees everything, an EDIT-sharee sees
// all EDIT entries, a VIEW-sharee only their own entry.
func (a *Album) VisiblePermissions(userID string, permissions []AlbumPermission) []AlbumPermission {
	if a.OwnerID == userID {
		return permissions
	}

	var own *AlbumPermission
	for i := range permissions {
		if permissions[i].UserID == userID {
			own = &permissions[i]
			break
		}
	}
	if own == nil {
		return nil
	}

	if own.Permission == PermissionEdit {
		visible := make([]AlbumPermission, 0, len(permissions))
		for _, p := range permissions {
			if p.Permission == PermissionEdit {
				visible = append(visible, p)
			}
		}
		return visible
	}

	return []AlbumPermission{*own}
}
