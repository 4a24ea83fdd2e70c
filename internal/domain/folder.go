package domain

import "time"

// RootFolderTitle is the title of the folder created for every user on first
// contact. All of a user's albums hang off their root folder until moved.
const RootFolderTitle = "Root"

// Folder groups a user's albums. Folders form a tree per user, rooted in an
// automatically created root folder.
type Folder struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	OwnerID   string    `json:"owner_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	AlbumIDs  []string  `json:"album_ids,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
