package repository

import (
	"context"

	"github.com/base-angewandte/image-backend-sub000/internal/domain"
	"github.com/base-angewandte/image-backend-sub000/internal/search"
)

// ArtworkFilter defines filter criteria for listing artworks.
type ArtworkFilter struct {
	OnlyPublished bool
	Page          int
	PerPage       int
}

// ArtworkRepository defines persistence operations for artworks.
type ArtworkRepository interface {
	// Create inserts a new artwork together with its relation rows.
	Create(ctx context.Context, artwork *domain.Artwork) error

	// GetByID retrieves an artwork by its identifier, relations included.
	GetByID(ctx context.Context, id string) (*domain.Artwork, error)

	// List returns artworks matching the filter along with the total count.
	List(ctx context.Context, filter ArtworkFilter) ([]domain.Artwork, int, error)

	// Update modifies an existing artwork and replaces its relation rows.
	Update(ctx context.Context, artwork *domain.Artwork) error

	// Delete removes an artwork and its relation rows.
	Delete(ctx context.Context, id string) error

	// ArtistsByArtworkIDs batch-loads the artist relation for a result page.
	ArtistsByArtworkIDs(ctx context.Context, artworkIDs []string) (map[string][]domain.Person, error)

	// TermsByArtworkIDs batch-loads discriminatory terms for a result page,
	// ordered by term.
	TermsByArtworkIDs(ctx context.Context, artworkIDs []string) (map[string][]string, error)
}

// SearchHit is one ranked row of a search result page.
type SearchHit struct {
	Artwork domain.Artwork
	Rank    float64
}

// SearchRepository runs the ranked artwork search.
type SearchRepository interface {
	// Search executes the ranked query for the given criteria and returns one
	// result page plus the total number of matching rows.
	Search(ctx context.Context, criteria *search.Criteria) ([]SearchHit, int, error)
}

// Suggestion is a single autocomplete entry.
type Suggestion struct {
	ID    any            `json:"id"`
	Label string         `json:"label"`
	Data  map[string]any `json:"data,omitempty"`
}

// AutocompleteRepository serves per-type typeahead lookups.
type AutocompleteRepository interface {
	Titles(ctx context.Context, q string, limit int) ([]Suggestion, error)
	Artists(ctx context.Context, q string, limit int) ([]Suggestion, error)
	Keywords(ctx context.Context, q, lang string, limit int) ([]Suggestion, error)
	Locations(ctx context.Context, q, lang string, limit int) ([]Suggestion, error)
	Users(ctx context.Context, q string, limit int) ([]Suggestion, error)
	EditableAlbums(ctx context.Context, userID, q string, limit int) ([]Suggestion, error)
}

// PersonRepository provides read access to the persons vocabulary.
type PersonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Person, error)
}

// TaxonomyRepository provides read access to the keyword and location trees.
type TaxonomyRepository interface {
	GetKeyword(ctx context.Context, id int64) (*domain.Keyword, error)
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)

	// KeywordDescendants returns the IDs of the node and all its descendants.
	KeywordDescendants(ctx context.Context, id int64) ([]int64, error)

	// LocationDescendants returns the IDs of the node and all its descendants.
	LocationDescendants(ctx context.Context, id int64) ([]int64, error)
}

// DiscriminatoryTermRepository provides read access to the flagged-terms list.
type DiscriminatoryTermRepository interface {
	List(ctx context.Context) ([]domain.DiscriminatoryTerm, error)
}

// IndexRepository maintains the denormalized search columns of artworks.
type IndexRepository interface {
	// Rebuild recomputes the shadow columns and search vector of one artwork.
	Rebuild(ctx context.Context, artworkID string) error

	// DependentsOnPerson returns the IDs of artworks referencing the person in
	// any role.
	DependentsOnPerson(ctx context.Context, personID int64) ([]string, error)

	// DependentsOnKeyword returns the IDs of artworks referencing the keyword
	// or any of its ancestors.
	DependentsOnKeyword(ctx context.Context, keywordID int64) ([]string, error)

	// DependentsOnLocation returns the IDs of artworks referencing the
	// location or any of its ancestors, as whereabouts or place of production.
	DependentsOnLocation(ctx context.Context, locationID int64) ([]string, error)

	// DependentsOnMaterial returns the IDs of artworks referencing the material.
	DependentsOnMaterial(ctx context.Context, materialID int64) ([]string, error)
}

// AlbumRepository defines persistence operations for albums and their
// permission entries.
type AlbumRepository interface {
	Create(ctx context.Context, album *domain.Album) error
	GetByID(ctx context.Context, id string) (*domain.Album, error)

	// ListForUser returns albums the user owns or has been granted access to.
	ListForUser(ctx context.Context, userID string) ([]domain.Album, error)

	Update(ctx context.Context, album *domain.Album) error
	Delete(ctx context.Context, id string) error

	// AppendArtwork adds an artwork at the end of the album. Appending an
	// artwork twice is a no-op.
	AppendArtwork(ctx context.Context, albumID, artworkID string) error
	RemoveArtwork(ctx context.Context, albumID, artworkID string) error

	Permissions(ctx context.Context, albumID string) ([]domain.AlbumPermission, error)
	UpsertPermission(ctx context.Context, perm *domain.AlbumPermission) error
	DeletePermission(ctx context.Context, albumID, userID string) error
}

// FolderRepository defines persistence operations for folders.
type FolderRepository interface {
	Create(ctx context.Context, folder *domain.Folder) error
	GetByID(ctx context.Context, id string) (*domain.Folder, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Folder, error)
	Update(ctx context.Context, folder *domain.Folder) error
	Delete(ctx context.Context, id string) error

	// GetRootForUser returns the user's root folder, creating it on first use.
	GetRootForUser(ctx context.Context, userID string) (*domain.Folder, error)

	AddAlbum(ctx context.Context, folderID, albumID string) error
	RemoveAlbum(ctx context.Context, folderID, albumID string) error
}

// UserRepository resolves gateway-provisioned user records.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}
