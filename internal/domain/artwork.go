package domain

import (
	"strings"
	"time"
)

// Artwork represents a single archived work with its image and catalogue data.
type Artwork struct {
	ID                    string    `json:"id"`
	Title                 string    `json:"title"`
	TitleEnglish          string    `json:"title_english,omitempty"`
	TitleComment          string    `json:"title_comment,omitempty"`
	Date                  string    `json:"date,omitempty"`
	DateYearFrom          *int      `json:"date_year_from,omitempty"`
	DateYearTo            *int      `json:"date_year_to,omitempty"`
	MaterialDescriptionDE string    `json:"material_description_de,omitempty"`
	MaterialDescriptionEN string    `json:"material_description_en,omitempty"`
	DimensionsDisplay     string    `json:"dimensions_display,omitempty"`
	CommentsDE            string    `json:"comments_de,omitempty"`
	CommentsEN            string    `json:"comments_en,omitempty"`
	Credits               string    `json:"credits,omitempty"`
	CreditsLink           string    `json:"credits_link,omitempty"`
	Link                  string    `json:"link,omitempty"`
	LocationID            *int64    `json:"location_id,omitempty"`
	ImageOriginal         string    `json:"image_original,omitempty"`
	ImageFullsize         string    `json:"image_fullsize,omitempty"`
	Published             bool      `json:"published"`
	Checked               bool      `json:"checked"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	// Relations, loaded on demand.
	Artists              []Person `json:"artists,omitempty"`
	Photographers        []Person `json:"photographers,omitempty"`
	Authors              []Person `json:"authors,omitempty"`
	GraphicDesigners     []Person `json:"graphic_designers,omitempty"`
	KeywordIDs           []int64  `json:"keyword_ids,omitempty"`
	MaterialIDs          []int64  `json:"material_ids,omitempty"`
	PlaceOfProductionIDs []int64  `json:"place_of_production_ids,omitempty"`
	DiscriminatoryTerms  []string `json:"discriminatory_terms,omitempty"`
}

// LocalizedTitle returns the English title for English requests when one
// exists, the German title otherwise.
func (a *Artwork) LocalizedTitle(lang string) string {
	if strings.HasPrefix(strings.ToLower(lang), "en") && a.TitleEnglish != "" {
		return a.TitleEnglish
	}
	return a.Title
}

// ArtistRoles enumerates the person relations an artwork carries.
const (
	RoleArtist          = "artist"
	RolePhotographer    = "photographer"
	RoleAuthor          = "author"
	RoleGraphicDesigner = "graphic_designer"
)
