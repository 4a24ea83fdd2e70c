package domain

import "time"

// Material is a controlled vocabulary entry for artwork materials and
// techniques.
type Material struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	NameEn    string    `json:"name_en,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchText returns the material text indexed into an artwork's
// search_materials column.
func (m *Material) SearchText() string {
	if m.NameEn == "" {
		return m.Name
	}
	return m.Name + " " + m.NameEn
}

// DiscriminatoryTerm flags historically loaded vocabulary that the frontend
// renders with a content notice.
type DiscriminatoryTerm struct {
	ID   int64  `json:"id"`
	Term string `json:"term"`
}
