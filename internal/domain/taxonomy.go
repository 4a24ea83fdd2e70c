package domain

import (
	"strings"
	"time"
)

// Keyword is a node of the keyword tree (adjacency list, ordered by name).
type Keyword struct {
	ID        int64     `json:"id"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	NameEn    string    `json:"name_en,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocalizedName returns the English name for English requests when present.
func (k *Keyword) LocalizedName(lang string) string {
	if strings.HasPrefix(strings.ToLower(lang), "en") && k.NameEn != "" {
		return k.NameEn
	}
	return k.Name
}

// SearchText returns the keyword text indexed into an artwork's
// search_keywords column.
func (k *Keyword) SearchText() string {
	if k.NameEn == "" {
		return k.Name
	}
	return k.Name + " " + k.NameEn
}

// Location is a node of the place tree. It covers both places of production
// and current whereabouts.
type Location struct {
	ID        int64     `json:"id"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	NameEn    string    `json:"name_en,omitempty"`
	Synonyms  []string  `json:"synonyms,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocalizedName returns the English name for English requests when present.
func (l *Location) LocalizedName(lang string) string {
	if strings.HasPrefix(strings.ToLower(lang), "en") && l.NameEn != "" {
		return l.NameEn
	}
	return l.Name
}

// SearchText returns the location text indexed into an artwork's
// search_locations column.
func (l *Location) SearchText() string {
	parts := make([]string, 0, 2+len(l.Synonyms))
	parts = append(parts, l.Name)
	if l.NameEn != "" {
		parts = append(parts, l.NameEn)
	}
	parts = append(parts, l.Synonyms...)
	return strings.Join(parts, " ")
}
