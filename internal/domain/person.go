package domain

import (
	"strings"
	"time"
)

// Person represents an artist, photographer, author, or graphic designer.
type Person struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Synonyms  []string  `json:"synonyms,omitempty"`
	DateBirth *string   `json:"date_birth,omitempty"`
	DateDeath *string   `json:"date_death,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchText returns the person's name joined with all synonyms, the form
// indexed into an artwork's search_persons column.
func (p *Person) SearchText() string {
	if len(p.Synonyms) == 0 {
		return p.Name
	}
	return p.Name + " " + strings.Join(p.Synonyms, " ")
}
