package domain

import (
	"strings"
	"time"
)

// User mirrors the account data the SSO gateway provisions. The backend never
// authenticates users itself; it only resolves the X-User-ID header against
// this table for display names and ownership checks.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns "First Last", falling back to the user ID when both
// name parts are empty.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.ID
	}
	return name
}
