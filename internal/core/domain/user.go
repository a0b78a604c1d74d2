package domain

import "time"

// User models a registered account. PasswordHash never leaves the service
// layer: it is excluded from JSON and cleared by Sanitized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy of u that is safe to hand to callers.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	clone.Roles = append([]Role(nil), u.Roles...)
	return &clone
}
