package domain

import "time"

// IdentityClaim is the caller identity reconstructed from a verified token.
// Roles are those held at issuance time; they are not re-read from the store.
type IdentityClaim struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Roles  []Role `json:"roles"`
}

// HasRole reports whether role was granted when the token was issued.
func (c *IdentityClaim) HasRole(role Role) bool {
	return containsRole(c.Roles, role)
}

// SessionToken is the signed credential handed to a client after login.
type SessionToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
