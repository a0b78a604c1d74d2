package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/authslice/authd/internal/core/domain"
)

const claimKey = "identity"

// SetClaim attaches a verified identity to the request context.
func SetClaim(c echo.Context, claim *domain.IdentityClaim) {
	c.Set(claimKey, claim)
}

// ClaimFrom returns the identity attached by Auth, or nil when the request
// did not pass through it.
func ClaimFrom(c echo.Context) *domain.IdentityClaim {
	claim, _ := c.Get(claimKey).(*domain.IdentityClaim)
	return claim
}
