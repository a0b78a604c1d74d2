package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/authslice/authd/internal/api/middleware"
	"github.com/authslice/authd/internal/core/domain"
)

// ctxClaim returns the identity injected by the Auth middleware. A missing
// claim means the route was mounted without Auth and is reported as
// unauthenticated rather than served anonymously.
func ctxClaim(c echo.Context) (*domain.IdentityClaim, error) {
	claim := middleware.ClaimFrom(c)
	if claim == nil || claim.UserID == "" {
		return nil, fmt.Errorf("%w: missing authentication claims", domain.ErrUnauthenticated)
	}
	return claim, nil
}
