package service

import (
	"fmt"

	"github.com/authslice/authd/internal/core/domain"
)

// Authorize decides whether claim satisfies required. A nil claim is
// unauthenticated regardless of the requirement; RoleNone admits any
// authenticated caller.
func Authorize(claim *domain.IdentityClaim, required domain.Role) error {
	if claim == nil {
		return domain.ErrUnauthenticated
	}
	if required == domain.RoleNone {
		return nil
	}
	if !claim.HasRole(required) {
		return fmt.Errorf("%w: requires role %s", domain.ErrForbidden, required)
	}
	return nil
}
