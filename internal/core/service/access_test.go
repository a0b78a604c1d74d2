package service

import (
	"errors"
	"testing"

	"github.com/authslice/authd/internal/core/domain"
)

func TestAuthorize(t *testing.T) {
	user := &domain.IdentityClaim{UserID: "1", Roles: []domain.Role{domain.RoleUser}}
	admin := &domain.IdentityClaim{UserID: "2", Roles: []domain.Role{domain.RoleUser, domain.RoleAdmin}}
	noRoles := &domain.IdentityClaim{UserID: "3"}

	cases := []struct {
		name     string
		claim    *domain.IdentityClaim
		required domain.Role
		wantErr  error
	}{
		{name: "no requirement allows user", claim: user, required: domain.RoleNone},
		{name: "no requirement allows claim without roles", claim: noRoles, required: domain.RoleNone},
		{name: "admin route allows admin", claim: admin, required: domain.RoleAdmin},
		{name: "admin route forbids user", claim: user, required: domain.RoleAdmin, wantErr: domain.ErrForbidden},
		{name: "manager route forbids admin", claim: admin, required: domain.RoleManager, wantErr: domain.ErrForbidden},
		{name: "missing claim is unauthenticated", claim: nil, required: domain.RoleNone, wantErr: domain.ErrUnauthenticated},
		{name: "missing claim short-circuits role check", claim: nil, required: domain.RoleAdmin, wantErr: domain.ErrUnauthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.claim, tc.required)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected allow, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
