package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/authslice/authd/internal/api/middleware"
	"github.com/authslice/authd/internal/core/domain"
)

func TestUserHandler_Profile(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/profile", nil), rec)
	middleware.SetClaim(c, &domain.IdentityClaim{
		UserID: "u1",
		Email:  "alice@example.com",
		Roles:  []domain.Role{domain.RoleUser},
	})

	if err := NewUserHandler().Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["userId"] != "u1" || resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", resp)
	}
	roles, _ := resp["roles"].([]any)
	if len(roles) != 1 || roles[0] != "USER" {
		t.Fatalf("unexpected roles: %v", resp["roles"])
	}
}

func TestUserHandler_ProfileWithoutClaim(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/profile", nil), httptest.NewRecorder())

	if err := NewUserHandler().Profile(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestUserHandler_Admin(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/admin", nil), rec)

	if err := NewUserHandler().Admin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !json.Valid(rec.Body.Bytes()) {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
	var resp messageResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "This is admin data" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}
