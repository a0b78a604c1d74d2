package handler

import (
	"strings"
	"testing"
)

func TestValidator_RegisterRequestMessages(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		req  registerRequest
		want string
	}{
		{"missing email", registerRequest{Password: "secret123"}, "email is required"},
		{"bad email", registerRequest{Email: "nope", Password: "secret123"}, "email must be a valid email"},
		{"short password", registerRequest{Email: "a@example.com", Password: "short"}, "password must be at least 8 characters"},
		{"long name", registerRequest{Email: "a@example.com", Password: "secret123", Name: strings.Repeat("x", 101)}, "name must be at most 100 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if err.Error() != tt.want {
				t.Fatalf("message = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidator_ValidRequestPasses(t *testing.T) {
	req := registerRequest{Email: "a@example.com", Password: "secret123", Name: "Ada"}
	if err := NewValidator().Validate(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
