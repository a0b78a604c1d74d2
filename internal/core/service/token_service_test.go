package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/authslice/authd/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "usr-001",
		Email: "a@x.com",
		Roles: []domain.Role{domain.RoleUser, domain.RoleManager},
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	session, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if session.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", session.TokenType)
	}
	if until := time.Until(session.ExpiresAt); until <= 0 || until > time.Hour {
		t.Errorf("ExpiresAt out of range: %v", session.ExpiresAt)
	}

	claim, err := svc.Verify(session.AccessToken)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claim.UserID != "usr-001" {
		t.Errorf("UserID = %q, want usr-001", claim.UserID)
	}
	if claim.Email != "a@x.com" {
		t.Errorf("Email = %q, want a@x.com", claim.Email)
	}
	if len(claim.Roles) != 2 || claim.Roles[0] != domain.RoleUser || claim.Roles[1] != domain.RoleManager {
		t.Errorf("Roles = %v, want [USER MANAGER]", claim.Roles)
	}
}

func TestTokenService_ClaimRolesAreFrozenAtIssuance(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	user := testUser()

	session, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	user.Roles = []domain.Role{domain.RoleAdmin}

	claim, err := svc.Verify(session.AccessToken)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claim.HasRole(domain.RoleAdmin) {
		t.Fatalf("claim must reflect roles at issuance, got %v", claim.Roles)
	}
}

func TestTokenService_Verify_TamperedSignature(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	session, _ := svc.Issue(testUser())

	// Flip a character well inside the signature segment; the final
	// character may only carry padding bits.
	raw := []byte(session.AccessToken)
	i := len(raw) - 10
	if raw[i] == 'A' {
		raw[i] = 'B'
	} else {
		raw[i] = 'A'
	}

	_, err := svc.Verify(string(raw))
	if !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestTokenService_Verify_NonCanonicalSignatureEncoding(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

	svc := NewTokenService("test-secret", time.Hour)
	session, _ := svc.Issue(testUser())

	// A 32-byte HS256 signature encodes to 43 characters, so the low two
	// bits of the last one are padding. Setting one keeps the decoded bytes
	// identical and only a strict decoder notices.
	raw := []byte(session.AccessToken)
	last := len(raw) - 1
	idx := strings.IndexByte(alphabet, raw[last])
	if idx < 0 {
		t.Fatalf("unexpected signature character %q", raw[last])
	}
	raw[last] = alphabet[idx^1]

	if _, err := svc.Verify(string(raw)); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenService_Verify_TamperedPayload(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	session, _ := svc.Issue(testUser())

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "usr-001",
		"roles": []string{"ADMIN"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}

	// Splice the forged payload onto the genuine signature.
	genuine := strings.Split(session.AccessToken, ".")
	spliced := strings.Split(forged, ".")
	raw := strings.Join([]string{genuine[0], spliced[1], genuine[2]}, ".")

	if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	issuer := NewTokenService("correct-secret", time.Hour)
	verifier := NewTokenService("wrong-secret", time.Hour)
	session, _ := issuer.Issue(testUser())

	if _, err := verifier.Verify(session.AccessToken); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestTokenService_Verify_RejectsNoneAlgorithm(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "usr-001",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := svc.Verify(unsigned); !errors.Is(err, domain.ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	issuer := NewTokenService("test-secret", time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	verifier := NewTokenService("test-secret", time.Hour)

	session, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := verifier.Verify(session.AccessToken); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	for _, raw := range []string{"", "   ", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Errorf("Verify(%q): expected ErrTokenMalformed, got %v", raw, err)
		}
	}
}

func TestTokenService_Verify_MissingExpiry(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "usr-001",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenService_Verify_MissingSubject(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestTokenService_Issue_RequiresUserID(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	if _, err := svc.Issue(&domain.User{Email: "a@x.com"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Issue(nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil user, got %v", err)
	}
}
