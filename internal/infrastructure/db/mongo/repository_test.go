package mongo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/authslice/authd/internal/core/domain"
)

// setupTestDB starts MongoDB in a container. Skipped unless TEST_INTEGRATION is set.
func setupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION not set")
	}

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("start mongo container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate mongo container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	client, db, err := Connect(ctx, Config{URI: uri, Database: "authd_test", Timeout: 30 * time.Second})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	if err := EnsureIndexes(ctx, db); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	return db
}

func TestUserRepository_CreateFindSetRoles(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	now := time.Now().UTC()
	created, err := repo.Create(ctx, &domain.User{
		Email:        "a@x.com",
		Name:         "Alice",
		PasswordHash: "hash",
		Roles:        []domain.Role{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an ObjectID hex id")
	}

	if _, err := repo.Create(ctx, &domain.User{Email: "a@x.com", PasswordHash: "other"}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	found, err := repo.FindByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.ID != created.ID || found.PasswordHash != "hash" || found.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", found)
	}

	if _, err := repo.FindByEmail(ctx, "A@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("email lookup must be case-sensitive, got %v", err)
	}

	updated, err := repo.SetRoles(ctx, "a@x.com", []domain.Role{domain.RoleAdmin})
	if err != nil {
		t.Fatalf("SetRoles: %v", err)
	}
	if len(updated.Roles) != 1 || updated.Roles[0] != domain.RoleAdmin {
		t.Fatalf("unexpected roles: %v", updated.Roles)
	}

	if _, err := repo.SetRoles(ctx, "ghost@x.com", []domain.Role{domain.RoleAdmin}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRoleRepository_EnsureIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewRoleRepository(db)

	for run := 0; run < 2; run++ {
		for _, r := range domain.KnownRoles {
			rec, created, err := repo.Ensure(ctx, r)
			if err != nil {
				t.Fatalf("Ensure(%s): %v", r, err)
			}
			if created != (run == 0) {
				t.Fatalf("run %d Ensure(%s): created=%v", run, r, created)
			}
			if rec.Name != r {
				t.Fatalf("unexpected record: %+v", rec)
			}
		}
	}

	n, err := db.Collection(rolesCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != int64(len(domain.KnownRoles)) {
		t.Fatalf("expected %d role documents, got %d", len(domain.KnownRoles), n)
	}

	roles, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(roles) != len(domain.KnownRoles) {
		t.Fatalf("List returned %d roles", len(roles))
	}
}
