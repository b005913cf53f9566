package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mhollis/footprint/internal/domain"
	"github.com/mhollis/footprint/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sqlite.DB, username string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		PasswordHash: "hashedpw",
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}
