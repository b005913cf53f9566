package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mhollis/footprint/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{
		Username:     "testuser",
		PasswordHash: "hashedpw",
		Email:        "test@example.com",
		FirstName:    "Test",
	}

	err := repo.Create(ctx, user)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == "" {
		t.Fatal("expected user ID to be set after create")
	}
	if user.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user1 := &domain.User{Username: "dup", PasswordHash: "hash1"}
	if err := repo.Create(ctx, user1); err != nil {
		t.Fatalf("Create user1: %v", err)
	}

	user2 := &domain.User{Username: "dup", PasswordHash: "hash2"}
	err := repo.Create(ctx, user2)
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user1 := &domain.User{Username: "first", PasswordHash: "hash1", Email: "dup@example.com"}
	if err := repo.Create(ctx, user1); err != nil {
		t.Fatalf("Create user1: %v", err)
	}

	user2 := &domain.User{Username: "second", PasswordHash: "hash2", Email: "dup@example.com"}
	err := repo.Create(ctx, user2)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_Create_NoEmailTwice(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	// Email is optional; two users without one must not collide.
	if err := repo.Create(ctx, &domain.User{Username: "noemail1", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if err := repo.Create(ctx, &domain.User{Username: "noemail2", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create second: %v", err)
	}
}

func TestUserRepository_Upsert_Inserts(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := &domain.User{
		Username:     "upserted",
		PasswordHash: "hash",
		Email:        "up@example.com",
		FirstName:    "Up",
	}
	if err := repo.Upsert(ctx, user); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected ID to be set")
	}
}

func TestUserRepository_Upsert_MergesOnEmailConflict(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	original := &domain.User{
		Username:     "original",
		PasswordHash: "originalhash",
		Email:        "merge@example.com",
		FirstName:    "Old",
		LastName:     "Name",
	}
	if err := repo.Upsert(ctx, original); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	incoming := &domain.User{
		Username:        "intruder",
		PasswordHash:    "intruderhash",
		Email:           "merge@example.com",
		FirstName:       "New",
		LastName:        "Names",
		ProfileImageURL: "https://example.com/pic.png",
	}
	if err := repo.Upsert(ctx, incoming); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	// Exactly one row; latest display attributes; original identity intact.
	if incoming.ID != original.ID {
		t.Fatalf("expected merged ID %s, got %s", original.ID, incoming.ID)
	}
	if incoming.Username != "original" {
		t.Fatalf("expected username to stay %q, got %q", "original", incoming.Username)
	}
	if incoming.PasswordHash != "originalhash" {
		t.Fatal("expected password hash to be untouched by upsert")
	}

	stored, err := repo.GetByID(ctx, original.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.FirstName != "New" || stored.LastName != "Names" {
		t.Fatalf("expected latest names, got %s %s", stored.FirstName, stored.LastName)
	}
	if stored.ProfileImageURL != "https://example.com/pic.png" {
		t.Fatalf("expected profile image to be updated, got %q", stored.ProfileImageURL)
	}

	if _, err := repo.GetByUsername(ctx, "intruder"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected no second row, got %v", err)
	}
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Users().GetByID(context.Background(), "no-such-id")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	user := createTestUser(t, db, "byname")

	found, err := repo.GetByUsername(ctx, "byname")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected id %s, got %s", user.ID, found.ID)
	}
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Users().GetByUsername(context.Background(), "nobody")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_Delete_CascadesCalculations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "doomed")

	calc := &domain.Calculation{
		UserID:         user.ID,
		Input:          domain.CalculationInput{ElectricBill: 100},
		TotalFootprint: 10500,
	}
	if err := db.Calculations().Create(ctx, calc); err != nil {
		t.Fatalf("create calculation: %v", err)
	}

	if err := db.Users().Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := db.Calculations().GetByID(ctx, calc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected calculation to be cascade-deleted, got %v", err)
	}
}
