package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mhollis/footprint/internal/domain"
)

// userRepo implements domain.UserRepository using SQLite.
type userRepo struct {
	db *sql.DB
}

const userColumns = `id, username, password_hash, email, first_name, last_name, profile_image_url, created_at`

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	id := user.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, email, first_name, last_name, profile_image_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, user.Username, user.PasswordHash, nullString(user.Email),
		user.FirstName, user.LastName, user.ProfileImageURL, now,
	)
	if err != nil {
		if isUniqueViolation(err, "users.username") {
			return domain.ErrDuplicateUsername
		}
		if isUniqueViolation(err, "users.email") {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	return nil
}

// Upsert inserts the user, or on an email collision updates only the
// display attributes of the existing row. Implemented as an explicit
// two-branch operation rather than a conflict clause so the merge policy
// stays portable across storage engines.
func (r *userRepo) Upsert(ctx context.Context, user *domain.User) error {
	err := r.Create(ctx, user)
	if err == nil || !errors.Is(err, domain.ErrDuplicateEmail) {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	existing := &domain.User{}
	if err := scanUser(tx.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, user.Email,
	), existing); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("query user by email: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, profile_image_url = ? WHERE id = ?`,
		user.FirstName, user.LastName, user.ProfileImageURL, existing.ID,
	); err != nil {
		return fmt.Errorf("update user display attributes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	// id, username and password hash of the existing row win.
	user.ID = existing.ID
	user.Username = existing.Username
	user.PasswordHash = existing.PasswordHash
	user.CreatedAt = existing.CreatedAt
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user := &domain.User{}
	err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{}
	err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username,
	), user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by username: %w", err)
	}
	return user, nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, user *domain.User) error {
	var email sql.NullString
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &email,
		&user.FirstName, &user.LastName, &user.ProfileImageURL, &user.CreatedAt); err != nil {
		return err
	}
	user.Email = email.String
	return nil
}

// nullString stores empty strings as NULL so the unique index on email
// ignores users without one.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
