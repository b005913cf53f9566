package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mhollis/footprint/internal/domain"
)

// flowSessionRepo implements domain.FlowSessionRepository using SQLite.
// One row per session ID; Put overwrites the slot in place.
type flowSessionRepo struct {
	db *sql.DB
}

func (r *flowSessionRepo) Put(ctx context.Context, sid string, sess []byte, expireAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (sid, sess, expire) VALUES (?, ?, ?)
		 ON CONFLICT(sid) DO UPDATE SET sess = excluded.sess, expire = excluded.expire`,
		sid, string(sess), expireAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (r *flowSessionRepo) Get(ctx context.Context, sid string) ([]byte, error) {
	var sess string
	var expire time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT sess, expire FROM sessions WHERE sid = ?`, sid,
	).Scan(&sess, &expire)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query session: %w", err)
	}

	// An expired slot reads as absent; it is reaped later by PurgeExpired.
	if !expire.After(time.Now().UTC()) {
		return nil, domain.ErrNotFound
	}
	return []byte(sess), nil
}

func (r *flowSessionRepo) Delete(ctx context.Context, sid string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE sid = ?", sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *flowSessionRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expire <= ?", now.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return result.RowsAffected()
}
