package domain

import (
	"context"
	"time"
)

// FlowSession is one row of the generic session store: a single JSON
// slot per questionnaire cookie holding the in-progress flow state and,
// after the final step, the preview result. The slot is overwritten on
// each new run.
type FlowSession struct {
	SID      string
	Sess     []byte // serialized JSON document
	ExpireAt time.Time
}

// FlowSessionRepository defines the single-slot transient store keyed
// by session ID.
type FlowSessionRepository interface {
	// Put inserts or overwrites the slot for sid.
	Put(ctx context.Context, sid string, sess []byte, expireAt time.Time) error

	// Get returns the slot contents, or ErrNotFound if the slot is
	// absent or expired.
	Get(ctx context.Context, sid string) ([]byte, error)

	Delete(ctx context.Context, sid string) error

	// PurgeExpired removes expired slots and reports how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
