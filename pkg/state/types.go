package state

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrETagMismatch = errors.New("state: etag mismatch")

// Ref identifies one persisted snapshot of one dataset within a run.
type Ref struct {
	Run      string
	Database string
	Code     string
}

// Identifier returns the canonical storage key for the reference.
func (r Ref) Identifier() (string, error) {
	if r.Database == "" {
		return "", fmt.Errorf("state: database is required")
	}
	if r.Code == "" {
		return "", fmt.Errorf("state: code is required")
	}
	run := r.Run
	if run == "" {
		run = "default"
	}
	return fmt.Sprintf("%s/%s/%s", run, r.Database, r.Code), nil
}

// Meta is storage-owned metadata used for audit and concurrency control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads/saves one snapshot for a single reference.
type Store[T any] interface {
	Load(ctx context.Context, ref Ref) (snapshot T, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot T, meta Meta) (Meta, error)
}
