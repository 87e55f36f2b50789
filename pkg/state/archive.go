package state

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Archive preserves the first snapshot seen per reference. Later saves for
// the same reference are no-ops, so the stored state always reflects the
// dataset before any rewrite touched it.
type Archive[T any] struct {
	Store Store[T]
}

// SaveOriginal records snapshot under ref unless a snapshot already exists.
// It returns the metadata of whichever snapshot ends up stored.
func (a Archive[T]) SaveOriginal(ctx context.Context, ref Ref, snapshot T) (Meta, error) {
	if a.Store == nil {
		return Meta{}, fmt.Errorf("state: store is required")
	}

	_, existing, ok, err := a.Store.Load(ctx, ref)
	if err != nil {
		return Meta{}, fmt.Errorf("state: load %q/%q: %w", ref.Database, ref.Code, err)
	}
	if ok {
		return existing, nil
	}

	meta := Meta{
		SnapshotID: uuid.NewString(),
		UpdatedAt:  time.Now().UTC(),
	}
	saved, err := a.Store.Save(ctx, ref, snapshot, meta)
	if err != nil {
		return Meta{}, fmt.Errorf("state: save %q/%q: %w", ref.Database, ref.Code, err)
	}
	return saved, nil
}

// Original returns the preserved snapshot for ref.
func (a Archive[T]) Original(ctx context.Context, ref Ref) (T, Meta, bool, error) {
	var zero T
	if a.Store == nil {
		return zero, Meta{}, false, fmt.Errorf("state: store is required")
	}
	return a.Store.Load(ctx, ref)
}
