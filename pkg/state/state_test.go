package state

import (
	"context"
	"errors"
	"testing"
)

type marketSnapshot struct {
	Name     string
	Location string
	Amounts  []float64
}

func TestRefIdentifier(t *testing.T) {
	cases := []struct {
		name    string
		ref     Ref
		want    string
		wantErr bool
	}{
		{
			name: "full reference",
			ref:  Ref{Run: "run-1", Database: "eidb", Code: "abc"},
			want: "run-1/eidb/abc",
		},
		{
			name: "missing run falls back to default",
			ref:  Ref{Database: "eidb", Code: "abc"},
			want: "default/eidb/abc",
		},
		{
			name:    "missing database",
			ref:     Ref{Run: "run-1", Code: "abc"},
			wantErr: true,
		},
		{
			name:    "missing code",
			ref:     Ref{Run: "run-1", Database: "eidb"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.ref.Identifier()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore[marketSnapshot]()
	ctx := context.Background()
	ref := Ref{Run: "run-1", Database: "eidb", Code: "m-de"}

	if _, _, ok, err := store.Load(ctx, ref); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	meta := Meta{SnapshotID: "snap-1", ETag: "v1", Extra: map[string]string{"region": "DE"}}
	saved, err := store.Save(ctx, ref, marketSnapshot{Name: "market for electricity, high voltage"}, meta)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.SnapshotID != "snap-1" {
		t.Fatalf("unexpected meta %+v", saved)
	}

	snapshot, loaded, ok, err := store.Load(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("expected stored snapshot, got ok=%v err=%v", ok, err)
	}
	if snapshot.Name != "market for electricity, high voltage" {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}

	loaded.Extra["region"] = "FR"
	_, again, _, _ := store.Load(ctx, ref)
	if again.Extra["region"] != "DE" {
		t.Fatal("expected metadata clone to protect stored state")
	}
}

func TestMemoryStoreETagConflict(t *testing.T) {
	store := NewMemoryStore[marketSnapshot]()
	ctx := context.Background()
	ref := Ref{Database: "eidb", Code: "m-de"}

	if _, err := store.Save(ctx, ref, marketSnapshot{}, Meta{ETag: "v1"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := store.Save(ctx, ref, marketSnapshot{}, Meta{ETag: "v2"}); !errors.Is(err, ErrETagMismatch) {
		t.Fatalf("expected etag mismatch, got %v", err)
	}
	if _, err := store.Save(ctx, ref, marketSnapshot{}, Meta{ETag: "v1"}); err != nil {
		t.Fatalf("matching etag must save: %v", err)
	}
}

func TestArchivePreservesFirstSnapshot(t *testing.T) {
	archive := Archive[marketSnapshot]{Store: NewMemoryStore[marketSnapshot]()}
	ctx := context.Background()
	ref := Ref{Run: "run-1", Database: "eidb", Code: "m-de"}

	original := marketSnapshot{Name: "market for electricity, high voltage", Amounts: []float64{0.3, 0.7}}
	first, err := archive.SaveOriginal(ctx, ref, original)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first.SnapshotID == "" {
		t.Fatal("expected generated snapshot ID")
	}

	second, err := archive.SaveOriginal(ctx, ref, marketSnapshot{Name: "rewritten"})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if second.SnapshotID != first.SnapshotID {
		t.Fatal("expected second save to be a no-op")
	}

	snapshot, _, ok, err := archive.Original(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("expected preserved snapshot, got ok=%v err=%v", ok, err)
	}
	if snapshot.Name != original.Name {
		t.Fatalf("expected original preserved, got %+v", snapshot)
	}
}

func TestArchiveRequiresStore(t *testing.T) {
	var archive Archive[marketSnapshot]
	if _, err := archive.SaveOriginal(context.Background(), Ref{Database: "eidb", Code: "x"}, marketSnapshot{}); err == nil {
		t.Fatal("expected error without store")
	}
}
