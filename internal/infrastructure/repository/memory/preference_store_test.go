package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/cricket-league/internal/domain/preference"
)

var _ preference.Store = (*PreferenceStore)(nil)

func TestPreferenceStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewPreferenceStore()

	if _, ok, _ := store.Get(ctx, "v1", preference.KeyFavoriteTeam); ok {
		t.Fatalf("expected empty store")
	}
	if err := store.Set(ctx, "v1", preference.KeyFavoriteTeam, "FC"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := store.Get(ctx, "v1", preference.KeyFavoriteTeam)
	if err != nil || !ok || got != "FC" {
		t.Fatalf("unexpected get result: %q %v %v", got, ok, err)
	}
	if _, ok, _ := store.Get(ctx, "v2", preference.KeyFavoriteTeam); ok {
		t.Fatalf("visitors must not share preferences")
	}

	if err := store.Remove(ctx, "v1", preference.KeyFavoriteTeam); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "v1", preference.KeyFavoriteTeam); ok {
		t.Fatalf("expected key removed")
	}
	if err := store.Remove(ctx, "nobody", preference.KeyFavoriteTeam); err != nil {
		t.Fatalf("removing an absent key must succeed: %v", err)
	}
}
