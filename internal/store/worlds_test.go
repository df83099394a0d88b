package store

import (
	"testing"
	"time"
)

func TestWorldsUpsertAndHeartbeat(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustUpsertWorld(t, st, ctx, 1, 1)

	w, err := st.GetWorld(ctx, 1)
	if err != nil {
		t.Fatalf("get world: %v", err)
	}
	if w.Name != "World 1" || w.LastHeartbeat == nil {
		t.Fatalf("unexpected world: %+v", w)
	}

	// Re-registering updates in place.
	if err := st.UpsertWorld(ctx, World{ID: 1, PersistenceGroupID: 1, Name: "Renamed", Address: "10.0.0.1:43594", IsActive: false}); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	w, err = st.GetWorld(ctx, 1)
	if err != nil {
		t.Fatalf("get world: %v", err)
	}
	if w.Name != "Renamed" || w.IsActive {
		t.Fatalf("upsert did not update: %+v", w)
	}

	at, err := st.TouchWorldHeartbeat(ctx, 1)
	if err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	if time.Since(at) > time.Minute {
		t.Fatalf("heartbeat timestamp too old: %v", at)
	}

	if _, err := st.TouchWorldHeartbeat(ctx, 42); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWorldsListWithOnlineCounts(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustUpsertWorld(t, st, ctx, 1, 1)
	mustUpsertWorld(t, st, ctx, 2, 1)

	a := mustCreateAccount(t, st, ctx, "alice")
	b := mustCreateAccount(t, st, ctx, "bob")
	if err := st.UpsertPresence(ctx, a, "alice", 1); err != nil {
		t.Fatalf("presence a: %v", err)
	}
	if err := st.UpsertPresence(ctx, b, "bob", 1); err != nil {
		t.Fatalf("presence b: %v", err)
	}

	items, err := st.ListWorlds(ctx)
	if err != nil {
		t.Fatalf("list worlds: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 worlds, got %d", len(items))
	}
	counts := map[int32]int{}
	for _, w := range items {
		counts[w.ID] = w.OnlineCount
	}
	if counts[1] != 2 || counts[2] != 0 {
		t.Fatalf("unexpected online counts: %v", counts)
	}
}

func TestListPersistenceGroupIDs(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustUpsertWorld(t, st, ctx, 1, 1)
	mustUpsertWorld(t, st, ctx, 2, 2)
	mustUpsertWorld(t, st, ctx, 3, 1)

	groups, err := st.ListPersistenceGroupIDs(ctx)
	if err != nil {
		t.Fatalf("list groups: %v", err)
	}
	if len(groups) != 2 || groups[0] != 1 || groups[1] != 2 {
		t.Fatalf("unexpected groups: %v", groups)
	}
}
