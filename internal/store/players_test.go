package store

import "testing"

func TestEnsurePlayerSkillsIdempotent(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	if err := st.EnsureDefaultSkills(ctx); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	mustUpsertWorld(t, st, ctx, 1, 1)
	id := mustCreateAccount(t, st, ctx, "newbie")

	if err := st.EnsurePlayerSkills(ctx, id, 1, 4, 10, 1154); err != nil {
		t.Fatalf("ensure skills: %v", err)
	}

	hp, err := st.GetPlayerSkill(ctx, id, 1, 4)
	if err != nil {
		t.Fatalf("get hitpoints: %v", err)
	}
	if hp.Level != 10 || hp.Experience != 1154 {
		t.Fatalf("unexpected hitpoints: %+v", hp)
	}
	atk, err := st.GetPlayerSkill(ctx, id, 1, 1)
	if err != nil {
		t.Fatalf("get attack: %v", err)
	}
	if atk.Level != 1 || atk.Experience != 0 {
		t.Fatalf("unexpected attack: %+v", atk)
	}

	// Progress is never clobbered by a repeat bootstrap.
	if err := st.UpsertPlayerSkill(ctx, id, 1, 1, 40, 37224); err != nil {
		t.Fatalf("train attack: %v", err)
	}
	if err := st.EnsurePlayerSkills(ctx, id, 1, 4, 10, 1154); err != nil {
		t.Fatalf("repeat ensure: %v", err)
	}
	atk, err = st.GetPlayerSkill(ctx, id, 1, 1)
	if err != nil {
		t.Fatalf("get attack: %v", err)
	}
	if atk.Level != 40 || atk.Experience != 37224 {
		t.Fatalf("repeat bootstrap clobbered progress: %+v", atk)
	}
}

func TestEnsurePlayerStateRowsIdempotent(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustUpsertWorld(t, st, ctx, 1, 1)
	id := mustCreateAccount(t, st, ctx, "settler")

	for i := 0; i < 2; i++ {
		if err := st.EnsurePlayerLocation(ctx, id, 1, 3222, 3218, 0); err != nil {
			t.Fatalf("ensure location: %v", err)
		}
		if err := st.EnsurePlayerEquipment(ctx, id, 1); err != nil {
			t.Fatalf("ensure equipment: %v", err)
		}
		if err := st.EnsurePlayerAbilities(ctx, id, 1); err != nil {
			t.Fatalf("ensure abilities: %v", err)
		}
		if err := st.EnsurePlayerSettings(ctx, id, 1); err != nil {
			t.Fatalf("ensure settings: %v", err)
		}
		if err := st.EnsureInventoryItem(ctx, id, 1, 0, 1351, 1); err != nil {
			t.Fatalf("ensure inventory: %v", err)
		}
	}

	loc, err := st.GetPlayerLocation(ctx, id, 1)
	if err != nil {
		t.Fatalf("get location: %v", err)
	}
	if loc.X != 3222 || loc.Y != 3218 || loc.Plane != 0 {
		t.Fatalf("unexpected location: %+v", loc)
	}
	inv, err := st.ListInventory(ctx, id, 1)
	if err != nil {
		t.Fatalf("list inventory: %v", err)
	}
	if len(inv) != 1 || inv[0].ItemID != 1351 {
		t.Fatalf("unexpected inventory: %+v", inv)
	}
}

func TestPlayerStateIsolatedPerGroup(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	if err := st.EnsureDefaultSkills(ctx); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	mustUpsertWorld(t, st, ctx, 1, 1)
	mustUpsertWorld(t, st, ctx, 2, 2)
	id := mustCreateAccount(t, st, ctx, "roamer")

	if err := st.EnsurePlayerSkills(ctx, id, 1, 4, 10, 1154); err != nil {
		t.Fatalf("ensure group 1: %v", err)
	}
	if err := st.UpsertPlayerSkill(ctx, id, 1, 9, 50, 101333); err != nil {
		t.Fatalf("train woodcutting: %v", err)
	}
	if err := st.EnsurePlayerSkills(ctx, id, 2, 4, 10, 1154); err != nil {
		t.Fatalf("ensure group 2: %v", err)
	}

	wc, err := st.GetPlayerSkill(ctx, id, 2, 9)
	if err != nil {
		t.Fatalf("get woodcutting in group 2: %v", err)
	}
	if wc.Level != 1 || wc.Experience != 0 {
		t.Fatalf("group 2 should start fresh: %+v", wc)
	}
}
