package presence

import (
	"context"
	"testing"
	"time"

	"ashfall/internal/app/worlds"
	"ashfall/internal/testutil"
)

func TestCheckAndReclaim(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()

	ws := worlds.NewService(st, true, 0, 0)
	register := func(id int32) {
		t.Helper()
		if err := ws.Register(context.Background(), worlds.Descriptor{ID: id, PersistenceGroupID: 1, Name: "w", IsActive: true}); err != nil {
			t.Fatalf("register world %d: %v", id, err)
		}
	}
	register(1)
	register(2)

	accountID, err := st.CreateAccount(context.Background(), "alice", "alice@example.com", "x")
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	svc := NewService(st, 2*time.Minute)

	// No presence at all: free to log in.
	if err := svc.CheckAndReclaim(context.Background(), accountID); err != nil {
		t.Fatalf("free account: %v", err)
	}

	if err := svc.RecordOnline(context.Background(), accountID, "alice", 1); err != nil {
		t.Fatalf("record online: %v", err)
	}

	// World 1 just heartbeated via registration, so the session is live.
	if err := svc.CheckAndReclaim(context.Background(), accountID); err != ErrAlreadyOnline {
		t.Fatalf("live session: got %v, want ErrAlreadyOnline", err)
	}

	// Age world 1's heartbeat past the stale bound; the entry is reclaimed.
	if _, err := st.Pool.Exec(context.Background(), `UPDATE worlds SET last_heartbeat = now() - interval '10 minutes' WHERE id = 1`); err != nil {
		t.Fatalf("age heartbeat: %v", err)
	}
	if err := svc.CheckAndReclaim(context.Background(), accountID); err != nil {
		t.Fatalf("stale session should reclaim: %v", err)
	}
	if err := svc.CheckAndReclaim(context.Background(), accountID); err != nil {
		t.Fatalf("after reclaim the account is free: %v", err)
	}

	n, err := svc.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty presence after reclaim, got %d", n)
	}
}

func TestRecordOnlineValidation(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	svc := NewService(st, 0)

	if err := svc.RecordOnline(context.Background(), 1, "alice", 0); err != ErrInvalidRequest {
		t.Fatalf("zero world: got %v", err)
	}
	if err := svc.RecordOnline(context.Background(), 0, "", 1); err != ErrInvalidRequest {
		t.Fatalf("anonymous without username: got %v", err)
	}
	if err := svc.Logout(context.Background(), 0); err != ErrInvalidRequest {
		t.Fatalf("logout zero account: got %v", err)
	}
}

func TestLogoutClearsPresence(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()

	ws := worlds.NewService(st, true, 0, 0)
	if err := ws.Register(context.Background(), worlds.Descriptor{ID: 1, PersistenceGroupID: 1, Name: "w", IsActive: true}); err != nil {
		t.Fatalf("register world: %v", err)
	}
	accountID, err := st.CreateAccount(context.Background(), "bob", "bob@example.com", "x")
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	svc := NewService(st, 2*time.Minute)
	if err := svc.RecordOnline(context.Background(), accountID, "bob", 1); err != nil {
		t.Fatalf("record online: %v", err)
	}
	if err := svc.Logout(context.Background(), accountID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := svc.CheckAndReclaim(context.Background(), accountID); err != nil {
		t.Fatalf("after logout the account is free: %v", err)
	}
}
