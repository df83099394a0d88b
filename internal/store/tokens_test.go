package store

import (
	"context"
	"testing"
	"time"
)

func insertToken(t *testing.T, st *Store, ctx context.Context, accountID int64, worldID int32, token string, expiresAt time.Time) *LoginToken {
	t.Helper()
	err := st.InsertLoginToken(ctx, LoginToken{
		Token:         token,
		AccountID:     accountID,
		WorldID:       worldID,
		ClientVersion: 1,
		RequesterIP:   "127.0.0.1",
		ExpiresAt:     expiresAt,
	})
	if err != nil {
		t.Fatalf("insert token: %v", err)
	}
	got, err := st.GetLoginTokenByValue(ctx, token)
	if err != nil {
		t.Fatalf("get token: %v", err)
	}
	return got
}

func TestLoginTokenSingleUse(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustUpsertWorld(t, st, ctx, 1, 1)
	id := mustCreateAccount(t, st, ctx, "alice")
	tok := insertToken(t, st, ctx, id, 1, "tok-once", time.Now().Add(time.Minute))

	used, err := st.MarkLoginTokenUsed(ctx, tok.ID)
	if err != nil {
		t.Fatalf("mark used: %v", err)
	}
	if !used {
		t.Fatal("first consume should win")
	}
	used, err = st.MarkLoginTokenUsed(ctx, tok.ID)
	if err != nil {
		t.Fatalf("second mark used: %v", err)
	}
	if used {
		t.Fatal("second consume should lose")
	}
}

func TestLoginTokenLookup(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustUpsertWorld(t, st, ctx, 1, 1)
	id := mustCreateAccount(t, st, ctx, "bob")
	tok := insertToken(t, st, ctx, id, 1, "tok-look", time.Now().Add(time.Minute))
	if tok.AccountID != id || tok.WorldID != 1 || tok.UsedAt != nil {
		t.Fatalf("unexpected token: %+v", tok)
	}
	if _, err := st.GetLoginTokenByValue(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteUnusedTokensForAccount(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustUpsertWorld(t, st, ctx, 1, 1)
	id := mustCreateAccount(t, st, ctx, "carol")
	used := insertToken(t, st, ctx, id, 1, "tok-used", time.Now().Add(time.Minute))
	insertToken(t, st, ctx, id, 1, "tok-live", time.Now().Add(time.Minute))
	if _, err := st.MarkLoginTokenUsed(ctx, used.ID); err != nil {
		t.Fatalf("mark used: %v", err)
	}

	if err := st.DeleteUnusedTokensForAccount(ctx, id); err != nil {
		t.Fatalf("delete unused: %v", err)
	}
	if _, err := st.GetLoginTokenByValue(ctx, "tok-live"); err != ErrNotFound {
		t.Fatalf("unused token should be gone, got %v", err)
	}
	// The already-used token stays for the GC sweep.
	if _, err := st.GetLoginTokenByValue(ctx, "tok-used"); err != nil {
		t.Fatalf("used token should remain: %v", err)
	}
}

func TestDeleteDeadTokens(t *testing.T) {
	st, ctx, cleanup := openStore(t)
	defer cleanup()

	mustUpsertWorld(t, st, ctx, 1, 1)
	id := mustCreateAccount(t, st, ctx, "dave")
	expired := insertToken(t, st, ctx, id, 1, "tok-expired", time.Now().Add(-time.Minute))
	used := insertToken(t, st, ctx, id, 1, "tok-spent", time.Now().Add(time.Minute))
	insertToken(t, st, ctx, id, 1, "tok-alive", time.Now().Add(time.Minute))
	if _, err := st.MarkLoginTokenUsed(ctx, used.ID); err != nil {
		t.Fatalf("mark used: %v", err)
	}
	_ = expired

	n, err := st.DeleteDeadTokens(ctx, 100)
	if err != nil {
		t.Fatalf("delete dead: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted, got %d", n)
	}
	if _, err := st.GetLoginTokenByValue(ctx, "tok-alive"); err != nil {
		t.Fatalf("live token should survive: %v", err)
	}
}
