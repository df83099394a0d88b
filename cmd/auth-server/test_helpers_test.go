package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ashfall/internal/config"
	"ashfall/internal/store"
	"ashfall/internal/testutil"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T, cfg config.ServerConfig) (*chi.Mux, *services, func()) {
	t.Helper()
	st, cleanup := testutil.OpenTestStore(t)
	svc, err := newServices(context.Background(), st, cfg)
	if err != nil {
		cleanup()
		t.Fatalf("new services: %v", err)
	}
	return newRouter(svc, cfg), svc, cleanup
}

func createTestAccount(t *testing.T, st *store.Store, username, password string) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	id, err := st.CreateAccount(context.Background(), username, username+"@example.com", string(hash))
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return id
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func registerTestWorld(t *testing.T, router *chi.Mux, worldID, groupID int) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/ops/worlds", map[string]any{
		"world_id":             worldID,
		"persistence_group_id": groupID,
		"name":                 "Test World",
		"address":              "127.0.0.1:43594",
		"is_active":            true,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("register world: %d %s", w.Code, w.Body.String())
	}
}
