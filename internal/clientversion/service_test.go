package clientversion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLatestCachesWithinTTL(t *testing.T) {
	calls := 0
	svc := NewService(func(context.Context) (int32, error) {
		calls++
		return 42, nil
	}, time.Hour)

	for i := 0; i < 3; i++ {
		v, err := svc.Latest(context.Background())
		if err != nil {
			t.Fatalf("Latest: %v", err)
		}
		if v != 42 {
			t.Fatalf("version = %d, want 42", v)
		}
	}
	if calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", calls)
	}
}

func TestLatestServesStaleOnFetchError(t *testing.T) {
	calls := 0
	svc := NewService(func(context.Context) (int32, error) {
		calls++
		if calls == 1 {
			return 7, nil
		}
		return 0, errors.New("manifest down")
	}, time.Nanosecond)

	if v, err := svc.Latest(context.Background()); err != nil || v != 7 {
		t.Fatalf("first Latest = %d, %v", v, err)
	}
	time.Sleep(time.Millisecond)
	v, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("stale Latest: %v", err)
	}
	if v != 7 {
		t.Fatalf("stale version = %d, want 7", v)
	}
}

func TestLatestErrorsWithoutCache(t *testing.T) {
	svc := NewService(func(context.Context) (int32, error) {
		return 0, errors.New("manifest down")
	}, time.Minute)
	if _, err := svc.Latest(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestManifestFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"client_version": 211}`))
	}))
	defer srv.Close()

	fetch := NewManifestFetcher(srv.URL)
	v, err := fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if v != 211 {
		t.Fatalf("version = %d, want 211", v)
	}
}

func TestManifestFetcherRetriesServerError(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"client_version": 5}`))
	}))
	defer srv.Close()

	v, err := NewManifestFetcher(srv.URL)(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if v != 5 || hits != 2 {
		t.Fatalf("version = %d hits = %d, want 5 after retry", v, hits)
	}
}

func TestManifestFetcherRejectsMissingVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := NewManifestFetcher(srv.URL)(context.Background()); err == nil {
		t.Fatal("expected error for missing client_version")
	}
}
