package clientversion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrUnavailable = errors.New("client_version_unavailable")

// FetchFunc retrieves the latest client version from the source of truth.
type FetchFunc func(ctx context.Context) (int32, error)

// Service caches the latest version behind a TTL so login traffic never
// fans out to the manifest host. A fetch failure serves the stale value
// when one exists.
type Service struct {
	fetch FetchFunc
	ttl   time.Duration

	mu        sync.Mutex
	latest    int32
	fetchedAt time.Time
}

func NewService(fetch FetchFunc, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Service{fetch: fetch, ttl: ttl}
}

// Static returns a service pinned to one version, for deployments without
// a manifest host.
func Static(version int32) *Service {
	return NewService(func(context.Context) (int32, error) { return version, nil }, time.Hour)
}

func (s *Service) Latest(ctx context.Context) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.ttl {
		return s.latest, nil
	}
	v, err := s.fetch(ctx)
	if err != nil {
		if !s.fetchedAt.IsZero() {
			log.Warn().Err(err).Int32("stale", s.latest).Msg("client version fetch failed, serving stale")
			return s.latest, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.latest = v
	s.fetchedAt = time.Now()
	return v, nil
}

// NewManifestFetcher fetches {"client_version": N} from a JSON manifest
// URL, retrying once on transport errors and 5xx.
func NewManifestFetcher(url string) FetchFunc {
	client := &http.Client{Timeout: 10 * time.Second}
	return func(ctx context.Context) (int32, error) {
		var lastErr error
		for attempt := 0; attempt < 2; attempt++ {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return 0, err
			}
			resp, err := client.Do(req)
			if err != nil {
				lastErr = err
				if attempt == 0 && ctx.Err() == nil {
					time.Sleep(200 * time.Millisecond)
					continue
				}
				return 0, err
			}
			if resp.StatusCode >= 500 && attempt == 0 {
				resp.Body.Close()
				lastErr = fmt.Errorf("manifest status %d", resp.StatusCode)
				time.Sleep(200 * time.Millisecond)
				continue
			}
			if resp.StatusCode != http.StatusOK {
				resp.Body.Close()
				return 0, fmt.Errorf("manifest status %d", resp.StatusCode)
			}
			var body struct {
				ClientVersion int32 `json:"client_version"`
			}
			err = json.NewDecoder(resp.Body).Decode(&body)
			resp.Body.Close()
			if err != nil {
				return 0, err
			}
			if body.ClientVersion <= 0 {
				return 0, fmt.Errorf("manifest missing client_version")
			}
			return body.ClientVersion, nil
		}
		return 0, lastErr
	}
}
