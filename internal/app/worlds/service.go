package worlds

import (
	"context"
	"time"

	"ashfall/internal/store"
)

type Service struct {
	store *store.Store

	developmentEnv bool
	readStale      time.Duration
	reclaimStale   time.Duration
}

type Descriptor struct {
	ID                 int32    `json:"world_id"`
	PersistenceGroupID int32    `json:"persistence_group_id"`
	Name               string   `json:"name"`
	Address            string   `json:"address"`
	Tags               []string `json:"tags"`
	IsActive           bool     `json:"is_active"`
	IsDevelopment      bool     `json:"is_development"`
}

func NewService(st *store.Store, developmentEnv bool, readStale, reclaimStale time.Duration) *Service {
	if readStale <= 0 {
		readStale = time.Minute
	}
	if reclaimStale <= 0 {
		reclaimStale = 2 * time.Minute
	}
	return &Service{
		store:          st,
		developmentEnv: developmentEnv,
		readStale:      readStale,
		reclaimStale:   reclaimStale,
	}
}

// Register upserts world metadata and stamps its heartbeat. Re-registering
// an existing id updates in place.
func (s *Service) Register(ctx context.Context, d Descriptor) error {
	if d.ID <= 0 || d.PersistenceGroupID <= 0 || d.Name == "" {
		return ErrInvalidRequest
	}
	return s.store.UpsertWorld(ctx, store.World{
		ID:                 d.ID,
		PersistenceGroupID: d.PersistenceGroupID,
		Name:               d.Name,
		Address:            d.Address,
		Tags:               NormalizeTags(d.Tags).String(),
		IsActive:           d.IsActive,
		IsDevelopment:      d.IsDevelopment,
	})
}

func (s *Service) Heartbeat(ctx context.Context, worldID int32) (time.Time, error) {
	if worldID <= 0 {
		return time.Time{}, ErrInvalidRequest
	}
	at, err := s.store.TouchWorldHeartbeat(ctx, worldID)
	if err == store.ErrNotFound {
		return time.Time{}, ErrWorldNotFound
	}
	return at, err
}

// ResolveForLogin returns the world a login may target: it must exist, be
// active, and development worlds only resolve when the service itself runs
// in development.
func (s *Service) ResolveForLogin(ctx context.Context, worldID int32) (*store.World, error) {
	if worldID <= 0 {
		return nil, ErrWorldNotFound
	}
	w, err := s.store.GetWorld(ctx, worldID)
	if err == store.ErrNotFound {
		return nil, ErrWorldNotFound
	}
	if err != nil {
		return nil, err
	}
	if !w.IsActive {
		return nil, ErrWorldNotFound
	}
	if w.IsDevelopment && !s.developmentEnv {
		return nil, ErrWorldNotFound
	}
	return w, nil
}

// IsStale reports whether a heartbeat is missing or older than the timeout.
func IsStale(lastHeartbeat *time.Time, timeout time.Duration) bool {
	if lastHeartbeat == nil {
		return true
	}
	return time.Since(*lastHeartbeat) > timeout
}

// ReclaimTimeout is the staleness bound after which presence entries owned
// by a world become reclaimable.
func (s *Service) ReclaimTimeout() time.Duration {
	return s.reclaimStale
}

type Status struct {
	Descriptor
	LastHeartbeat *time.Time `json:"last_heartbeat"`
	OnlineCount   int        `json:"online_count"`
	CountTrusted  bool       `json:"count_trusted"`
}

// List returns all worlds with online counts; counts from worlds whose
// heartbeat exceeds the read timeout are flagged untrusted.
func (s *Service) List(ctx context.Context) ([]Status, error) {
	items, err := s.store.ListWorlds(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(items))
	for _, w := range items {
		out = append(out, Status{
			Descriptor: Descriptor{
				ID:                 w.ID,
				PersistenceGroupID: w.PersistenceGroupID,
				Name:               w.Name,
				Address:            w.Address,
				Tags:               ParseTags(w.Tags),
				IsActive:           w.IsActive,
				IsDevelopment:      w.IsDevelopment,
			},
			LastHeartbeat: w.LastHeartbeat,
			OnlineCount:   w.OnlineCount,
			CountTrusted:  !IsStale(w.LastHeartbeat, s.readStale),
		})
	}
	return out, nil
}
