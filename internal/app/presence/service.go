package presence

import (
	"context"
	"time"

	"ashfall/internal/app/worlds"
	"ashfall/internal/store"

	"github.com/rs/zerolog/log"
)

// Service enforces at most one active session per account across all
// worlds. Liveness of the owning world is judged purely by heartbeat
// recency; there are no cross-process locks.
type Service struct {
	store      *store.Store
	staleAfter time.Duration
}

func NewService(st *store.Store, staleAfter time.Duration) *Service {
	if staleAfter <= 0 {
		staleAfter = 2 * time.Minute
	}
	return &Service{store: st, staleAfter: staleAfter}
}

// CheckAndReclaim reports whether the account is free to start a session.
// An entry owned by a stale world is deleted and the login may proceed; a
// live entry blocks with ErrAlreadyOnline.
//
// Two concurrent callers can both pass this check before either records
// presence. The presence row itself cannot duplicate (unique upsert on
// account id); the residual effect is both callers receiving tokens.
func (s *Service) CheckAndReclaim(ctx context.Context, accountID int64) error {
	entry, lastHeartbeat, err := s.store.GetPresenceForAccount(ctx, accountID)
	if err == store.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if worlds.IsStale(lastHeartbeat, s.staleAfter) {
		log.Info().
			Int64("account_id", accountID).
			Int32("world_id", entry.WorldID).
			Msg("reclaiming presence from stale world")
		return s.store.DeletePresenceByID(ctx, entry.ID)
	}
	return ErrAlreadyOnline
}

// RecordOnline creates or refreshes the account's single presence entry.
// A zero accountID records a legacy username-keyed entry instead.
func (s *Service) RecordOnline(ctx context.Context, accountID int64, username string, worldID int32) error {
	if worldID <= 0 {
		return ErrInvalidRequest
	}
	if accountID > 0 {
		return s.store.UpsertPresence(ctx, accountID, username, worldID)
	}
	if username == "" {
		return ErrInvalidRequest
	}
	return s.store.UpsertAnonymousPresence(ctx, username, worldID)
}

func (s *Service) Logout(ctx context.Context, accountID int64) error {
	if accountID <= 0 {
		return ErrInvalidRequest
	}
	return s.store.DeletePresenceByAccount(ctx, accountID)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.CountPresence(ctx)
}

func (s *Service) List(ctx context.Context, window time.Duration, limit, offset int) ([]store.PresenceEntry, error) {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return s.store.ListPresence(ctx, window, limit, offset)
}
