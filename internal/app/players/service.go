package players

import (
	"context"
	"errors"
	"fmt"

	"ashfall/internal/app/hiscores"
	"ashfall/internal/store"
)

var ErrInvalidRequest = errors.New("invalid_request")

// Service seeds per-group player state. Every statement it issues is an
// insert-if-absent, so bootstrapping is idempotent and safe to repeat on
// every login.
type Service struct {
	store    *store.Store
	hiscores *hiscores.Service
}

func NewService(st *store.Store, hs *hiscores.Service) *Service {
	return &Service{store: st, hiscores: hs}
}

// EnsureInitialized seeds skills, location, equipment, abilities,
// settings and the starter inventory for one account in one persistence
// group, then refreshes the aggregate so the account ranks correctly
// from its first login. Existing rows are never overwritten.
func (s *Service) EnsureInitialized(ctx context.Context, accountID int64, groupID int32) error {
	if accountID <= 0 || groupID <= 0 {
		return fmt.Errorf("%w: account_id and persistence_group_id must be positive", ErrInvalidRequest)
	}
	if err := s.store.EnsurePlayerSkills(ctx, accountID, groupID, baselineSkillID, baselineLevel, baselineXP); err != nil {
		return fmt.Errorf("seed skills: %w", err)
	}
	if err := s.hiscores.RecomputeAggregate(ctx, accountID, groupID); err != nil {
		return fmt.Errorf("seed aggregate: %w", err)
	}
	if err := s.store.EnsurePlayerLocation(ctx, accountID, groupID, spawnX, spawnY, spawnPlane); err != nil {
		return fmt.Errorf("seed location: %w", err)
	}
	if err := s.store.EnsurePlayerEquipment(ctx, accountID, groupID); err != nil {
		return fmt.Errorf("seed equipment: %w", err)
	}
	if err := s.store.EnsurePlayerAbilities(ctx, accountID, groupID); err != nil {
		return fmt.Errorf("seed abilities: %w", err)
	}
	if err := s.store.EnsurePlayerSettings(ctx, accountID, groupID); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	for _, it := range starterInventory {
		if err := s.store.EnsureInventoryItem(ctx, accountID, groupID, it.Slot, it.ItemID, it.Quantity); err != nil {
			return fmt.Errorf("seed inventory slot %d: %w", it.Slot, err)
		}
	}
	return nil
}

// EnsureInitializedForAllGroups bootstraps an account in every known
// persistence group. Used at registration so the account is playable on
// any world immediately.
func (s *Service) EnsureInitializedForAllGroups(ctx context.Context, accountID int64) error {
	groups, err := s.store.ListPersistenceGroupIDs(ctx)
	if err != nil {
		return err
	}
	for _, groupID := range groups {
		if err := s.EnsureInitialized(ctx, accountID, groupID); err != nil {
			return err
		}
	}
	return nil
}
