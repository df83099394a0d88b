package hiscores

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"ashfall/internal/store"
)

// Service owns ranking reads and the set-based recompute passes. All rank
// state lives in the database; the service only orchestrates which
// (skill, group) populations get rewritten.
type Service struct {
	store       *store.Store
	minOverall  int32
	aggregateID int32
}

func NewService(st *store.Store, minOverallLevel int32) *Service {
	return &Service{store: st, minOverall: minOverallLevel}
}

// VerifyCatalog confirms the skill catalog is seeded and caches the
// aggregate skill id. Call once at startup; serving without a catalog
// would make every recompute a no-op.
func (s *Service) VerifyCatalog(ctx context.Context) error {
	agg, err := s.store.GetAggregateSkill(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCatalogUnseeded
		}
		return err
	}
	s.aggregateID = agg.ID
	return nil
}

// AggregateSkillID is only valid after VerifyCatalog.
func (s *Service) AggregateSkillID() int32 {
	return s.aggregateID
}

// RecomputeAggregate refreshes one account's aggregate row from its
// non-aggregate skills.
func (s *Service) RecomputeAggregate(ctx context.Context, accountID int64, groupID int32) error {
	return s.store.RecomputeAggregate(ctx, accountID, groupID, s.aggregateID)
}

// RecomputeRanks rewrites the full ranking for one (skill, group)
// population.
func (s *Service) RecomputeRanks(ctx context.Context, skillID, groupID int32) error {
	return s.store.RecomputeRanks(ctx, skillID, groupID, skillID == s.aggregateID)
}

// RecomputeTouched handles the coalesced trusted trigger: refresh the
// aggregate for every touched account, then rewrite ranks for every
// touched skill and the aggregate. Skill ids are deduplicated so a world
// reporting the same skill for many players costs one rank pass.
func (s *Service) RecomputeTouched(ctx context.Context, req RecomputeRequest) error {
	if req.PersistenceGroupID <= 0 {
		return fmt.Errorf("%w: persistence_group_id must be positive", ErrInvalidRequest)
	}
	for _, accountID := range req.AccountIDs {
		if accountID <= 0 {
			return fmt.Errorf("%w: account_id must be positive", ErrInvalidRequest)
		}
		if err := s.RecomputeAggregate(ctx, accountID, req.PersistenceGroupID); err != nil {
			return err
		}
	}
	touched := map[int32]bool{s.aggregateID: true}
	for _, skillID := range req.SkillIDs {
		touched[skillID] = true
	}
	ids := make([]int32, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := s.RecomputeRanks(ctx, id, req.PersistenceGroupID); err != nil {
			return err
		}
	}
	return nil
}

// ApplySkillWrites applies a trusted world's skill snapshot for one
// account, then refreshes that account's aggregate. The aggregate skill
// itself is derived and never writable here.
func (s *Service) ApplySkillWrites(ctx context.Context, req SkillWriteRequest) error {
	if req.PersistenceGroupID <= 0 || req.AccountID <= 0 {
		return fmt.Errorf("%w: account_id and persistence_group_id must be positive", ErrInvalidRequest)
	}
	if len(req.Skills) == 0 {
		return fmt.Errorf("%w: no skills to write", ErrInvalidRequest)
	}
	for _, w := range req.Skills {
		if w.SkillID == s.aggregateID {
			return ErrAggregateWrite
		}
		if w.Level < 0 || w.Experience < 0 {
			return fmt.Errorf("%w: level and experience must be non-negative", ErrInvalidRequest)
		}
	}
	for _, w := range req.Skills {
		if err := s.store.UpsertPlayerSkill(ctx, req.AccountID, req.PersistenceGroupID, w.SkillID, w.Level, w.Experience); err != nil {
			return err
		}
	}
	return s.RecomputeAggregate(ctx, req.AccountID, req.PersistenceGroupID)
}

// SkillPage serves one page of a skill's table, filterable by a minimum
// level; the aggregate table additionally enforces its configured floor.
// Positions come from stored ranks when present; rows awaiting a
// recompute fall back to their page position so the listing never shows
// holes.
func (s *Service) SkillPage(ctx context.Context, slug string, groupID int32, minLevel, limit, offset int) (*SkillPageResponse, error) {
	if slug == "" || groupID <= 0 {
		return nil, fmt.Errorf("%w: skill and persistence_group_id are required", ErrInvalidRequest)
	}
	sk, err := s.store.GetSkillBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if minLevel < 0 {
		minLevel = 0
	}
	if sk.IsAggregate && minLevel < int(s.minOverall) {
		minLevel = int(s.minOverall)
	}
	rows, err := s.store.ListHiscores(ctx, sk.ID, groupID, sk.IsAggregate, minLevel, limit, offset)
	if err != nil {
		return nil, err
	}
	resp := &SkillPageResponse{Skill: sk.Slug, Group: groupID, Items: make([]SkillPageItem, 0, len(rows)), Limit: limit, Offset: offset}
	for i, r := range rows {
		position := offset + i + 1
		if r.Rank != nil {
			position = int(*r.Rank)
		}
		resp.Items = append(resp.Items, SkillPageItem{
			Position:   position,
			Username:   r.Username,
			Level:      r.Level,
			Experience: r.Experience,
		})
	}
	return resp, nil
}

// PlayerProfile returns one account's full skill sheet. Profiles stay
// hidden until the overall level clears the listing threshold, matching
// the aggregate table's own floor.
func (s *Service) PlayerProfile(ctx context.Context, username string, groupID int32) (*ProfileResponse, error) {
	if username == "" || groupID <= 0 {
		return nil, fmt.Errorf("%w: username and persistence_group_id are required", ErrInvalidRequest)
	}
	acct, err := s.store.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if acct.IsPermBanned {
		return nil, ErrPlayerNotFound
	}
	skills, err := s.store.ListPlayerSkills(ctx, acct.ID, groupID)
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return nil, ErrPlayerNotFound
	}
	var overall *store.PlayerSkillEntry
	for i := range skills {
		if skills[i].IsAggregate {
			overall = &skills[i]
			break
		}
	}
	if overall == nil || overall.Level < s.minOverall {
		return nil, ErrProfileHidden
	}
	resp := &ProfileResponse{Username: acct.Username, Group: groupID, Skills: make([]ProfileSkill, 0, len(skills))}
	for _, e := range skills {
		resp.Skills = append(resp.Skills, ProfileSkill{
			Skill:      e.Slug,
			Level:      e.Level,
			Experience: e.Experience,
			Rank:       e.Rank,
		})
	}
	return resp, nil
}
