package store

import "context"

// defaultSkills is the static catalog. ID 0 is the synthetic overall
// aggregate; its rows are derived, never written by worlds.
var defaultSkills = []SkillDefinition{
	{ID: 0, Slug: "overall", DisplayName: "Overall", IsAggregate: true, SortOrder: 0},
	{ID: 1, Slug: "attack", DisplayName: "Attack", SortOrder: 1},
	{ID: 2, Slug: "defence", DisplayName: "Defence", SortOrder: 2},
	{ID: 3, Slug: "strength", DisplayName: "Strength", SortOrder: 3},
	{ID: 4, Slug: "hitpoints", DisplayName: "Hitpoints", SortOrder: 4},
	{ID: 5, Slug: "ranged", DisplayName: "Ranged", SortOrder: 5},
	{ID: 6, Slug: "prayer", DisplayName: "Prayer", SortOrder: 6},
	{ID: 7, Slug: "magic", DisplayName: "Magic", SortOrder: 7},
	{ID: 8, Slug: "cooking", DisplayName: "Cooking", SortOrder: 8},
	{ID: 9, Slug: "woodcutting", DisplayName: "Woodcutting", SortOrder: 9},
	{ID: 10, Slug: "fletching", DisplayName: "Fletching", SortOrder: 10},
	{ID: 11, Slug: "fishing", DisplayName: "Fishing", SortOrder: 11},
	{ID: 12, Slug: "firemaking", DisplayName: "Firemaking", SortOrder: 12},
	{ID: 13, Slug: "crafting", DisplayName: "Crafting", SortOrder: 13},
	{ID: 14, Slug: "smithing", DisplayName: "Smithing", SortOrder: 14},
	{ID: 15, Slug: "mining", DisplayName: "Mining", SortOrder: 15},
	{ID: 16, Slug: "herblore", DisplayName: "Herblore", SortOrder: 16},
	{ID: 17, Slug: "agility", DisplayName: "Agility", SortOrder: 17},
	{ID: 18, Slug: "thieving", DisplayName: "Thieving", SortOrder: 18},
	{ID: 19, Slug: "runecrafting", DisplayName: "Runecrafting", SortOrder: 19},
}

func (s *Store) EnsureDefaultSkills(ctx context.Context) error {
	for _, sk := range defaultSkills {
		_, err := s.Pool.Exec(ctx, `
			INSERT INTO skills (id, slug, display_name, is_aggregate, sort_order)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`, sk.ID, sk.Slug, sk.DisplayName, sk.IsAggregate, sk.SortOrder)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListSkills(ctx context.Context) ([]SkillDefinition, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, slug, display_name, is_aggregate, sort_order
		FROM skills ORDER BY sort_order ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []SkillDefinition{}
	for rows.Next() {
		var sk SkillDefinition
		if err := rows.Scan(&sk.ID, &sk.Slug, &sk.DisplayName, &sk.IsAggregate, &sk.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, sk)
	}
	return out, rows.Err()
}

func (s *Store) GetSkillBySlug(ctx context.Context, slug string) (*SkillDefinition, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, slug, display_name, is_aggregate, sort_order FROM skills WHERE slug = $1
	`, slug)
	var sk SkillDefinition
	if err := row.Scan(&sk.ID, &sk.Slug, &sk.DisplayName, &sk.IsAggregate, &sk.SortOrder); err != nil {
		return nil, mapNotFound(err)
	}
	return &sk, nil
}

func (s *Store) GetAggregateSkill(ctx context.Context) (*SkillDefinition, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, slug, display_name, is_aggregate, sort_order FROM skills WHERE is_aggregate LIMIT 1
	`)
	var sk SkillDefinition
	if err := row.Scan(&sk.ID, &sk.Slug, &sk.DisplayName, &sk.IsAggregate, &sk.SortOrder); err != nil {
		return nil, mapNotFound(err)
	}
	return &sk, nil
}

// RecomputeAggregate replaces the aggregate row with the sums over all
// non-aggregate skills for one account+group in a single set-based upsert.
func (s *Store) RecomputeAggregate(ctx context.Context, accountID int64, groupID, aggregateSkillID int32) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO player_skills (account_id, persistence_group_id, skill_id, level, experience)
		SELECT $1, $2, $3, COALESCE(SUM(level), 0), COALESCE(SUM(experience), 0)
		FROM player_skills
		WHERE account_id = $1 AND persistence_group_id = $2 AND skill_id <> $3
		ON CONFLICT (account_id, persistence_group_id, skill_id) DO UPDATE
		SET level = EXCLUDED.level,
		    experience = EXCLUDED.experience
	`, accountID, groupID, aggregateSkillID)
	return err
}

// RecomputeRanks rewrites ranks for the whole (skill, group) population in
// two set-based statements: clear ranks below the unranked threshold, then
// assign 1..N by the skill's measure with account id as the deterministic
// tiebreak.
func (s *Store) RecomputeRanks(ctx context.Context, skillID, groupID int32, isAggregate bool) error {
	clearPredicate := `experience = 0`
	orderBy := `experience DESC, account_id ASC`
	if isAggregate {
		clearPredicate = `level = 0`
		orderBy = `level DESC, experience DESC, account_id ASC`
	}
	if _, err := s.Pool.Exec(ctx, `
		UPDATE player_skills SET rank = NULL
		WHERE persistence_group_id = $1 AND skill_id = $2 AND `+clearPredicate,
		groupID, skillID); err != nil {
		return err
	}
	_, err := s.Pool.Exec(ctx, `
		UPDATE player_skills ps SET rank = ranked.rn
		FROM (
			SELECT account_id,
			       ROW_NUMBER() OVER (ORDER BY `+orderBy+`) AS rn
			FROM player_skills
			WHERE persistence_group_id = $1 AND skill_id = $2 AND NOT (`+clearPredicate+`)
		) ranked
		WHERE ps.persistence_group_id = $1 AND ps.skill_id = $2
		  AND ps.account_id = ranked.account_id
	`, groupID, skillID)
	return err
}

// ListHiscores pages one skill's table. Ordering prefers the stored rank
// but keeps the measure ordering as fallback so rows with a NULL rank (not
// yet recomputed) still land in the right place.
func (s *Store) ListHiscores(ctx context.Context, skillID, groupID int32, isAggregate bool, minLevel, limit, offset int) ([]HiscoreRow, error) {
	if limit <= 0 {
		limit = 50
	}
	orderBy := `ps.rank ASC NULLS LAST, ps.experience DESC, ps.account_id ASC`
	unranked := `ps.experience = 0`
	if isAggregate {
		orderBy = `ps.rank ASC NULLS LAST, ps.level DESC, ps.experience DESC, ps.account_id ASC`
		unranked = `ps.level = 0`
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT ps.account_id, a.username, ps.level, ps.experience, ps.rank
		FROM player_skills ps
		JOIN accounts a ON a.id = ps.account_id
		WHERE ps.persistence_group_id = $1 AND ps.skill_id = $2
		  AND NOT a.is_perm_banned
		  AND NOT (`+unranked+`)
		  AND ps.level >= $3
		ORDER BY `+orderBy+`
		LIMIT $4 OFFSET $5
	`, groupID, skillID, minLevel, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []HiscoreRow{}
	for rows.Next() {
		var r HiscoreRow
		if err := rows.Scan(&r.AccountID, &r.Username, &r.Level, &r.Experience, &r.Rank); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListPlayerSkills returns all of one account's skills in a group, aggregate
// first, with catalog metadata attached.
func (s *Store) ListPlayerSkills(ctx context.Context, accountID int64, groupID int32) ([]PlayerSkillEntry, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT ps.account_id, ps.persistence_group_id, ps.skill_id, ps.level, ps.experience, ps.rank,
		       sk.slug, sk.display_name, sk.is_aggregate
		FROM player_skills ps
		JOIN skills sk ON sk.id = ps.skill_id
		WHERE ps.account_id = $1 AND ps.persistence_group_id = $2
		ORDER BY sk.sort_order ASC
	`, accountID, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []PlayerSkillEntry{}
	for rows.Next() {
		var e PlayerSkillEntry
		if err := rows.Scan(&e.AccountID, &e.PersistenceGroupID, &e.SkillID, &e.Level, &e.Experience, &e.Rank, &e.Slug, &e.DisplayName, &e.IsAggregate); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
