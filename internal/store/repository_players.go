package store

import "context"

// EnsurePlayerSkills seeds one row per non-aggregate catalog skill at its
// starting level, with the designated baseline skill (hitpoints) seeded
// higher. Existing rows are never touched.
func (s *Store) EnsurePlayerSkills(ctx context.Context, accountID int64, groupID, baselineSkillID int32, baselineLevel int32, baselineXP int64) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO player_skills (account_id, persistence_group_id, skill_id, level, experience)
		SELECT $1, $2, id,
		       CASE WHEN id = $3 THEN $4::int ELSE 1 END,
		       CASE WHEN id = $3 THEN $5::bigint ELSE 0 END
		FROM skills
		WHERE NOT is_aggregate
		ON CONFLICT (account_id, persistence_group_id, skill_id) DO NOTHING
	`, accountID, groupID, baselineSkillID, baselineLevel, baselineXP)
	return err
}

func (s *Store) EnsurePlayerLocation(ctx context.Context, accountID int64, groupID, x, y, plane int32) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO player_locations (account_id, persistence_group_id, x, y, plane)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id, persistence_group_id) DO NOTHING
	`, accountID, groupID, x, y, plane)
	return err
}

func (s *Store) EnsurePlayerEquipment(ctx context.Context, accountID int64, groupID int32) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO player_equipment (account_id, persistence_group_id)
		VALUES ($1, $2)
		ON CONFLICT (account_id, persistence_group_id) DO NOTHING
	`, accountID, groupID)
	return err
}

func (s *Store) EnsurePlayerAbilities(ctx context.Context, accountID int64, groupID int32) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO player_abilities (account_id, persistence_group_id)
		VALUES ($1, $2)
		ON CONFLICT (account_id, persistence_group_id) DO NOTHING
	`, accountID, groupID)
	return err
}

func (s *Store) EnsurePlayerSettings(ctx context.Context, accountID int64, groupID int32) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO player_settings (account_id, persistence_group_id)
		VALUES ($1, $2)
		ON CONFLICT (account_id, persistence_group_id) DO NOTHING
	`, accountID, groupID)
	return err
}

func (s *Store) EnsureInventoryItem(ctx context.Context, accountID int64, groupID, slot, itemID, quantity int32) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO player_inventory (account_id, persistence_group_id, slot, item_id, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id, persistence_group_id, slot) DO NOTHING
	`, accountID, groupID, slot, itemID, quantity)
	return err
}

func (s *Store) GetPlayerLocation(ctx context.Context, accountID int64, groupID int32) (*PlayerLocation, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT account_id, persistence_group_id, x, y, plane
		FROM player_locations
		WHERE account_id = $1 AND persistence_group_id = $2
	`, accountID, groupID)
	var l PlayerLocation
	if err := row.Scan(&l.AccountID, &l.PersistenceGroupID, &l.X, &l.Y, &l.Plane); err != nil {
		return nil, mapNotFound(err)
	}
	return &l, nil
}

func (s *Store) ListInventory(ctx context.Context, accountID int64, groupID int32) ([]InventoryItem, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT slot, item_id, quantity
		FROM player_inventory
		WHERE account_id = $1 AND persistence_group_id = $2
		ORDER BY slot ASC
	`, accountID, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []InventoryItem{}
	for rows.Next() {
		var it InventoryItem
		if err := rows.Scan(&it.Slot, &it.ItemID, &it.Quantity); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *Store) GetPlayerSkill(ctx context.Context, accountID int64, groupID, skillID int32) (*PlayerSkill, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT account_id, persistence_group_id, skill_id, level, experience, rank
		FROM player_skills
		WHERE account_id = $1 AND persistence_group_id = $2 AND skill_id = $3
	`, accountID, groupID, skillID)
	var ps PlayerSkill
	if err := row.Scan(&ps.AccountID, &ps.PersistenceGroupID, &ps.SkillID, &ps.Level, &ps.Experience, &ps.Rank); err != nil {
		return nil, mapNotFound(err)
	}
	return &ps, nil
}

// UpsertPlayerSkill applies a trusted world write. Aggregate-skill guards
// live in the service layer; the store is the raw write path.
func (s *Store) UpsertPlayerSkill(ctx context.Context, accountID int64, groupID, skillID, level int32, experience int64) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO player_skills (account_id, persistence_group_id, skill_id, level, experience)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id, persistence_group_id, skill_id) DO UPDATE
		SET level = EXCLUDED.level,
		    experience = EXCLUDED.experience
	`, accountID, groupID, skillID, level, experience)
	return err
}
