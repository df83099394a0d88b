package store

import (
	"context"
	"time"
)

// UpsertWorld registers or updates a world in place and stamps its
// heartbeat. The world's persistence group row is created on demand so
// trusted registration is a single call.
func (s *Store) UpsertWorld(ctx context.Context, w World) error {
	if _, err := s.Pool.Exec(ctx, `
		INSERT INTO persistence_groups (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, w.PersistenceGroupID); err != nil {
		return err
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO worlds (id, persistence_group_id, name, address, tags, is_active, is_development, last_heartbeat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO UPDATE
		SET persistence_group_id = EXCLUDED.persistence_group_id,
		    name = EXCLUDED.name,
		    address = EXCLUDED.address,
		    tags = EXCLUDED.tags,
		    is_active = EXCLUDED.is_active,
		    is_development = EXCLUDED.is_development,
		    last_heartbeat = now()
	`, w.ID, w.PersistenceGroupID, w.Name, w.Address, w.Tags, w.IsActive, w.IsDevelopment)
	return err
}

func (s *Store) TouchWorldHeartbeat(ctx context.Context, worldID int32) (time.Time, error) {
	var at time.Time
	err := s.Pool.QueryRow(ctx, `
		UPDATE worlds SET last_heartbeat = now() WHERE id = $1
		RETURNING last_heartbeat
	`, worldID).Scan(&at)
	if err != nil {
		return time.Time{}, mapNotFound(err)
	}
	return at, nil
}

const worldColumns = `id, persistence_group_id, name, address, tags, is_active, is_development, last_heartbeat, created_at`

func (s *Store) GetWorld(ctx context.Context, id int32) (*World, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+worldColumns+` FROM worlds WHERE id = $1`, id)
	var w World
	if err := row.Scan(&w.ID, &w.PersistenceGroupID, &w.Name, &w.Address, &w.Tags, &w.IsActive, &w.IsDevelopment, &w.LastHeartbeat, &w.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &w, nil
}

func (s *Store) ListWorlds(ctx context.Context) ([]WorldStatus, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT `+worldColumns+`,
		       (SELECT COUNT(1) FROM presence p WHERE p.world_id = worlds.id) AS online_count
		FROM worlds
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []WorldStatus{}
	for rows.Next() {
		var w WorldStatus
		if err := rows.Scan(&w.ID, &w.PersistenceGroupID, &w.Name, &w.Address, &w.Tags, &w.IsActive, &w.IsDevelopment, &w.LastHeartbeat, &w.CreatedAt, &w.OnlineCount); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) ListPersistenceGroupIDs(ctx context.Context) ([]int32, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id FROM persistence_groups ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []int32{}
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
