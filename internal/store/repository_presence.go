package store

import (
	"context"
	"time"
)

// GetPresenceForAccount returns the account's presence entry together with
// the owning world's last heartbeat, so callers can judge staleness in one
// round trip.
func (s *Store) GetPresenceForAccount(ctx context.Context, accountID int64) (*PresenceEntry, *time.Time, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT p.id, p.account_id, p.username, p.world_id, p.last_seen, w.last_heartbeat
		FROM presence p
		JOIN worlds w ON w.id = p.world_id
		WHERE p.account_id = $1
	`, accountID)
	var e PresenceEntry
	var hb *time.Time
	if err := row.Scan(&e.ID, &e.AccountID, &e.Username, &e.WorldID, &e.LastSeen, &hb); err != nil {
		return nil, nil, mapNotFound(err)
	}
	return &e, hb, nil
}

// UpsertPresence records an account as online on a world. The unique
// constraint on account_id makes concurrent writers converge on one row
// instead of duplicating it.
func (s *Store) UpsertPresence(ctx context.Context, accountID int64, username string, worldID int32) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO presence (id, account_id, username, world_id, last_seen)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (account_id) DO UPDATE
		SET username = EXCLUDED.username,
		    world_id = EXCLUDED.world_id,
		    last_seen = now()
	`, NewID(), accountID, username, worldID)
	return err
}

// UpsertAnonymousPresence records a legacy, non-account-bound entry keyed
// by username only.
func (s *Store) UpsertAnonymousPresence(ctx context.Context, username string, worldID int32) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO presence (id, account_id, username, world_id, last_seen)
		VALUES ($1, NULL, $2, $3, now())
		ON CONFLICT (username) WHERE account_id IS NULL DO UPDATE
		SET world_id = EXCLUDED.world_id,
		    last_seen = now()
	`, NewID(), username, worldID)
	return err
}

func (s *Store) DeletePresenceByAccount(ctx context.Context, accountID int64) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM presence WHERE account_id = $1`, accountID)
	return err
}

func (s *Store) DeletePresenceByID(ctx context.Context, id string) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM presence WHERE id = $1`, id)
	return err
}

func (s *Store) CountPresence(ctx context.Context) (int, error) {
	var c int
	if err := s.Pool.QueryRow(ctx, `SELECT COUNT(1) FROM presence`).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

// ListPresence returns entries seen within the window, newest first.
func (s *Store) ListPresence(ctx context.Context, window time.Duration, limit, offset int) ([]PresenceEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	cutoff := time.Now().Add(-window)
	rows, err := s.Pool.Query(ctx, `
		SELECT id, account_id, username, world_id, last_seen
		FROM presence
		WHERE last_seen >= $1
		ORDER BY last_seen DESC
		LIMIT $2 OFFSET $3
	`, cutoff, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []PresenceEntry{}
	for rows.Next() {
		var e PresenceEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Username, &e.WorldID, &e.LastSeen); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
