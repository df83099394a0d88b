package store

import "context"

func (s *Store) InsertLoginToken(ctx context.Context, t LoginToken) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO login_tokens (id, token, account_id, world_id, client_version, requester_ip, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID, t.Token, t.AccountID, t.WorldID, t.ClientVersion, t.RequesterIP, t.ExpiresAt)
	return err
}

const loginTokenColumns = `id, token, account_id, world_id, client_version, requester_ip, expires_at, used_at, created_at`

func (s *Store) GetLoginTokenByValue(ctx context.Context, token string) (*LoginToken, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+loginTokenColumns+` FROM login_tokens WHERE token = $1`, token)
	var t LoginToken
	if err := row.Scan(&t.ID, &t.Token, &t.AccountID, &t.WorldID, &t.ClientVersion, &t.RequesterIP, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

// MarkLoginTokenUsed stamps used_at exactly once. The used_at IS NULL
// predicate makes concurrent double-consumption lose: the second caller
// gets false.
func (s *Store) MarkLoginTokenUsed(ctx context.Context, id string) (bool, error) {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE login_tokens SET used_at = now() WHERE id = $1 AND used_at IS NULL
	`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteUnusedTokensForAccount drops the account's earlier still-live
// tokens so a re-issued login supersedes them.
func (s *Store) DeleteUnusedTokensForAccount(ctx context.Context, accountID int64) error {
	_, err := s.Pool.Exec(ctx, `
		DELETE FROM login_tokens WHERE account_id = $1 AND used_at IS NULL
	`, accountID)
	return err
}

// DeleteDeadTokens garbage-collects up to limit used or expired tokens.
// Bounded so opportunistic cleanup never turns into a full sweep.
func (s *Store) DeleteDeadTokens(ctx context.Context, limit int) (int64, error) {
	if limit <= 0 {
		limit = 100
	}
	tag, err := s.Pool.Exec(ctx, `
		DELETE FROM login_tokens
		WHERE id IN (
			SELECT id FROM login_tokens
			WHERE used_at IS NOT NULL OR expires_at < now()
			LIMIT $1
		)
	`, limit)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
