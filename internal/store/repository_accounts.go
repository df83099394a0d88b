package store

import "context"

func (s *Store) CreateAccount(ctx context.Context, username, email, passwordHash string) (int64, error) {
	var id int64
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO accounts (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, username, email, passwordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	return id, nil
}

const accountColumns = `id, username, email, password_hash, is_admin, is_perm_banned, is_muted, created_at`

func (s *Store) GetAccountByUsername(ctx context.Context, username string) (*Account, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)
	return scanAccount(row)
}

func (s *Store) GetAccountByID(ctx context.Context, id int64) (*Account, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*Account, error) {
	var a Account
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.IsAdmin, &a.IsPermBanned, &a.IsMuted, &a.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &a, nil
}

// UpdateAccountFlags applies moderation state written by the external admin
// surface. The core only reads these flags.
func (s *Store) UpdateAccountFlags(ctx context.Context, id int64, isAdmin, isPermBanned, isMuted bool) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE accounts SET is_admin = $2, is_perm_banned = $3, is_muted = $4 WHERE id = $1
	`, id, isAdmin, isPermBanned, isMuted)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
