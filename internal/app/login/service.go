package login

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"ashfall/internal/app/players"
	"ashfall/internal/app/presence"
	"ashfall/internal/app/worlds"
	"ashfall/internal/store"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	minTokenTTL = 5 * time.Second
	maxTokenTTL = 10 * time.Minute

	tokenBytes = 32
)

// LatestVersioner reports the newest acceptable client version.
type LatestVersioner interface {
	Latest(ctx context.Context) (int32, error)
}

// Service runs the launcher-facing token issue pipeline and the
// world-facing consume side.
type Service struct {
	store    *store.Store
	worlds   *worlds.Service
	presence *presence.Service
	players  *players.Service
	versions LatestVersioner

	tokenTTL time.Duration
}

func NewService(st *store.Store, ws *worlds.Service, ps *presence.Service, pl *players.Service, versions LatestVersioner, tokenTTL time.Duration) *Service {
	return &Service{
		store:    st,
		worlds:   ws,
		presence: ps,
		players:  pl,
		versions: versions,
		tokenTTL: clampTokenTTL(tokenTTL),
	}
}

func clampTokenTTL(ttl time.Duration) time.Duration {
	if ttl < minTokenTTL {
		return minTokenTTL
	}
	if ttl > maxTokenTTL {
		return maxTokenTTL
	}
	return ttl
}

// Issue runs the full login pipeline: request shape, world resolution,
// client version, credentials, single-session check, state bootstrap,
// then token mint. Earlier unused tokens for the account are superseded.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || req.WorldID <= 0 || req.ClientVersion <= 0 {
		return nil, ErrInvalidRequest
	}

	world, err := s.worlds.ResolveForLogin(ctx, req.WorldID)
	if err != nil {
		if errors.Is(err, worlds.ErrWorldNotFound) {
			return nil, ErrWorldUnavailable
		}
		return nil, err
	}

	if s.versions != nil {
		latest, err := s.versions.Latest(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("client version check unavailable, allowing login")
		} else if req.ClientVersion != latest {
			return nil, &OutOfDateError{Latest: latest, Got: req.ClientVersion}
		}
	}

	acct, err := s.store.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBadUsername
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrBadPassword
	}
	if acct.IsPermBanned {
		return nil, ErrBadUsername
	}

	if err := s.presence.CheckAndReclaim(ctx, acct.ID); err != nil {
		return nil, err
	}

	if err := s.players.EnsureInitialized(ctx, acct.ID, world.PersistenceGroupID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteUnusedTokensForAccount(ctx, acct.ID); err != nil {
		return nil, err
	}
	if n, err := s.store.DeleteDeadTokens(ctx, 100); err != nil {
		log.Warn().Err(err).Msg("login token gc failed")
	} else if n > 0 {
		log.Debug().Int64("deleted", n).Msg("login token gc")
	}

	token, err := newTokenValue()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(s.tokenTTL)
	if err := s.store.InsertLoginToken(ctx, store.LoginToken{
		Token:         token,
		AccountID:     acct.ID,
		WorldID:       world.ID,
		ClientVersion: req.ClientVersion,
		RequesterIP:   req.RequesterIP,
		ExpiresAt:     expiresAt,
	}); err != nil {
		return nil, err
	}

	log.Info().
		Int64("account_id", acct.ID).
		Int32("world_id", world.ID).
		Msg("login token issued")
	return &IssueResult{
		Token:     token,
		WorldID:   world.ID,
		Address:   world.Address,
		ExpiresAt: expiresAt,
	}, nil
}

// Consume redeems a token for the world it was issued against. Each
// token redeems at most once; expiry is checked against the stored
// deadline, not the issuing TTL.
func (s *Service) Consume(ctx context.Context, token string, worldID int32) (*ConsumeResult, error) {
	if token == "" || worldID <= 0 {
		return nil, ErrInvalidRequest
	}
	t, err := s.store.GetLoginTokenByValue(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	if t.WorldID != worldID {
		return nil, ErrWorldMismatch
	}
	if time.Now().After(t.ExpiresAt) {
		return nil, ErrTokenExpired
	}
	used, err := s.store.MarkLoginTokenUsed(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if !used {
		return nil, ErrTokenUsed
	}
	acct, err := s.store.GetAccountByID(ctx, t.AccountID)
	if err != nil {
		return nil, err
	}
	return &ConsumeResult{
		AccountID:     acct.ID,
		Username:      acct.Username,
		IsAdmin:       acct.IsAdmin,
		IsMuted:       acct.IsMuted,
		ClientVersion: t.ClientVersion,
		RequesterIP:   t.RequesterIP,
	}, nil
}

// StartJanitor sweeps dead tokens on an interval until ctx is done.
func (s *Service) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n, err := s.store.DeleteDeadTokens(ctx, 500); err != nil {
					log.Warn().Err(err).Msg("token janitor sweep failed")
				} else if n > 0 {
					log.Debug().Int64("deleted", n).Msg("token janitor sweep")
				}
			}
		}
	}()
}

func newTokenValue() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
