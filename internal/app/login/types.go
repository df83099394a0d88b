package login

import "time"

// IssueRequest is one launcher login attempt.
type IssueRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	WorldID       int32  `json:"world_id"`
	ClientVersion int32  `json:"client_version"`
	RequesterIP   string `json:"-"`
}

// IssueResult is the short-lived handoff credential returned to the
// launcher; the token value never appears in logs.
type IssueResult struct {
	Token     string    `json:"token"`
	WorldID   int32     `json:"world_id"`
	Address   string    `json:"address"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ConsumeResult is what a world learns when it redeems a token.
type ConsumeResult struct {
	AccountID     int64  `json:"account_id"`
	Username      string `json:"username"`
	IsAdmin       bool   `json:"is_admin"`
	IsMuted       bool   `json:"is_muted"`
	ClientVersion int32  `json:"client_version"`
	RequesterIP   string `json:"requester_ip"`
}
