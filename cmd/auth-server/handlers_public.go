package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"ashfall/internal/app/hiscores"
	"ashfall/internal/app/login"
	"ashfall/internal/app/presence"
	"ashfall/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// loginIssueHandler speaks the launcher protocol: transport-level
// problems get real HTTP statuses, but every pipeline outcome is a 200
// with either a token or an error code so old launchers can parse it.
func loginIssueHandler(svc *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req login.IssueRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		req.RequesterIP = remoteIP(r)
		loginIssueTotal.Add(1)

		result, err := svc.login.Issue(r.Context(), req)
		if err != nil {
			loginIssueRejected.Add(1)
			var outOfDate *login.OutOfDateError
			switch {
			case errors.As(err, &outOfDate):
				writeJSON(w, http.StatusOK, map[string]any{
					"error":          "client_out_of_date",
					"latest_version": outOfDate.Latest,
					"got_version":    outOfDate.Got,
				})
			case errors.Is(err, login.ErrInvalidRequest),
				errors.Is(err, login.ErrBadUsername),
				errors.Is(err, login.ErrBadPassword),
				errors.Is(err, login.ErrWorldUnavailable),
				errors.Is(err, presence.ErrAlreadyOnline):
				writeJSON(w, http.StatusOK, map[string]any{"error": err.Error()})
			default:
				log.Error().Err(err).Msg("login issue failed")
				writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func registerHandler(svc *services) http.HandlerFunc {
	type registerRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if len(req.Username) < 3 || len(req.Username) > 12 || len(req.Password) < 6 {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		accountID, err := svc.store.CreateAccount(r.Context(), req.Username, req.Email, string(hash))
		if err != nil {
			if errors.Is(err, store.ErrConflict) {
				writeHTTPError(w, http.StatusConflict, "username_taken")
				return
			}
			log.Error().Err(err).Msg("create account failed")
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		if err := svc.players.EnsureInitializedForAllGroups(r.Context(), accountID); err != nil {
			log.Error().Err(err).Int64("account_id", accountID).Msg("bootstrap after register failed")
		}
		registerTotal.Add(1)
		writeJSON(w, http.StatusCreated, map[string]any{
			"account_id": accountID,
			"username":   req.Username,
		})
	}
}

func publicWorldsHandler(svc *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.worlds.List(r.Context())
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		out := []map[string]any{}
		for _, it := range items {
			if !it.IsActive || it.IsDevelopment {
				continue
			}
			out = append(out, map[string]any{
				"world_id":             it.ID,
				"persistence_group_id": it.PersistenceGroupID,
				"name":                 it.Name,
				"address":              it.Address,
				"tags":                 it.Tags,
				"online_count":         it.OnlineCount,
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": out})
	}
}

func hiscoresSkillHandler(svc *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := parsePagination(r)
		minLevel := 0
		if v := r.URL.Query().Get("min_level"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				minLevel = n
			}
		}
		page, err := svc.hiscores.SkillPage(r.Context(), chi.URLParam(r, "skill"), parseGroupID(r), minLevel, limit, offset)
		if err != nil {
			switch {
			case errors.Is(err, hiscores.ErrSkillNotFound):
				writeHTTPError(w, http.StatusNotFound, "skill_not_found")
			case errors.Is(err, hiscores.ErrInvalidRequest):
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			default:
				writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func playerHiscoresHandler(svc *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.hiscores.PlayerProfile(r.Context(), chi.URLParam(r, "username"), parseGroupID(r))
		if err != nil {
			switch {
			case errors.Is(err, hiscores.ErrPlayerNotFound):
				writeHTTPError(w, http.StatusNotFound, "player_not_found")
			case errors.Is(err, hiscores.ErrProfileHidden):
				writeHTTPError(w, http.StatusNotFound, "profile_hidden")
			case errors.Is(err, hiscores.ErrInvalidRequest):
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			default:
				writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func remoteIP(r *http.Request) string {
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return strings.Trim(host, "[]")
}
