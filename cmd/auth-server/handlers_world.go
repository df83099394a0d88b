package main

import (
	"errors"
	"net/http"

	"ashfall/internal/app/hiscores"
	"ashfall/internal/app/login"
	"ashfall/internal/app/presence"
	"ashfall/internal/app/worlds"

	"github.com/rs/zerolog/log"
)

func consumeTokenHandler(svc *services) http.HandlerFunc {
	type consumeRequest struct {
		Token   string `json:"token"`
		WorldID int32  `json:"world_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req consumeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		tokenConsumeTotal.Add(1)
		result, err := svc.login.Consume(r.Context(), req.Token, req.WorldID)
		if err != nil {
			tokenConsumeRejected.Add(1)
			switch {
			case errors.Is(err, login.ErrInvalidRequest):
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			case errors.Is(err, login.ErrTokenNotFound):
				writeHTTPError(w, http.StatusNotFound, "token_not_found")
			case errors.Is(err, login.ErrWorldMismatch):
				writeHTTPError(w, http.StatusForbidden, "world_mismatch")
			case errors.Is(err, login.ErrTokenExpired):
				writeHTTPError(w, http.StatusGone, "token_expired")
			case errors.Is(err, login.ErrTokenUsed):
				writeHTTPError(w, http.StatusConflict, "token_used")
			default:
				log.Error().Err(err).Msg("token consume failed")
				writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func heartbeatHandler(svc *services) http.HandlerFunc {
	type heartbeatRequest struct {
		WorldID int32 `json:"world_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req heartbeatRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		at, err := svc.worlds.Heartbeat(r.Context(), req.WorldID)
		if err != nil {
			switch {
			case errors.Is(err, worlds.ErrInvalidRequest):
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			case errors.Is(err, worlds.ErrWorldNotFound):
				writeHTTPError(w, http.StatusNotFound, "world_not_found")
			default:
				writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"world_id": req.WorldID, "heartbeat_at": at})
	}
}

func onlineHandler(svc *services) http.HandlerFunc {
	type onlineRequest struct {
		AccountID int64  `json:"account_id"`
		Username  string `json:"username"`
		WorldID   int32  `json:"world_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req onlineRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := svc.presence.RecordOnline(r.Context(), req.AccountID, req.Username, req.WorldID); err != nil {
			if errors.Is(err, presence.ErrInvalidRequest) {
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			log.Error().Err(err).Int64("account_id", req.AccountID).Msg("record online failed")
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func logoutHandler(svc *services) http.HandlerFunc {
	type logoutRequest struct {
		AccountID int64 `json:"account_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req logoutRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := svc.presence.Logout(r.Context(), req.AccountID); err != nil {
			if errors.Is(err, presence.ErrInvalidRequest) {
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func skillWriteHandler(svc *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req hiscores.SkillWriteRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := svc.hiscores.ApplySkillWrites(r.Context(), req); err != nil {
			switch {
			case errors.Is(err, hiscores.ErrAggregateWrite):
				writeHTTPError(w, http.StatusForbidden, "aggregate_skill_readonly")
			case errors.Is(err, hiscores.ErrInvalidRequest):
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			default:
				log.Error().Err(err).Int64("account_id", req.AccountID).Msg("skill write failed")
				writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func recomputeHandler(svc *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req hiscores.RecomputeRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		recomputeRequestsTotal.Add(1)
		if err := svc.hiscores.RecomputeTouched(r.Context(), req); err != nil {
			if errors.Is(err, hiscores.ErrInvalidRequest) {
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			log.Error().Err(err).Int32("persistence_group_id", req.PersistenceGroupID).Msg("recompute failed")
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}
