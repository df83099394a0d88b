package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"ashfall/internal/app/worlds"
)

func registerWorldHandler(svc *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var d worlds.Descriptor
		if err := decodeJSON(r, &d); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := svc.worlds.Register(r.Context(), d); err != nil {
			if errors.Is(err, worlds.ErrInvalidRequest) {
				writeHTTPError(w, http.StatusBadRequest, "invalid_request")
				return
			}
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "world_id": d.ID})
	}
}

func opsWorldsHandler(svc *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.worlds.List(r.Context())
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	}
}

func opsOnlineCountHandler(svc *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := svc.presence.Count(r.Context())
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"online": n})
	}
}

func opsOnlineListHandler(svc *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := parsePagination(r)
		items, err := svc.presence.List(r.Context(), 24*time.Hour, limit, offset)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		out := make([]map[string]any, 0, len(items))
		for _, it := range items {
			entry := map[string]any{
				"username":  it.Username,
				"world_id":  it.WorldID,
				"last_seen": it.LastSeen,
			}
			if it.AccountID != nil {
				entry["account_id"] = *it.AccountID
			}
			out = append(out, entry)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":  out,
			"limit":  limit,
			"offset": offset,
		})
	}
}
