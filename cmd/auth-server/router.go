package main

import (
	"encoding/json"
	"expvar"
	"net/http"
	"time"

	"ashfall/internal/config"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

func newRouter(svc *services, cfg config.ServerConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	loginRate := cfg.LoginRatePerMinute
	if loginRate <= 0 {
		loginRate = 10
	}

	r.With(apiLogMiddleware()).Get("/healthz", healthHandler(svc))

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLogMiddleware())

		r.Route("/public", func(r chi.Router) {
			r.With(httprate.LimitByIP(loginRate, time.Minute)).
				Post("/login", loginIssueHandler(svc))
			r.Post("/register", registerHandler(svc))
			r.Get("/worlds", publicWorldsHandler(svc))
			r.Get("/hiscores/{skill}", hiscoresSkillHandler(svc))
			r.Get("/players/{username}/hiscores", playerHiscoresHandler(svc))
		})

		r.Route("/world", func(r chi.Router) {
			r.Use(worldAuthMiddleware(cfg))
			r.Post("/consume", consumeTokenHandler(svc))
			r.Post("/heartbeat", heartbeatHandler(svc))
			r.Post("/online", onlineHandler(svc))
			r.Post("/logout", logoutHandler(svc))
			r.Post("/skills", skillWriteHandler(svc))
			r.Post("/recompute", recomputeHandler(svc))
		})

		r.Route("/ops", func(r chi.Router) {
			r.Use(opsAuthMiddleware(cfg.OpsAPIKey))
			r.Post("/worlds", registerWorldHandler(svc))
			r.Get("/worlds", opsWorldsHandler(svc))
			r.Get("/online", opsOnlineListHandler(svc))
			r.Get("/online/count", opsOnlineCountHandler(svc))
			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})

	return r
}

func healthHandler(svc *services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.store.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}
