package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"ashfall/internal/app/hiscores"
	"ashfall/internal/app/login"
	"ashfall/internal/app/players"
	"ashfall/internal/app/presence"
	"ashfall/internal/app/worlds"
	"ashfall/internal/clientversion"
	"ashfall/internal/config"
	"ashfall/internal/logging"
	"ashfall/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

var (
	loginIssueTotal        = expvar.NewInt("login_issue_total")
	loginIssueRejected     = expvar.NewInt("login_issue_rejected_total")
	tokenConsumeTotal      = expvar.NewInt("token_consume_total")
	tokenConsumeRejected   = expvar.NewInt("token_consume_rejected_total")
	recomputeRequestsTotal = expvar.NewInt("recompute_requests_total")
	registerTotal          = expvar.NewInt("account_register_total")
)

type services struct {
	store    *store.Store
	worlds   *worlds.Service
	presence *presence.Service
	players  *players.Service
	hiscores *hiscores.Service
	login    *login.Service
}

func newServices(ctx context.Context, st *store.Store, cfg config.ServerConfig) (*services, error) {
	if err := st.EnsureDefaultSkills(ctx); err != nil {
		return nil, fmt.Errorf("ensure default skills: %w", err)
	}
	hs := hiscores.NewService(st, int32(cfg.HiscoresMinOverall))
	if err := hs.VerifyCatalog(ctx); err != nil {
		return nil, fmt.Errorf("verify skill catalog: %w", err)
	}
	ws := worlds.NewService(st, cfg.IsDevelopment(),
		time.Duration(cfg.WorldReadStaleSecs)*time.Second,
		time.Duration(cfg.PresenceStaleSecs)*time.Second)
	ps := presence.NewService(st, time.Duration(cfg.PresenceStaleSecs)*time.Second)
	pl := players.NewService(st, hs)

	var versions login.LatestVersioner
	if cfg.ManifestURL != "" {
		versions = clientversion.NewService(
			clientversion.NewManifestFetcher(cfg.ManifestURL),
			time.Duration(cfg.VersionCacheTTLSecs)*time.Second,
		)
	}
	ls := login.NewService(st, ws, ps, pl, versions, time.Duration(cfg.TokenTTLSecs)*time.Second)

	return &services{store: st, worlds: ws, presence: ps, players: pl, hiscores: hs, login: ls}, nil
}

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("load server config failed")
	}

	st, err := store.New(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}

	svc, err := newServices(context.Background(), st, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("service init failed")
	}
	svc.login.StartJanitor(context.Background(), time.Duration(cfg.CleanupIntervalSecs)*time.Second)

	r := newRouter(svc, cfg)
	logRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.Environment).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

func logRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
