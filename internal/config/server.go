package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	// Shared secret presented by world processes on trusted endpoints.
	// World endpoints refuse to serve in production without it.
	WorldSharedSecret string `env:"WORLD_SHARED_SECRET"`
	OpsAPIKey         string `env:"OPS_API_KEY"`

	ManifestURL         string `env:"MANIFEST_URL" envDefault:"http://localhost:9000/manifest.json"`
	VersionCacheTTLSecs int    `env:"VERSION_CACHE_TTL_SECONDS" envDefault:"30"`
	TokenTTLSecs        int    `env:"LOGIN_TOKEN_TTL_SECONDS" envDefault:"30"`

	PresenceStaleSecs  int `env:"PRESENCE_STALE_SECONDS" envDefault:"120"`
	WorldReadStaleSecs int `env:"WORLD_READ_STALE_SECONDS" envDefault:"60"`

	HiscoresMinOverall int `env:"HISCORES_MIN_OVERALL" envDefault:"30"`
	LoginRatePerMinute int `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`

	CleanupIntervalSecs int `env:"CLEANUP_INTERVAL_SECONDS" envDefault:"60"`
}

func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

func (c ServerConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
