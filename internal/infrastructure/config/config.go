package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	DataDir   string `env:"DATA_DIR,   default=./data"`
	StaticDir string `env:"STATIC_DIR, default=./public"`

	// PublicURL is the externally reachable base URL, used to build the
	// identity-provider return URL.
	PublicURL string `env:"PUBLIC_URL, required"`

	// SessionSecret signs the session cookie.
	SessionSecret string `env:"SESSION_SECRET, required"`

	// StatsAPIKey is the shared secret the game server presents when pushing
	// stat updates.
	StatsAPIKey string `env:"STATS_API_KEY, required"`

	// OwnerSteamID is granted the OWNER role on first sign-in.
	OwnerSteamID string `env:"OWNER_STEAM_ID, required"`

	Steam      SteamConfig
	GameServer GameServerConfig
}

type SteamConfig struct {
	APIKey string `env:"STEAM_API_KEY, required"`
}

type GameServerConfig struct {
	Host       string        `env:"GAME_SERVER_HOST, default=127.0.0.1"`
	Port       int           `env:"GAME_SERVER_PORT, default=7777"`
	Name       string        `env:"GAME_SERVER_NAME, default=Game Server"`
	MaxPlayers int           `env:"GAME_MAX_PLAYERS, default=25"`
	Timeout    time.Duration `env:"GAME_QUERY_TIMEOUT, default=3s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
