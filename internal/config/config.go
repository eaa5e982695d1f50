package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the wingman service.
// Environment variables are parsed from the WINGMAN_ prefix,
// e.g. WINGMAN_HTTP_PORT, WINGMAN_POSTGRES_DSN.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/wingman.db"`

	// Local game dataset (CSV)
	DatasetPath string `envconfig:"DATASET_PATH" default:"data/video_games.csv"`

	// Twitch / IGDB upstream
	TwitchClientID     string `envconfig:"TWITCH_CLIENT_ID" default:""`
	TwitchClientSecret string `envconfig:"TWITCH_CLIENT_SECRET" default:""`
	TwitchTokenURL     string `envconfig:"TWITCH_TOKEN_URL" default:"https://id.twitch.tv/oauth2/token"`
	TwitchRedirectURI  string `envconfig:"TWITCH_REDIRECT_URI" default:""`
	TwitchAPIURL       string `envconfig:"TWITCH_API_URL" default:"https://api.twitch.tv/helix"`
	TwitchScopes       string `envconfig:"TWITCH_SCOPES" default:"user:read:email"`
	IGDBURL            string `envconfig:"IGDB_URL" default:"https://api.igdb.com/v4"`

	// RAWG upstream
	RAWGURL    string `envconfig:"RAWG_URL" default:"https://api.rawg.io/api"`
	RAWGAPIKey string `envconfig:"RAWG_API_KEY" default:""`

	// LLM fallback
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o"`

	// Waitlist sync worker
	WaitlistURL      string `envconfig:"WAITLIST_URL" default:""`
	WaitlistSchedule string `envconfig:"WAITLIST_SCHEDULE" default:"@hourly"`
}

// ResolveDefaults validates the storage driver selection.
func (c *Config) ResolveDefaults() error {
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("WINGMAN_SQLITE_PATH required for sqlite driver")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("WINGMAN_POSTGRES_DSN required for postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("WINGMAN", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewForTesting creates a config suitable for unit tests.
func NewForTesting() *Config {
	return &Config{
		HTTPPort:       8080,
		DBDriver:       "sqlite",
		SQLitePath:     ":memory:",
		DatasetPath:    "testdata/games.csv",
		TwitchTokenURL: "https://id.twitch.tv/oauth2/token",
		TwitchAPIURL:   "https://api.twitch.tv/helix",
		IGDBURL:        "https://api.igdb.com/v4",
		RAWGURL:        "https://api.rawg.io/api",
		OpenAIBaseURL:  "https://api.openai.com/v1",
		OpenAIModel:    "gpt-4o",
	}
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
