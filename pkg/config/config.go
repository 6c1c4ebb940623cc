package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	// EnvPrefix is intentionally empty: every variable carries the full
	// SFSHOP_ prefix in its tag so grepping for a name finds the tag.
	EnvPrefix = ""
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	UI      UIConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SFSHOP_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"SFSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SFSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig holds the single remote boundary: the shop API base URL.
type APIConfig struct {
	BaseURL string        `envconfig:"SFSHOP_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"SFSHOP_API_TIMEOUT" default:"10s"`
}

func (a APIConfig) validate() error {
	parsed, err := url.Parse(strings.TrimSpace(a.BaseURL))
	if err != nil {
		return fmt.Errorf("invalid SFSHOP_API_BASE_URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("SFSHOP_API_BASE_URL must be http(s), got %q", a.BaseURL)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("SFSHOP_API_TIMEOUT must be positive")
	}
	return nil
}

type SessionConfig struct {
	// TokenPath is where the bearer token survives restarts, the desktop
	// equivalent of the browser's localStorage slot.
	TokenPath string `envconfig:"SFSHOP_SESSION_TOKEN_PATH" default:".sfshop/token"`
}

type UIConfig struct {
	NoticeTTL          time.Duration `envconfig:"SFSHOP_UI_NOTICE_TTL" default:"1500ms"`
	ConfirmClearWindow time.Duration `envconfig:"SFSHOP_UI_CONFIRM_CLEAR_WINDOW" default:"3s"`
}
