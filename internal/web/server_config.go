package web

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/rook-computer/framerelay/internal/validate"
)

const (
	EnvListenAddr     = "FRAMERELAY_LISTEN"
	EnvDevMode        = "FRAMERELAY_DEV"
	EnvStaticDir      = "FRAMERELAY_STATIC_DIR"
	EnvClientTemplate = "FRAMERELAY_CLIENT_TEMPLATE"
	EnvMaxFrameSize   = "FRAMERELAY_MAX_FRAME"
	EnvPublicURL      = "FRAMERELAY_PUBLIC_URL"
)

const (
	DefaultListenAddr     = ":8080"
	DefaultClientTemplate = "./client.lua"
)

// ServerConfig contains settings for running the relay.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool

	// StaticDir, when set, is served at "/" instead of the embedded UI.
	StaticDir string

	// ClientTemplatePath is read on every client download.
	ClientTemplatePath string

	// MaxFrameSize bounds accepted frame payloads, in characters.
	MaxFrameSize int

	// PublicURL is the externally reachable base URL, used for QR codes.
	// When empty it is derived from each request.
	PublicURL string
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:         DefaultListenAddr,
		ClientTemplatePath: DefaultClientTemplate,
		MaxFrameSize:       validate.DefaultMaxFrameSize,
	}
}

func DefaultServerConfigFromEnv() (ServerConfig, error) {
	return ServerConfigFromEnv(os.Getenv, DefaultServerConfig())
}

// ServerConfigFromEnv overlays environment values on defaults.
func ServerConfigFromEnv(getenv func(string) string, defaults ServerConfig) (ServerConfig, error) {
	cfg := defaults

	if v := getenv(EnvListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if raw := getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = parsed
	}
	if v := getenv(EnvStaticDir); v != "" {
		cfg.StaticDir = v
	}
	if v := getenv(EnvClientTemplate); v != "" {
		cfg.ClientTemplatePath = v
	}
	if raw := getenv(EnvMaxFrameSize); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be an integer (got %q): %w", EnvMaxFrameSize, raw, err)
		}
		cfg.MaxFrameSize = parsed
	}
	if v := getenv(EnvPublicURL); v != "" {
		cfg.PublicURL = v
	}

	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// Validate checks values that can also come from flags.
func (cfg *ServerConfig) Validate() error {
	if cfg.MaxFrameSize <= 0 {
		return fmt.Errorf("max frame size must be positive (got %d)", cfg.MaxFrameSize)
	}
	if cfg.ClientTemplatePath == "" {
		return fmt.Errorf("client template path is required")
	}
	if cfg.PublicURL != "" {
		u, err := url.Parse(cfg.PublicURL)
		if err != nil {
			return fmt.Errorf("public url %q: %w", cfg.PublicURL, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("public url %q must be an absolute http(s) url", cfg.PublicURL)
		}
		cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	}
	return nil
}
