package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// DefaultBaseURL is used to locate translation files when no base_url is
// configured.
const DefaultBaseURL = "http://homeassistant.local:8123"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Agent   AgentConfig   `mapstructure:"agent"`
	Logging LoggingConfig `mapstructure:"logging"`
	BaseURL string        `mapstructure:"base_url"`
}

type ServerConfig struct {
	Port    int    `mapstructure:"port"`
	DataDir string `mapstructure:"data_dir"`
}

type AgentConfig struct {
	ServerURL       string        `mapstructure:"server_url"`
	TranslationsDir string        `mapstructure:"translations_dir"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	WarmupDelay     time.Duration `mapstructure:"warmup_delay"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

func Load() (*Config, error) {
	var cfg Config

	// Set defaults
	viper.SetDefault("server.port", 8123)
	viper.SetDefault("base_url", DefaultBaseURL)
	viper.SetDefault("agent.server_url", "ws://localhost:8123/api/websocket")
	viper.SetDefault("agent.translations_dir", "translations")
	viper.SetDefault("agent.poll_interval", "60s")
	viper.SetDefault("agent.warmup_delay", "5s")
	viper.SetDefault("logging.level", "info")

	defaultDataDir := getDefaultDataDir()
	viper.SetDefault("server.data_dir", defaultDataDir)

	if err := viper.UnmarshalKey("server", &cfg.Server); err != nil {
		return nil, fmt.Errorf("unable to decode server config: %v", err)
	}

	if cfg.Server.DataDir == "" {
		cfg.Server.DataDir = defaultDataDir
		log.Debug("Config had empty data_dir, using default", "data_dir", cfg.Server.DataDir)
	}

	if err := viper.UnmarshalKey("agent", &cfg.Agent); err != nil {
		return nil, fmt.Errorf("unable to decode agent config: %v", err)
	}

	if err := viper.UnmarshalKey("logging", &cfg.Logging); err != nil {
		return nil, fmt.Errorf("unable to decode logging config: %v", err)
	}

	cfg.BaseURL = strings.TrimRight(viper.GetString("base_url"), "/")

	// Validate required fields
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("base_url is not a valid URL: %v", err)
	}

	if cfg.Agent.PollInterval <= 0 {
		return nil, fmt.Errorf("agent.poll_interval must be positive, got %s", cfg.Agent.PollInterval)
	}

	if cfg.Agent.WarmupDelay < 0 {
		return nil, fmt.Errorf("agent.warmup_delay must not be negative, got %s", cfg.Agent.WarmupDelay)
	}

	if !strings.HasPrefix(cfg.Agent.ServerURL, "ws://") && !strings.HasPrefix(cfg.Agent.ServerURL, "wss://") {
		return nil, fmt.Errorf("agent.server_url must be a ws:// or wss:// URL, got %q", cfg.Agent.ServerURL)
	}

	return &cfg, nil
}

// getDefaultDataDir returns a platform-appropriate default data directory
func getDefaultDataDir() string {
	if dir := os.Getenv("LANGSYNC_DATA_DIR"); dir != "" {
		return dir
	}

	if os.Getuid() == 0 {
		return "/var/lib/langsync"
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "share", "langsync")
	}

	// Last resort: current directory
	return "data"
}
