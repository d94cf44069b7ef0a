package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CorpusConfig locates the response corpus and controls how it is served.
type CorpusConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
	// Required makes a corpus that cannot be loaded fatal instead of serving
	// an empty corpus.
	Required bool `yaml:"required"`
	Watch    bool `yaml:"watch"`
}

// SearchConfig tunes query handling.
type SearchConfig struct {
	GroupSuffix string `yaml:"group_suffix"`
	// MaxResults caps all-responses results; 0 means unlimited.
	MaxResults   int    `yaml:"max_results"`
	DefaultQuery string `yaml:"default_query"`
}

// DiscordConfig configures the chat bot front end.
type DiscordConfig struct {
	TokenEnv         string `yaml:"token_env"`
	CommandPrefix    string `yaml:"command_prefix"`
	AudioTimeoutSecs int    `yaml:"audio_timeout_secs"`
	AttachAudio      bool   `yaml:"attach_audio"`
}

// LogConfig selects log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus  CorpusConfig  `yaml:"corpus"`
	Search  SearchConfig  `yaml:"search"`
	Discord DiscordConfig `yaml:"discord"`
	Log     LogConfig     `yaml:"log"`
}

// EnvResponsesFile overrides Corpus.Path when set.
const EnvResponsesFile = "RESPONSES_FILE"

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/dotaresponses/config.yaml.
// If neither exists, it writes defaults to ~/.config/dotaresponses/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks values that defaults cannot repair.
func (c *AppConfig) Validate() error {
	switch strings.ToLower(c.Corpus.Format) {
	case "", "json", "yaml", "yml", "msgpack", "mp", "mpk":
	default:
		return fmt.Errorf("config: corpus.format: unsupported value %q", c.Corpus.Format)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("config: search.max_results must not be negative")
	}
	return nil
}

// DiscordToken reads the bot token from the configured environment variable.
func (c *AppConfig) DiscordToken() (string, error) {
	token := strings.TrimSpace(os.Getenv(c.Discord.TokenEnv))
	if token == "" {
		return "", fmt.Errorf("config: %s is not set", c.Discord.TokenEnv)
	}
	return token, nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dotaresponses", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Corpus: CorpusConfig{Path: "responses.json"},
		Search: SearchConfig{GroupSuffix: "_responses", MaxResults: 50, DefaultQuery: "first blood"},
		Discord: DiscordConfig{
			TokenEnv:         "DISCORD_TOKEN",
			CommandPrefix:    "!",
			AudioTimeoutSecs: 15,
			AttachAudio:      true,
		},
		Log: LogConfig{Level: "info", Format: "auto"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "responses.json"
	}
	if cfg.Discord.TokenEnv == "" {
		cfg.Discord.TokenEnv = "DISCORD_TOKEN"
	}
	if cfg.Discord.CommandPrefix == "" {
		cfg.Discord.CommandPrefix = "!"
	}
	if cfg.Discord.AudioTimeoutSecs == 0 {
		cfg.Discord.AudioTimeoutSecs = 15
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "auto"
	}
}

func applyEnv(cfg *AppConfig) {
	if p := strings.TrimSpace(os.Getenv(EnvResponsesFile)); p != "" {
		cfg.Corpus.Path = p
	}
}
