package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultQuestsPath is where BetterQuesting keeps the quest database,
// relative to a Minecraft instance directory.
const DefaultQuestsPath = "config/betterquesting/DefaultQuests.json"

// Config holds the file locations questkeys reads.
type Config struct {
	Quests string `yaml:"quests" toml:"quests"` // QUESTKEYS_QUESTS
	Lang   string `yaml:"lang" toml:"lang"`     // QUESTKEYS_LANG (optional .lang file)
	Player string `yaml:"player" toml:"player"` // QUESTKEYS_PLAYER (optional progress file)
	Strict bool   `yaml:"strict" toml:"strict"` // QUESTKEYS_STRICT
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Quests: DefaultQuestsPath}
}

// GetConfigPath returns the default config file location under the user's
// config directory.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "questkeys", "config.yaml"), nil
}

// Load builds the configuration from defaults, the config file and the
// environment, in that order. An empty path means the default location,
// which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := GetConfigPath()
		if err != nil {
			slog.Debug("no user config dir", "err", err)
		}
		path = p
	}

	if path != "" {
		err := LoadFile(path, &cfg)
		switch {
		case err == nil:
			slog.Debug("config loaded", "path", path)
		case !explicit && errors.Is(err, fs.ErrNotExist):
			slog.Debug("no config file", "path", path)
		default:
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile decodes a YAML or TOML file into cfg, picking the format by
// extension. Fields missing from the file keep their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to parse config TOML %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config YAML %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Quests = envOrDefault("QUESTKEYS_QUESTS", cfg.Quests)
	cfg.Lang = envOrDefault("QUESTKEYS_LANG", cfg.Lang)
	cfg.Player = envOrDefault("QUESTKEYS_PLAYER", cfg.Player)

	if s := os.Getenv("QUESTKEYS_STRICT"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("QUESTKEYS_STRICT: %w", err)
		}
		cfg.Strict = b
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
