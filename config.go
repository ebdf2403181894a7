package console

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPrompt = "esp> "
	DefaultBanner = "Type 'help' to get the list of commands.\n" +
		"Use UP/DOWN arrows to navigate through command history.\n" +
		"Press TAB when typing command name to auto-complete."
)

// Config controls a Session. The zero value is not usable, start from
// DefaultConfig.
type Config struct {
	Prompt         string `toml:"prompt" yaml:"prompt"`
	Banner         string `toml:"banner" yaml:"banner"`
	RegisterHelp   bool   `toml:"register_help" yaml:"register_help"`
	StoreHistory   bool   `toml:"store_history" yaml:"store_history"`
	HistoryMaxLen  int    `toml:"history_max_len" yaml:"history_max_len"`
	MaxLineLength  int    `toml:"max_line_length" yaml:"max_line_length"`
	MaxCmdlineArgs int    `toml:"max_cmdline_args" yaml:"max_cmdline_args"`
	MaxCommands    int    `toml:"max_commands" yaml:"max_commands"`
	Colors         bool   `toml:"colors" yaml:"colors"`

	Log     LogConfig     `toml:"log" yaml:"log"`
	History HistoryConfig `toml:"history" yaml:"history"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
	JSON  bool   `toml:"json" yaml:"json"`
}

// HistoryConfig selects and configures the history store. Only the fields of
// the selected backend are used.
type HistoryConfig struct {
	// Backend is one of "file", "memory", "sqlite", "postgres", "consul" or "s3".
	Backend string `toml:"backend" yaml:"backend"`

	// file, sqlite
	Path string `toml:"path" yaml:"path"`
	// postgres
	DSN string `toml:"dsn" yaml:"dsn"`
	// consul
	Address string `toml:"address" yaml:"address"`
	Token   string `toml:"token" yaml:"token"`
	// s3
	Endpoint  string `toml:"endpoint" yaml:"endpoint"`
	Bucket    string `toml:"bucket" yaml:"bucket"`
	AccessKey string `toml:"access_key" yaml:"access_key"`
	SecretKey string `toml:"secret_key" yaml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl" yaml:"use_ssl"`

	// Key names the history within a shared backend: the consul key, the
	// s3 object or the table row namespace.
	Key string `toml:"key" yaml:"key"`
}

func DefaultConfig() Config {
	return Config{
		Prompt:         DefaultPrompt,
		Banner:         DefaultBanner,
		RegisterHelp:   true,
		StoreHistory:   false,
		HistoryMaxLen:  100,
		MaxLineLength:  256,
		MaxCmdlineArgs: 32,
		MaxCommands:    MaxCommands,
		Colors:         true,
		Log: LogConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Backend: "file",
			Path:    "/data/history.txt",
			Key:     "console/history",
		},
	}
}

// LoadConfig reads a TOML or YAML file, chosen by extension, on top of
// DefaultConfig. Environment variables in the file are expanded.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	content := os.ExpandEnv(string(data))

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(content, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return cfg, fmt.Errorf("%w: unsupported config format %q", ErrInvalidArgument, ext)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the limits of the configuration.
func (c Config) Validate() error {
	if c.HistoryMaxLen < 0 {
		return fmt.Errorf("%w: history_max_len must not be negative", ErrInvalidArgument)
	}
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("%w: max_line_length must be positive", ErrInvalidArgument)
	}
	if c.MaxCmdlineArgs <= 0 {
		return fmt.Errorf("%w: max_cmdline_args must be positive", ErrInvalidArgument)
	}
	if c.MaxCommands <= 0 {
		return fmt.Errorf("%w: max_commands must be positive", ErrInvalidArgument)
	}
	return nil
}
