package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	// APIKeyEnv overrides [YouTubeConfig.APIKey] when set.
	APIKeyEnv = "YOUTUBE_API_KEY"

	DefaultMaxComments = 100
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	YouTube YouTubeConfig `toml:"youtube"`
	Export  ExportConfig  `toml:"export"`
	Logging LoggingConfig `toml:"logging"`
}

// YouTubeConfig contains YouTube Data API credentials and service selection.
type YouTubeConfig struct {
	APIKey         string `toml:"api_key"`
	ServiceName    string `toml:"service_name"`
	ServiceVersion string `toml:"service_version"`
	Endpoint       string `toml:"endpoint"`
}

// ExportConfig contains output artifact settings.
type ExportConfig struct {
	Output          string `toml:"output"`
	Format          string `toml:"format"`
	MaxComments     int    `toml:"max_comments"`
	IncludeComments bool   `toml:"include_comments"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays environment overrides onto the config.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if key := strings.TrimSpace(getenv(APIKeyEnv)); key != "" {
		c.YouTube.APIKey = key
	}
}

// Validate checks that the config can drive an export run.
func (c *Config) Validate() error {
	key := strings.TrimSpace(c.YouTube.APIKey)
	if key == "" || key == "your_youtube_api_key" {
		return fmt.Errorf("%w: youtube api_key is not set", ErrMissingCredentials)
	}
	if !strings.EqualFold(c.YouTube.ServiceName, "youtube") {
		return fmt.Errorf("%w: unsupported service %q", ErrInvalidConfig, c.YouTube.ServiceName)
	}
	if c.YouTube.ServiceVersion != "v3" {
		return fmt.Errorf("%w: unsupported service version %q", ErrInvalidConfig, c.YouTube.ServiceVersion)
	}
	if c.Export.MaxComments < 0 {
		return fmt.Errorf("%w: max_comments must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// CommentCap returns the per-video comment cap, falling back to [DefaultMaxComments].
func (c *Config) CommentCap() int {
	if c.Export.MaxComments <= 0 {
		return DefaultMaxComments
	}
	return c.Export.MaxComments
}
