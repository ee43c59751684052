package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/cr-tools/internal/game"
)

const (
	// EnvConfigPath overrides the location of the configuration file.
	EnvConfigPath = "CR_CONFIG_PATH"

	// DotEnvFile is read from the working directory by Load, if present.
	DotEnvFile = ".env"
)

// Config represents the application configuration.
type Config struct {
	// General application settings
	App AppConfig `toml:"app"`

	// Card database settings
	Database DatabaseConfig `toml:"database"`

	// Plan export and chart settings
	Export ExportConfig `toml:"export"`

	// Collection file watcher settings
	Watch WatchConfig `toml:"watch"`
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool   `toml:"debug_mode" env:"CR_DEBUG"` // Enable debug logging
	Arena     string `toml:"arena" env:"CR_ARENA"`      // Arena used when none is stored
}

// DatabaseConfig contains card database settings.
type DatabaseConfig struct {
	Path        string `toml:"path" env:"CR_DB_PATH"`                 // Path to the SQLite file (empty = default)
	AutoMigrate bool   `toml:"auto_migrate" env:"CR_DB_AUTO_MIGRATE"` // Apply migrations on open
}

// ExportConfig contains export settings.
type ExportConfig struct {
	Format     string `toml:"format" env:"CR_EXPORT_FORMAT"`    // "csv" or "json"
	PrettyJSON bool   `toml:"pretty_json" env:"CR_PRETTY_JSON"` // Indent JSON output
	ChartFile  string `toml:"chart_file" env:"CR_CHART_FILE"`   // Output path for the schedule chart
}

// WatchConfig contains collection file watcher settings.
type WatchConfig struct {
	Debounce string `toml:"debounce" env:"CR_WATCH_DEBOUNCE"` // Delay before reloading (e.g., "250ms")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			DebugMode: false,
			Arena:     game.DefaultArena.String(),
		},
		Database: DatabaseConfig{
			Path:        "",
			AutoMigrate: true,
		},
		Export: ExportConfig{
			Format:     "csv",
			PrettyJSON: true,
			ChartFile:  "schedule.html",
		},
		Watch: WatchConfig{
			Debounce: "250ms",
		},
	}
}

// Dir returns the application data directory, creating it if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".cr-tools")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return dir, nil
}

// Path returns the path to the configuration file.
func Path() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}

	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns default config if file doesn't exist.
// Variables from DotEnvFile are added to the environment first; variables
// already set win.
func Load() (*Config, error) {
	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadDotEnv adds the variables in the dotenv file at path to the process
// environment without replacing existing ones. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// LoadFrom loads the configuration from path and applies environment overrides.
// Keys missing from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file, defaults plus environment
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	return config, nil
}

// Save saves the configuration to the default location.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo saves the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := game.ParseArena(c.App.Arena); err != nil {
		return fmt.Errorf("invalid arena: %w", err)
	}

	switch c.Export.Format {
	case "csv", "json":
	default:
		return fmt.Errorf("invalid export format %q: must be csv or json", c.Export.Format)
	}

	if d, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("invalid watch debounce %q: %w", c.Watch.Debounce, err)
	} else if d < 0 {
		return fmt.Errorf("watch debounce cannot be negative: %s", d)
	}

	return nil
}

// GetArena returns the configured arena.
func (c *Config) GetArena() (game.Arena, error) {
	return game.ParseArena(c.App.Arena)
}

// GetWatchDebounce returns the watcher debounce as a duration.
func (c *Config) GetWatchDebounce() (time.Duration, error) {
	return time.ParseDuration(c.Watch.Debounce)
}

// DatabasePath returns the configured database path, or the default
// location inside the application directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}

	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cards.db"), nil
}
