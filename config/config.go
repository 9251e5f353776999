// Package config loads the MediDepot settings from an optional file on top of
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Database Database `mapstructure:"database"`
	Auth     Auth     `mapstructure:"auth"`
	Export   Export   `mapstructure:"export"`
	Log      Log      `mapstructure:"log"`
}

type Database struct {
	// Driver is "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	// Packaged moves the database into the per-user application-data folder.
	Packaged bool     `mapstructure:"packaged"`
	Postgres Postgres `mapstructure:"postgres"`
}

type Postgres struct {
	Port     uint32 `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

type Auth struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Export struct {
	Dir string `mapstructure:"dir"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load returns the defaults, overlaid with the file at path when path is set.
// The file type follows its extension (yaml, toml or json).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = DefaultExportDir()
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if c.Auth.Username == "" || c.Auth.Password == "" {
		return fmt.Errorf("auth.username and auth.password must be set")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "praxislager.db")
	v.SetDefault("database.packaged", false)
	v.SetDefault("database.postgres.port", 5433)
	v.SetDefault("database.postgres.username", "postgres")
	v.SetDefault("database.postgres.password", "postgres")
	v.SetDefault("database.postgres.database", "medidepot")
	v.SetDefault("auth.username", "demo")
	v.SetDefault("auth.password", "demo123")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "logfmt")
}

// DefaultExportDir is the user's desktop, or the home directory when there is
// no desktop folder. It falls back to the working directory if home is unknown.
func DefaultExportDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	desktop := filepath.Join(home, "Desktop")
	if info, err := os.Stat(desktop); err == nil && info.IsDir() {
		return desktop
	}
	return home
}
