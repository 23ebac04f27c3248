package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides: db.path is AIONBOARD_DB_PATH.
const EnvPrefix = "AIONBOARD"

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type UserConfig struct {
	ID    string `mapstructure:"id"`
	Email string `mapstructure:"email"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

type HTTPConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type CacheConfig struct {
	Size int `mapstructure:"size"`
}

type RetryConfig struct {
	MaxAttempts     int           `mapstructure:"max_attempts"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
}

// CatalogConfig points at YAML overrides. Empty paths use the embedded catalog.
type CatalogConfig struct {
	Questions  string `mapstructure:"questions"`
	Activities string `mapstructure:"activities"`
}

// Config holds all runtime settings.
type Config struct {
	DB      DBConfig      `mapstructure:"db"`
	User    UserConfig    `mapstructure:"user"`
	Log     LogConfig     `mapstructure:"log"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Catalog CatalogConfig `mapstructure:"catalog"`
}

// DefaultDir is ~/.aionboard, or the working directory when no home exists.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aionboard"
	}
	return filepath.Join(home, ".aionboard")
}

// Default returns a Config with sensible defaults for local use.
func Default() Config {
	return Config{
		DB:    DBConfig{Path: filepath.Join(DefaultDir(), "aionboard.db")},
		User:  UserConfig{ID: "local"},
		Log:   LogConfig{Mode: "dev"},
		HTTP:  HTTPConfig{Addr: ":8080", CORSOrigins: []string{"http://localhost:3000"}},
		Auth:  AuthConfig{TokenTTL: 24 * time.Hour},
		Cache: CacheConfig{Size: 256},
		Retry: RetryConfig{MaxAttempts: 3, InitialInterval: 200 * time.Millisecond},
	}
}

// Load layers defaults, an optional config file, and AIONBOARD_* environment
// variables. With an empty path it looks for aionboard.yaml in ~/.aionboard
// and the working directory; a missing file there is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("aionboard")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultDir())
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("db.path", d.DB.Path)
	v.SetDefault("user.id", d.User.ID)
	v.SetDefault("user.email", d.User.Email)
	v.SetDefault("log.mode", d.Log.Mode)
	v.SetDefault("http.addr", d.HTTP.Addr)
	v.SetDefault("http.cors_origins", d.HTTP.CORSOrigins)
	v.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	v.SetDefault("auth.token_ttl", d.Auth.TokenTTL)
	v.SetDefault("cache.size", d.Cache.Size)
	v.SetDefault("retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("retry.initial_interval", d.Retry.InitialInterval)
	v.SetDefault("catalog.questions", d.Catalog.Questions)
	v.SetDefault("catalog.activities", d.Catalog.Activities)
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	var errs []error
	if c.DB.Path == "" {
		errs = append(errs, errors.New("db.path is required"))
	}
	if c.User.ID == "" {
		errs = append(errs, errors.New("user.id is required"))
	}
	if c.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("retry.max_attempts must be at least 1, got %d", c.Retry.MaxAttempts))
	}
	if c.Retry.InitialInterval < 0 {
		errs = append(errs, errors.New("retry.initial_interval must not be negative"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
