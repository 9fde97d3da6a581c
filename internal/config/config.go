package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	DB       *DBConfig       `mapstructure:"db"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	SQLite   *SQLiteConfig   `mapstructure:"sqlite"`
	Contest  *ContestConfig  `mapstructure:"contest"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AdminEmail         string   `mapstructure:"admin_email"`
	AdminPasswordHash  string   `mapstructure:"admin_password_hash"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type DBConfig struct {
	Driver      string `mapstructure:"driver"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type ContestConfig struct {
	WinnerCount       int `mapstructure:"winner_count"`
	DistancePrecision int `mapstructure:"distance_precision"`
}

var (
	ErrMissingSigningKey = errors.New("api.jwt_signing_key is required")
	ErrUnknownDriver     = errors.New("db.driver must be postgres or sqlite")
)

// Load reads the YAML file at path. Every key can be overridden by an
// environment variable named after it, e.g. API_PORT or POSTGRES_HOST.
func Load(path string) (*AppConfig, error) {
	v := newViper(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	return decode(v)
}

// Watch reloads the file on change and hands the new config to onChange.
// Invalid edits are logged and ignored.
func Watch(path string, onChange func(*AppConfig)) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		zap.L().Warn("config watch disabled", zap.String("path", path), zap.Error(err))
		return
	}

	var mu sync.Mutex
	v.OnConfigChange(func(e fsnotify.Event) {
		mu.Lock()
		defer mu.Unlock()

		conf, err := decode(v)
		if err != nil {
			zap.L().Error("ignoring invalid config change", zap.String("file", e.Name), zap.Error(err))
			return
		}

		zap.L().Info("config reloaded", zap.String("file", e.Name), zap.String("op", e.Op.String()))
		onChange(conf)
	})
	v.WatchConfig()
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.allowed_cors_domains", []string{})
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("sqlite.path", "spotcontest.db")
	v.SetDefault("contest.winner_count", 3)
	v.SetDefault("contest.distance_precision", 6)

	// AutomaticEnv only applies to keys viper already knows about.
	for _, key := range []string{
		"api.base_url", "api.jwt_signing_key", "api.admin_email", "api.admin_password_hash",
		"postgres.host", "postgres.user", "postgres.password", "postgres.db",
	} {
		_ = v.BindEnv(key)
	}

	return v
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *AppConfig) validate() error {
	if c.API == nil || c.API.JWTSigningKey == "" {
		return ErrMissingSigningKey
	}

	if c.DB.Driver != DriverPostgres && c.DB.Driver != DriverSQLite {
		return ErrUnknownDriver
	}

	if c.Contest.WinnerCount <= 0 || c.Contest.WinnerCount > 3 {
		c.Contest.WinnerCount = 3
	}

	if c.Contest.DistancePrecision < 0 {
		c.Contest.DistancePrecision = 6
	}

	return nil
}
