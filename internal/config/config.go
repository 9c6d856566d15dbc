// Package config loads service configuration from config.toml and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/spf13/viper"

	"erpreports/internal/infrastructure/storage/mssql"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	HTTP     HTTPConfig
	Log      LogConfig
	Reports  ReportsConfig
}

// AppConfig holds application-specific settings.
type AppConfig struct {
	Env    string
	Port   string
	APIKey string
}

// IsDevelopment reports whether the service runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// DatabaseConfig holds SQL Server connection settings.
type DatabaseConfig struct {
	Server          string
	Port            int
	User            string
	Password        string
	Name            string
	Encrypt         bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	QueryTimeout    time.Duration

	// Location is the server time zone. DATETIME values carry no zone, and
	// overdue checks compare them with the server's wall clock.
	Location *time.Location
}

// HTTPConfig holds HTTP server timeouts.
type HTTPConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string // debug, info, warn, error
}

// ReportsConfig holds report-wide settings.
type ReportsConfig struct {
	// HistoryStart is the earliest date purchases and supplier payments look at.
	HistoryStart time.Time
}

const dateLayout = "2006-01-02"

// Load reads configuration.
// Priority (highest to lowest):
// 1. Environment variables (PORT, API_KEY, DB_SERVER, DB_TIME_ZONE, ...)
// 2. config.toml in the working directory or /app
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// db.server -> DB_SERVER
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3001")
	v.SetDefault("api_key", "")
	v.SetDefault("app_env", "production")

	v.SetDefault("log.level", "info")

	v.SetDefault("db.server", "")
	v.SetDefault("db.port", 1433)
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.encrypt", false)
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", time.Hour)
	v.SetDefault("db.conn_max_idle_time", 30*time.Minute)
	v.SetDefault("db.query_timeout", 60*time.Second)
	v.SetDefault("db.time_zone", "America/Mexico_City")

	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 90*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 30*time.Second)

	v.SetDefault("history_start", "2023-01-01")
}

func fromViper(v *viper.Viper) (*Config, error) {
	historyStart, err := time.Parse(dateLayout, strings.TrimSpace(v.GetString("history_start")))
	if err != nil {
		return nil, fmt.Errorf("invalid history_start: %w", err)
	}

	loc, err := time.LoadLocation(strings.TrimSpace(v.GetString("db.time_zone")))
	if err != nil {
		return nil, fmt.Errorf("invalid db.time_zone: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Env:    v.GetString("app_env"),
			Port:   v.GetString("port"),
			APIKey: v.GetString("api_key"),
		},
		Database: DatabaseConfig{
			Server:          v.GetString("db.server"),
			Port:            v.GetInt("db.port"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Name:            v.GetString("db.name"),
			Encrypt:         v.GetBool("db.encrypt"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetDuration("db.conn_max_idle_time"),
			QueryTimeout:    v.GetDuration("db.query_timeout"),
			Location:        loc,
		},
		HTTP: HTTPConfig{
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
		Reports: ReportsConfig{
			HistoryStart: historyStart,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate refuses configurations the service cannot run with.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.App.APIKey) == "" {
		errs = append(errs, "API_KEY is required")
	}
	if strings.TrimSpace(c.Database.Server) == "" {
		errs = append(errs, "DB_SERVER is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, "DB_PORT must be between 1 and 65535")
	}
	if c.Database.QueryTimeout <= 0 {
		errs = append(errs, "DB_QUERY_TIMEOUT must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// PoolConfig maps the database settings onto the connection pool.
func (c DatabaseConfig) PoolConfig() mssql.PoolConfig {
	pc := mssql.DefaultPoolConfig()
	pc.Server = c.Server
	pc.Port = c.Port
	pc.User = c.User
	pc.Password = c.Password
	pc.Database = c.Name
	pc.Encrypt = c.Encrypt
	if c.MaxOpenConns > 0 {
		pc.MaxOpenConns = c.MaxOpenConns
	}
	if c.MaxIdleConns > 0 {
		pc.MaxIdleConns = c.MaxIdleConns
	}
	if c.ConnMaxLifetime > 0 {
		pc.ConnMaxLifetime = c.ConnMaxLifetime
	}
	if c.ConnMaxIdleTime > 0 {
		pc.ConnMaxIdleTime = c.ConnMaxIdleTime
	}
	return pc
}
