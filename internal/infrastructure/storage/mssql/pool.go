// Package mssql provides SQL Server infrastructure components.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"erpreports/pkg/logger"
)

// PoolConfig holds connection pool configuration.
type PoolConfig struct {
	Server   string
	Port     int
	User     string
	Password string
	Database string
	Encrypt  bool

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// AppName is reported to the server for debugging sessions.
	AppName string
}

// DefaultPoolConfig returns sensible defaults for production.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Port:            1433,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
		AppName:         "erpreports",
	}
}

// DSN renders the sqlserver:// connection URL.
// The server certificate is trusted, matching the on-premise deployment.
func (c PoolConfig) DSN() string {
	q := url.Values{}
	q.Set("database", c.Database)
	q.Set("TrustServerCertificate", "true")
	if c.Encrypt {
		q.Set("encrypt", "true")
	} else {
		q.Set("encrypt", "disable")
	}
	if c.AppName != "" {
		q.Set("app name", c.AppName)
	}

	host := c.Server
	if c.Port > 0 {
		host += ":" + strconv.Itoa(c.Port)
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(c.User, c.Password),
		Host:     host,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Pool wraps *sql.DB to provide a clean interface.
type Pool struct {
	*sql.DB
}

// Close closes all connections in the pool.
func (p *Pool) Close() error {
	if p.DB != nil {
		return p.DB.Close()
	}
	return nil
}

// NewPool opens the pool and verifies connectivity.
func NewPool(ctx context.Context, cfg PoolConfig) (*Pool, error) {
	db, err := sql.Open("sqlserver", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Pool{DB: db}, nil
}

// PoolStats returns current pool statistics for metrics.
type PoolStats struct {
	OpenConns    int
	InUse        int
	Idle         int
	MaxOpenConns int
	WaitCount    int64
	WaitDuration time.Duration
}

// Stats extracts statistics from the pool.
func (p *Pool) Stats() PoolStats {
	stat := p.DB.Stats()
	return PoolStats{
		OpenConns:    stat.OpenConnections,
		InUse:        stat.InUse,
		Idle:         stat.Idle,
		MaxOpenConns: stat.MaxOpenConnections,
		WaitCount:    stat.WaitCount,
		WaitDuration: stat.WaitDuration,
	}
}

// LogStats logs pool statistics.
func (p *Pool) LogStats(ctx context.Context) {
	stats := p.Stats()
	logger.Info(ctx, "database pool stats",
		"open", stats.OpenConns,
		"in_use", stats.InUse,
		"idle", stats.Idle,
		"max", stats.MaxOpenConns,
		"wait_count", stats.WaitCount,
	)
}
