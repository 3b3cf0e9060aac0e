// Package database provides connection management for the corpus database.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "modernc.org/sqlite"             // SQLite driver (pure Go)

	"github.com/dbsmedya/corpusquery/internal/config"
)

// Manager holds the connection to the corpus database.
type Manager struct {
	DB     *sql.DB
	config *config.CorpusConfig
}

// NewManager creates a new database manager from configuration.
func NewManager(cfg *config.CorpusConfig) *Manager {
	return &Manager{config: cfg}
}

// Connect establishes the corpus connection, retrying with exponential backoff.
func (m *Manager) Connect(ctx context.Context) error {
	var err error

	maxRetries := 3
	backoff := time.Second

	for i := 0; i < maxRetries; i++ {
		var db *sql.DB
		db, err = m.open()
		if err == nil {
			if pingErr := db.PingContext(ctx); pingErr == nil {
				m.DB = db
				return nil
			} else {
				db.Close()
				err = pingErr
			}
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return fmt.Errorf("failed to connect to corpus database after %d retries: %w", maxRetries, err)
}

// open creates the database handle and configures the pool.
func (m *Manager) open() (*sql.DB, error) {
	db, err := sql.Open(DriverName(m.config), BuildDSN(m.config))
	if err != nil {
		return nil, err
	}

	if m.config.MaxConnections > 0 {
		db.SetMaxOpenConns(m.config.MaxConnections)
	}
	if m.config.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(m.config.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(10 * time.Minute)

	return db, nil
}

// DriverName maps the configured driver to the registered sql driver name.
func DriverName(cfg *config.CorpusConfig) string {
	if cfg.Driver == "sqlite" {
		return "sqlite"
	}
	return "mysql"
}

// BuildDSN constructs the driver DSN from configuration.
func BuildDSN(cfg *config.CorpusConfig) string {
	if cfg.Driver == "sqlite" {
		return cfg.Path
	}

	// Format: user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)

	params := "?parseTime=true"
	switch cfg.TLS {
	case "disable":
		params += "&tls=false"
	case "required":
		params += "&tls=true"
	case "preferred", "":
		params += "&tls=preferred"
	}

	return dsn + params
}

// Close closes the corpus connection.
func (m *Manager) Close() error {
	if m.DB == nil {
		return nil
	}
	if err := m.DB.Close(); err != nil {
		return fmt.Errorf("corpus close: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.DB == nil {
		return fmt.Errorf("not connected")
	}
	if err := m.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("corpus ping failed: %w", err)
	}
	return nil
}
