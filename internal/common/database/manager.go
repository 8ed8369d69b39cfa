// internal/common/database/manager.go
// Owns the member datastore pool and swaps it at the explicit reload boundary

package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/imadgeboyega/kiekky-matchmaker/internal/config"
)

// Provider hands out the current pool. Repositories resolve it per call so a reload takes effect
// for the next request without restarting the process.
type Provider interface {
	DB() *sqlx.DB
}

type staticProvider struct {
	db *sqlx.DB
}

func (s staticProvider) DB() *sqlx.DB { return s.db }

// Static wraps a fixed pool, mostly for tests
func Static(db *sqlx.DB) Provider {
	return staticProvider{db: db}
}

// OpenFunc opens and verifies a pool
type OpenFunc func(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error)

// Manager is the single owner of the database pool
type Manager struct {
	mu     sync.RWMutex
	db     *sqlx.DB
	cfg    config.DatabaseConfig
	open   OpenFunc
	logger *zap.Logger
}

// ErrClosed is returned after Close
var ErrClosed = errors.New("database manager closed")

// NewManager opens the initial pool. open may be nil to use NewPostgresDB.
func NewManager(ctx context.Context, cfg config.DatabaseConfig, open OpenFunc, logger *zap.Logger) (*Manager, error) {
	if open == nil {
		open = NewPostgresDB
	}

	db, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Manager{db: db, cfg: cfg, open: open, logger: logger}, nil
}

// DB returns the current pool
func (m *Manager) DB() *sqlx.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

// Config returns the settings of the current pool
func (m *Manager) Config() config.DatabaseConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// Reconfigure applies new settings. The new pool must answer a ping before it replaces the old one;
// on failure the current pool stays in service. Queries already running on the old pool finish
// before it is closed.
func (m *Manager) Reconfigure(ctx context.Context, cfg config.DatabaseConfig) error {
	m.mu.RLock()
	closed := m.db == nil
	same := m.cfg == cfg
	m.mu.RUnlock()

	if closed {
		return ErrClosed
	}
	if same {
		m.logger.Info("database configuration unchanged, keeping current pool")
		return nil
	}

	next, err := m.open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("reconfigure database: %w", err)
	}

	m.mu.Lock()
	if m.db == nil {
		m.mu.Unlock()
		next.Close()
		return ErrClosed
	}
	prev := m.db
	m.db = next
	m.cfg = cfg
	m.mu.Unlock()

	m.logger.Info("database pool reconfigured",
		zap.String("host", cfg.Redacted().Host),
		zap.String("database", cfg.Redacted().Database),
		zap.Int("max_open_conns", cfg.MaxOpenConns))

	if err := prev.Close(); err != nil {
		m.logger.Warn("failed to close previous database pool", zap.Error(err))
	}
	return nil
}

// Status is the health view served by /api/v1/db/status
type Status struct {
	Connected    bool                  `json:"connected"`
	LatencyMs    int64                 `json:"latencyMs"`
	Connection   config.ConnectionInfo `json:"connection"`
	OpenConns    int                   `json:"openConnections"`
	InUse        int                   `json:"inUse"`
	Idle         int                   `json:"idle"`
	MaxOpenConns int                   `json:"maxOpenConnections"`
	Error        string                `json:"error,omitempty"`
}

// Status pings the current pool. The error text is generic; details go to the log.
func (m *Manager) Status(ctx context.Context) Status {
	m.mu.RLock()
	db, cfg := m.db, m.cfg
	m.mu.RUnlock()

	status := Status{Connection: cfg.Redacted()}
	if db == nil {
		status.Error = "database not configured"
		return status
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()

	start := time.Now()
	err := db.PingContext(pingCtx)
	status.LatencyMs = time.Since(start).Milliseconds()

	stats := db.Stats()
	status.OpenConns = stats.OpenConnections
	status.InUse = stats.InUse
	status.Idle = stats.Idle
	status.MaxOpenConns = stats.MaxOpenConnections

	if err != nil {
		m.logger.Warn("database ping failed", zap.Error(err))
		status.Error = "database unreachable"
		return status
	}
	status.Connected = true
	return status
}

// Close releases the pool
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}
