// Package manager owns the mapping from logical connection names to live
// store connections. A manager is constructed once with a driver name and a
// configuration tree; after that, Connection resolves names lazily and
// caches the resulting handles until Close.
package manager

import (
	"context"
	stderrors "errors"
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/lattice/pkg/config"
	"github.com/ajitpratap0/lattice/pkg/connector"
	"github.com/ajitpratap0/lattice/pkg/errors"
	"github.com/ajitpratap0/lattice/pkg/logger"
	"github.com/ajitpratap0/lattice/pkg/metrics"
)

// DefaultConnection is the name an empty lookup resolves to.
const DefaultConnection = "default"

// Manager resolves named logical connections and caches the handles. The
// configuration tree is read-only for the manager's lifetime; cached entries
// are never refreshed or evicted before Close.
type Manager struct {
	driver    string
	cfg       *config.Config
	connector connector.Connector
	logger    *zap.Logger

	mu          sync.RWMutex
	connections map[string]connector.Connection
}

// New builds a manager for the given driver and configuration tree using the
// global driver registry. An empty driver falls back to the tree's driver
// entry. An unregistered driver fails here, not on first use.
func New(driver string, cfg *config.Config) (*Manager, error) {
	return NewWithRegistry(driver, cfg, connector.GetRegistry())
}

// NewWithRegistry is New with an explicit driver registry. Tests use it to
// supply mock drivers without touching the global registry.
func NewWithRegistry(driver string, cfg *config.Config, registry *connector.Registry) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "configuration tree is required")
	}
	if driver == "" {
		driver = cfg.Driver
	}

	conn, err := registry.Create(driver)
	if err != nil {
		return nil, err
	}

	return &Manager{
		driver:    driver,
		cfg:       cfg,
		connector: conn,
		logger: logger.Get().With(
			zap.String("component", "connection_manager"),
			zap.String("driver", driver),
		),
		connections: make(map[string]connector.Connection),
	}, nil
}

// Driver returns the active driver name
func (m *Manager) Driver() string {
	return m.driver
}

// Connection returns the cached connection for name, resolving it on first
// access. An empty name means "default". Construction is at-most-once per
// name: concurrent first lookups share one resolution behind the write lock.
func (m *Manager) Connection(ctx context.Context, name string) (connector.Connection, error) {
	name = normalize(name)

	m.mu.RLock()
	conn, ok := m.connections[name]
	m.mu.RUnlock()
	if ok {
		return conn, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if conn, ok := m.connections[name]; ok {
		return conn, nil
	}

	conn, err := m.resolve(ctx, name)
	if err != nil {
		return nil, err
	}

	m.connections[name] = conn
	metrics.CachedConnections.WithLabelValues(m.driver).Set(float64(len(m.connections)))
	return conn, nil
}

// Resolve classifies name against the configuration tree and constructs a
// fresh connection. It never consults or populates the cache; callers that
// want caching use Connection.
func (m *Manager) Resolve(ctx context.Context, name string) (connector.Connection, error) {
	return m.resolve(ctx, normalize(name))
}

// Connections returns a snapshot of the registry. The snapshot does not
// reflect resolutions that happen after it is taken.
func (m *Manager) Connections() map[string]connector.Connection {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]connector.Connection, len(m.connections))
	for name, conn := range m.connections {
		snapshot[name] = conn
	}
	return snapshot
}

// Close closes every cached connection and empties the registry.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for name, conn := range m.connections {
		if err := conn.Close(); err != nil {
			m.logger.Warn("failed to close connection",
				zap.String("connection", name), zap.Error(err))
			errs = append(errs, err)
		}
	}

	m.connections = make(map[string]connector.Connection)
	metrics.CachedConnections.WithLabelValues(m.driver).Set(0)
	return stderrors.Join(errs...)
}

func normalize(name string) string {
	if name == "" {
		return DefaultConnection
	}
	return name
}
