package connector

import (
	"fmt"
	"sync"

	"github.com/ajitpratap0/lattice/pkg/errors"
	"github.com/ajitpratap0/lattice/pkg/logger"
	"go.uber.org/zap"
)

// Registry manages driver registration and connector instantiation. The set
// of drivers is closed at runtime: asking for an unregistered name is a
// configuration error, never a nil connector.
type Registry struct {
	drivers map[string]Factory
	mu      sync.RWMutex
	logger  *zap.Logger
}

// Factory is a function that creates connector instances for a driver.
type Factory func() (Connector, error)

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry creates a new driver registry
func NewRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]Factory),
		logger:  logger.Get().With(zap.String("component", "driver_registry")),
	}
}

// Register registers a driver factory
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[name]; exists {
		return errors.New(errors.ErrorTypeConfig, fmt.Sprintf("driver %s already registered", name))
	}

	r.drivers[name] = factory
	r.logger.Info("driver registered", zap.String("driver", name))
	return nil
}

// Create creates a connector instance for the named driver
func (r *Registry) Create(name string) (Connector, error) {
	r.mu.RLock()
	factory, exists := r.drivers[name]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.New(errors.ErrorTypeConfig, fmt.Sprintf("driver %s not registered", name))
	}

	conn, err := factory()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, fmt.Sprintf("failed to create connector for driver %s", name))
	}

	return conn, nil
}

// List returns the names of registered drivers
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		drivers = append(drivers, name)
	}
	return drivers
}

// Has checks if a driver is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.drivers[name]
	return exists
}

// Clear removes all registered drivers (mainly for testing)
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drivers = make(map[string]Factory)
}

// Global registry functions

// Register registers a driver in the global registry. Driver packages call
// this from init so a blank import is enough to make a driver available.
func Register(name string, factory Factory) error {
	return globalRegistry.Register(name, factory)
}

// Create creates a connector from the global registry
func Create(name string) (Connector, error) {
	return globalRegistry.Create(name)
}

// List returns registered drivers from the global registry
func List() []string {
	return globalRegistry.List()
}

// Has checks if a driver is registered in the global registry
func Has(name string) bool {
	return globalRegistry.Has(name)
}

// GetRegistry returns the global registry instance.
func GetRegistry() *Registry {
	return globalRegistry
}
