package lambda

import (
	"context"
	"sync"
	"time"

	"serverless-crud-api/internal/config"
	"serverless-crud-api/pkg/server"
)

// staleAfter is how long a warm container may sit idle before it is
// pinged again on reuse
const staleAfter = 5 * time.Minute

// ContainerFactory builds a container from configuration
type ContainerFactory func(ctx context.Context, cfg *config.Config) (*server.Container, error)

// ConnectionManager keeps one service container alive across warm Lambda
// invocations
type ConnectionManager struct {
	mu        sync.Mutex
	container *server.Container
	lastUsed  time.Time
	config    *config.Config
	factory   ContainerFactory
	loadCfg   func() (*config.Config, error)
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(server.NewContainer, config.GetOptimizedConfig)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a manager that builds containers with factory
// from the configuration returned by loadCfg
func NewConnectionManager(factory ContainerFactory, loadCfg func() (*config.Config, error)) *ConnectionManager {
	return &ConnectionManager{
		factory: factory,
		loadCfg: loadCfg,
	}
}

// Initialize sets the configuration used for the next container build
func (cm *ConnectionManager) Initialize(cfg *config.Config) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config = cfg
}

// GetContainer returns the cached container, building it on first use. A
// failed build is not cached, so the next invocation retries. An idle
// container whose database no longer answers is replaced.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if time.Since(cm.lastUsed) < staleAfter || cm.container.Ping(ctx) == nil {
			cm.lastUsed = time.Now()
			return cm.container, nil
		}
		cm.container.Logger.Warn("Cached database connection is stale, reconnecting")
		cm.container.Close()
		cm.container = nil
	}

	if cm.config == nil {
		cfg, err := cm.loadCfg()
		if err != nil {
			return nil, err
		}
		cm.config = cfg
	}

	container, err := cm.factory(ctx, cm.config)
	if err != nil {
		return nil, err
	}

	cm.container = container
	cm.lastUsed = time.Now()
	return container, nil
}

// IsHealthy reports whether a container is cached and was used recently
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.container != nil && time.Since(cm.lastUsed) < staleAfter
}

// Cleanup closes the cached container
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}
	err := cm.container.Close()
	cm.container = nil
	return err
}
