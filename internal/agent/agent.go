package agent

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"
	config "github.com/mwantia/switchcraft/internal/config/server"
	"github.com/mwantia/switchcraft/pkg/catalog"
	"github.com/mwantia/switchcraft/pkg/db/store"
	"github.com/mwantia/switchcraft/pkg/log"
)

// Agent owns the services one CLI invocation works with: the logger,
// the configured store and the catalog repository on top of it.
type Agent struct {
	mutex sync.RWMutex

	cfg     *config.BaseServerConfig
	sc      *container.ServiceContainer
	log     log.LoggerService
	store   store.Store
	catalog *catalog.Repository
}

func NewAgent(cfg *config.BaseServerConfig) *Agent {
	return &Agent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService(cfg.Log.Name, cfg.Log),
	}
}

// NewAgentWithLogger is used when the caller already owns a logger.
func NewAgentWithLogger(cfg *config.BaseServerConfig, logger log.LoggerService) *Agent {
	return &Agent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: logger,
	}
}

func (a *Agent) setupServices() error {
	errs := container.Errors{}

	a.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](a.sc,
		container.With[log.LoggerService](),
		container.WithInstance(a.log)))

	return errs.Errors()
}

// Open connects and migrates the store and seeds missing collections.
func (a *Agent) Open(ctx context.Context) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.catalog != nil {
		return nil
	}

	if err := a.setupServices(); err != nil {
		return fmt.Errorf("failed to register services: %w", err)
	}

	s, err := store.NewStore(a.cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	a.log.Debug("Connecting to '%s' store...", a.cfg.Store.Type)
	if err := s.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect store: %w", err)
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return fmt.Errorf("failed to migrate store: %w", err)
	}

	repo := catalog.NewRepository(s, a.Logger().Named("catalog"))
	if err := repo.Init(ctx); err != nil {
		s.Close()
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}

	a.store = s
	a.catalog = repo
	return nil
}

func (a *Agent) Catalog() *catalog.Repository {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.catalog
}

func (a *Agent) Store() store.Store {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	return a.store
}

// Logger returns the registered logger service, falling back to the
// agent's own logger before Open.
func (a *Agent) Logger() log.LoggerService {
	ok, resolved := a.sc.ResolveByType(context.Background(), reflect.TypeOf((*log.LoggerService)(nil)).Elem())
	if ok {
		if logger, ok := resolved.(log.LoggerService); ok {
			return logger
		}
	}
	return a.log
}

// Close releases the store and every registered service within the
// configured shutdown timeout.
func (a *Agent) Close() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	timeout, err := time.ParseDuration(a.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("Failed to close store: %v", err)
		}
		a.store = nil
		a.catalog = nil
	}

	if err := a.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	if closer, ok := a.log.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
