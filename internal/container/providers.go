package container

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/bill-review/internal/application/dispatcher"
	"github.com/garyjia/bill-review/internal/application/port"
	"github.com/garyjia/bill-review/internal/application/service"
	"github.com/garyjia/bill-review/internal/domain/event"
	"github.com/garyjia/bill-review/internal/export"
	"github.com/garyjia/bill-review/internal/infrastructure/external/billapi"
	"github.com/garyjia/bill-review/internal/infrastructure/persistence/repository"
	"github.com/garyjia/bill-review/internal/infrastructure/persistence/sqlite"
	"github.com/garyjia/bill-review/internal/infrastructure/storage"
	"github.com/garyjia/bill-review/internal/infrastructure/store"
	httpserver "github.com/garyjia/bill-review/internal/interfaces/http"
	"github.com/garyjia/bill-review/pkg/database"
)

// historySubscriber is the dispatcher subscription name of the history recorder
const historySubscriber = "bill-history"

// DatabaseBundle holds database-related components.
type DatabaseBundle struct {
	Conn           *database.DB
	TransactionMgr *sqlite.DB
}

// StoreBundle holds the bill store the services use.
// Proofs is set only in local mode, where the store API is served by this process.
type StoreBundle struct {
	Bills  port.BillStore
	Proofs httpserver.ProofStore
}

// ProvideDatabase opens the database and applies the embedded migrations.
func ProvideDatabase(ctx context.Context, cfg *DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	conn, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	if err := database.NewMigrator(conn, logger).Run(ctx, database.Migrations()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DatabaseBundle{
		Conn:           conn,
		TransactionMgr: sqlite.NewDB(conn.DB, logger),
	}, nil
}

// ProvideRepositories creates all repositories on the transaction manager.
func ProvideRepositories(db *sqlite.DB, logger *zap.Logger) (*RepositoryBundle, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &RepositoryBundle{
		BillRecord: repository.NewBillRecordRepository(db, logger),
		History:    repository.NewHistoryRepository(db, logger),
	}, nil
}

// ProvideStore creates the local sqlite store or the remote store client depending on mode.
func ProvideStore(cfg *Config, db *sqlite.DB, repos *RepositoryBundle, logger *zap.Logger) (*StoreBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	switch cfg.Store.Mode {
	case StoreModeLocal:
		if db == nil || repos == nil {
			return nil, fmt.Errorf("database and repositories are required")
		}
		files, err := storage.NewLocalFileStorage(cfg.Storage.ProofDir, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create proof storage: %w", err)
		}
		local := store.NewLocalStore(repos.BillRecord, files, db, cfg.Storage.PublicBaseURL, logger)
		return &StoreBundle{Bills: local, Proofs: local}, nil
	case StoreModeRemote:
		client := billapi.NewClient(cfg.Store.RemoteURL, cfg.Store.Timeout, logger)
		return &StoreBundle{Bills: client}, nil
	default:
		return nil, fmt.Errorf("unknown store mode %q", cfg.Store.Mode)
	}
}

// ProvideDispatcher creates the event dispatcher.
func ProvideDispatcher(logger *zap.Logger) (dispatcher.Dispatcher, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return dispatcher.NewDispatcher(
		dispatcher.WithLogger(&zapLoggerAdapter{logger: logger.Named("dispatcher")}),
	), nil
}

// ServiceDeps holds dependencies required for creating services.
type ServiceDeps struct {
	Store      port.BillStore
	Repos      *RepositoryBundle
	Dispatcher dispatcher.Dispatcher
	BatchLimit int
	Logger     *zap.Logger
}

// ProvideServices creates all application services and subscribes the history
// recorder to every bill event.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("bill store is required")
	}
	if deps.Repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if deps.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	serviceLogger := &zapLoggerAdapter{logger: deps.Logger}

	listing := service.NewListingService(deps.Store, serviceLogger)
	history := service.NewHistoryService(deps.Repos.History, serviceLogger)

	deps.Dispatcher.SubscribeAll(
		[]event.Type{event.TypeBillSubmitted, event.TypeBillAccepted, event.TypeBillRefused},
		historySubscriber,
		history.Record,
	)

	return &ServiceBundle{
		Submission: service.NewSubmissionService(deps.Store, deps.Dispatcher, serviceLogger),
		Listing:    listing,
		Review:     service.NewReviewService(deps.Store, listing, deps.Dispatcher, deps.BatchLimit, serviceLogger),
		History:    history,
	}, nil
}

// ProvideServer creates the HTTP server routing to the services.
func ProvideServer(cfg *ServerConfig, services *ServiceBundle, stores *StoreBundle, logger *zap.Logger) (*httpserver.Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("server config is required")
	}
	if services == nil {
		return nil, fmt.Errorf("services are required")
	}
	if stores == nil {
		return nil, fmt.Errorf("stores are required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	deps := httpserver.Dependencies{
		Submission: services.Submission,
		Listing:    services.Listing,
		Review:     services.Review,
		History:    services.History,
		Exporter:   export.NewReviewExporter(logger),
	}
	if stores.Proofs != nil {
		deps.Store = stores.Proofs
	}

	return httpserver.NewServer(httpserver.ServerConfig{
		Host:           cfg.Host,
		Port:           cfg.Port,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, deps, &zapLoggerAdapter{logger: logger.Named("http")}), nil
}
