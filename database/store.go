package database

import (
	"context"
	"errors"
	"fmt"
	"lotbook/config"
	"lotbook/models"

	"go.uber.org/zap"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrInvalidID = errors.New("invalid project id")
)

// Store persists project records. Every method is a single call to the
// underlying store; implementations hold no per-request state.
type Store interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	InsertProject(ctx context.Context, p models.Project) (*models.InsertResult, error)
	// UpdateProject overwrites every tracked field of the record.
	UpdateProject(ctx context.Context, id string, p models.Project) (*models.UpdateResult, error)
	DeleteProject(ctx context.Context, id string) (*models.DeleteResult, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects to the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	var (
		store Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverMongo:
		store, err = ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection, logger)
	case config.DriverPostgres:
		store, err = Connect(ctx, cfg.DatabaseURL, logger)
	case config.DriverMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	return Instrument(store), nil
}

func invalidID(id string) error {
	return fmt.Errorf("%w: %q", ErrInvalidID, id)
}
