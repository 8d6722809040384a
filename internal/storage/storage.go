// Package storage opens the repository backend selected by STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/config"
	"github.com/mamadbah2/inventory/internal/repository"
	"github.com/mamadbah2/inventory/internal/repository/memory"
	"github.com/mamadbah2/inventory/internal/repository/mongodb"
)

// Backend bundles the repositories of one driver.
type Backend struct {
	Units repository.UnitRepository
	Stock repository.StockRepository
	close func(context.Context) error
}

// Close releases the driver's connections.
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Open connects to the configured driver. Mongo indexes are ensured before returning.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		return &Backend{Units: memory.NewUnitStore(), Stock: memory.NewStockStore()}, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoDB, logger.Named("mongo"))
		if err != nil {
			return nil, err
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			_ = client.Close(ctx)
			return nil, err
		}
		return &Backend{Units: client.Units(), Stock: client.Stock(), close: client.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
