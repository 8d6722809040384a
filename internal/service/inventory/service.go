// Package inventory implements the stock engine: capacity checks, inserts,
// sales, purchases and catalog search over per-unit stock records.
package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/lock"
	"github.com/mamadbah2/inventory/internal/repository"
)

// Service coordinates the unit and stock repositories. Writes that add volume
// to a unit hold that unit's lock across the capacity check and the write.
type Service struct {
	units  repository.UnitRepository
	stock  repository.StockRepository
	locker lock.Locker
	logger *zap.Logger
}

// NewService wires the engine. A nil locker falls back to an in-process lock.
func NewService(units repository.UnitRepository, stock repository.StockRepository, locker lock.Locker, logger *zap.Logger) *Service {
	if locker == nil {
		locker = lock.NewLocal()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{units: units, stock: stock, locker: locker, logger: logger}
}

func (s *Service) withUnitLock(ctx context.Context, unitID string, fn func() error) error {
	release, err := s.locker.Lock(ctx, "unit:"+unitID)
	if err != nil {
		return fmt.Errorf("lock unit %s: %w", unitID, err)
	}
	defer release()
	return fn()
}

// unitNames maps unit ids to names for read-time joins.
func (s *Service) unitNames(ctx context.Context) (map[string]string, error) {
	units, err := s.units.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	names := make(map[string]string, len(units))
	for _, u := range units {
		names[u.ID] = u.Name
	}
	return names, nil
}

func (s *Service) withUnitNames(ctx context.Context, records []models.StockRecord) ([]models.StockRecord, error) {
	if len(records) == 0 {
		return records, nil
	}
	names, err := s.unitNames(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		records[i].UnitName = names[records[i].UnitID]
	}
	return records, nil
}
