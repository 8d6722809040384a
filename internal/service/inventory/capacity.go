package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/inventory/internal/domain/apperror"
	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/repository"
)

// Usage is the occupancy of one unit.
type Usage struct {
	Unit    models.Unit `json:"unit"`
	Used    float64     `json:"used"`
	Free    float64     `json:"free"`
	Records int         `json:"records"`
}

// Usage sums quantity*volume over every record stored in the unit.
func (s *Service) Usage(ctx context.Context, unitID string) (Usage, error) {
	unit, used, free, records, err := s.usage(ctx, unitID)
	if err != nil {
		return Usage{}, err
	}
	return Usage{
		Unit:    unit,
		Used:    used.InexactFloat64(),
		Free:    free.InexactFloat64(),
		Records: records,
	}, nil
}

// Fits reports whether quantity items of itemVolume each fit in the unit's free space.
// The answer is advisory; writes re-check it under the unit lock.
func (s *Service) Fits(ctx context.Context, unitID string, quantity int, itemVolume float64) (bool, error) {
	if quantity < 0 {
		return false, apperror.Invalid("quantity", "must not be negative")
	}
	if itemVolume < 0 {
		return false, apperror.Invalid("volume", "must not be negative")
	}

	_, _, free, _, err := s.usage(ctx, unitID)
	if err != nil {
		return false, err
	}
	return free.GreaterThanOrEqual(required(quantity, itemVolume)), nil
}

// checkFits returns DoesNotFit when the incoming volume exceeds free space.
// Callers hold the unit lock.
func (s *Service) checkFits(ctx context.Context, unitID string, quantity int, itemVolume float64) error {
	_, _, free, _, err := s.usage(ctx, unitID)
	if err != nil {
		return err
	}

	need := required(quantity, itemVolume)
	if free.LessThan(need) {
		return &apperror.DoesNotFitError{
			UnitID:   unitID,
			Required: need.InexactFloat64(),
			Free:     free.InexactFloat64(),
		}
	}
	return nil
}

func (s *Service) usage(ctx context.Context, unitID string) (models.Unit, decimal.Decimal, decimal.Decimal, int, error) {
	unit, err := s.units.GetUnit(ctx, unitID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Unit{}, decimal.Zero, decimal.Zero, 0, apperror.NotFound("unit", unitID)
	}
	if err != nil {
		return models.Unit{}, decimal.Zero, decimal.Zero, 0, fmt.Errorf("get unit %s: %w", unitID, err)
	}

	loads, err := s.stock.UnitLoad(ctx, unitID)
	if err != nil {
		return models.Unit{}, decimal.Zero, decimal.Zero, 0, fmt.Errorf("load unit %s: %w", unitID, err)
	}

	used := decimal.Zero
	for _, l := range loads {
		used = used.Add(required(l.Quantity, l.Volume))
	}
	free := decimal.NewFromFloat(unit.Volume).Sub(used)

	return unit, used, free, len(loads), nil
}

func required(quantity int, itemVolume float64) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(decimal.NewFromFloat(itemVolume))
}
