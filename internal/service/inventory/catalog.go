package inventory

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/apperror"
	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/repository"
)

// GetByID returns the record for id in unitID. Without a unit the record with
// the lowest unit_id wins, so repeated lookups are stable.
func (s *Service) GetByID(ctx context.Context, id, unitID string) (models.StockRecord, error) {
	if unitID != "" {
		if _, err := s.requireUnit(ctx, unitID); err != nil {
			return models.StockRecord{}, err
		}
	}

	record, err := s.find(ctx, id, unitID)
	if err != nil {
		return models.StockRecord{}, err
	}

	if unit, err := s.units.GetUnit(ctx, record.UnitID); err == nil {
		record.UnitName = unit.Name
	} else if !errors.Is(err, repository.ErrNotFound) {
		return models.StockRecord{}, fmt.Errorf("get unit %s: %w", record.UnitID, err)
	}
	return record, nil
}

// ListInUnit returns every record stored in an existing unit.
func (s *Service) ListInUnit(ctx context.Context, unitID string) ([]models.StockRecord, error) {
	unit, err := s.requireUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	records, err := s.stock.Find(ctx, repository.StockFilter{UnitID: unitID}, repository.Sort{})
	if err != nil {
		return nil, fmt.Errorf("list unit %s: %w", unitID, err)
	}
	for i := range records {
		records[i].UnitName = unit.Name
	}
	return records, nil
}

// List returns every record across all units.
func (s *Service) List(ctx context.Context) ([]models.StockRecord, error) {
	records, err := s.stock.Find(ctx, repository.StockFilter{}, repository.Sort{})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return s.withUnitNames(ctx, records)
}

// Insert stores the draft in draft.UnitID, or in every unit when it is empty.
func (s *Service) Insert(ctx context.Context, draft models.ProductDraft) ([]models.StockRecord, error) {
	if draft.UnitID == "" {
		return s.InsertIntoAllUnits(ctx, draft)
	}
	record, err := s.InsertIntoUnit(ctx, draft)
	if err != nil {
		return nil, err
	}
	return []models.StockRecord{record}, nil
}

// InsertIntoUnit stores one record after checking it fits. The check and the
// write run under the unit lock.
func (s *Service) InsertIntoUnit(ctx context.Context, draft models.ProductDraft) (models.StockRecord, error) {
	if draft.UnitID == "" {
		return models.StockRecord{}, apperror.Invalid("unit_id", "is required")
	}
	record, err := recordFromDraft(draft, true)
	if err != nil {
		return models.StockRecord{}, err
	}

	err = s.withUnitLock(ctx, record.UnitID, func() error {
		if err := s.checkFits(ctx, record.UnitID, record.Quantity, record.Volume); err != nil {
			return err
		}
		if err := s.stock.Insert(ctx, record); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return &apperror.DuplicateError{Entity: "product", ID: record.ID, UnitID: record.UnitID}
			}
			return fmt.Errorf("insert product: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("insert rejected", zap.String("product_id", record.ID), zap.String("unit_id", record.UnitID), zap.Error(err))
		return models.StockRecord{}, err
	}

	s.logger.Info("product inserted",
		zap.String("product_id", record.ID),
		zap.String("unit_id", record.UnitID),
		zap.Int("quantity", record.Quantity),
	)
	return record, nil
}

// InsertIntoAllUnits replicates the product into every registered unit with
// empty stock. Every copy shares one id; either all copies are stored or none.
func (s *Service) InsertIntoAllUnits(ctx context.Context, draft models.ProductDraft) ([]models.StockRecord, error) {
	draft.UnitID = ""
	template, err := recordFromDraft(draft, false)
	if err != nil {
		return nil, err
	}

	unitIDs, err := s.units.UnitIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unit ids: %w", err)
	}
	if len(unitIDs) == 0 {
		return nil, apperror.NotFound("unit", "*")
	}

	records := make([]models.StockRecord, 0, len(unitIDs))
	for _, unitID := range unitIDs {
		rec := template
		rec.UnitID = unitID
		records = append(records, rec)
	}

	if err := s.stock.InsertMany(ctx, records); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &apperror.DuplicateError{Entity: "product", ID: template.ID}
		}
		return nil, fmt.Errorf("insert product into all units: %w", err)
	}

	s.logger.Info("product replicated", zap.String("product_id", template.ID), zap.Int("units", len(records)))
	return s.withUnitNames(ctx, records)
}

func (s *Service) requireUnit(ctx context.Context, unitID string) (models.Unit, error) {
	unit, err := s.units.GetUnit(ctx, unitID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Unit{}, apperror.NotFound("unit", unitID)
	}
	if err != nil {
		return models.Unit{}, fmt.Errorf("get unit %s: %w", unitID, err)
	}
	return unit, nil
}

func (s *Service) find(ctx context.Context, id, unitID string) (models.StockRecord, error) {
	record, err := s.stock.FindOne(ctx, id, unitID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.StockRecord{}, &apperror.NotFoundError{Entity: "product", ID: id, UnitID: unitID}
	}
	if err != nil {
		return models.StockRecord{}, fmt.Errorf("find product %s: %w", id, err)
	}
	return record, nil
}
