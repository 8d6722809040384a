package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/apperror"
	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/repository"
)

// Sell removes quantity items and books (selling_price - purchase_price) * quantity
// as gain. An empty unitID targets the record with the lowest unit_id.
func (s *Service) Sell(ctx context.Context, productID, unitID string, quantity int) (models.StockRecord, error) {
	if quantity < 0 {
		return models.StockRecord{}, &apperror.InsufficientQuantityError{ProductID: productID, UnitID: unitID, Requested: quantity}
	}

	record, err := s.find(ctx, productID, unitID)
	if err != nil {
		return models.StockRecord{}, err
	}
	return s.applySale(ctx, record, quantity, record.Profit(quantity))
}

// SellWithProfit is Sell with a caller-computed profit.
func (s *Service) SellWithProfit(ctx context.Context, productID, unitID string, quantity int, profit float64) (models.StockRecord, error) {
	if quantity < 0 {
		return models.StockRecord{}, &apperror.InsufficientQuantityError{ProductID: productID, UnitID: unitID, Requested: quantity}
	}

	record, err := s.find(ctx, productID, unitID)
	if err != nil {
		return models.StockRecord{}, err
	}
	return s.applySale(ctx, record, quantity, profit)
}

// applySale is one conditional update; a failed guard leaves the record untouched.
func (s *Service) applySale(ctx context.Context, record models.StockRecord, quantity int, profit float64) (models.StockRecord, error) {
	updated, err := s.stock.ApplySale(ctx, record.ID, record.UnitID, quantity, profit)
	if errors.Is(err, repository.ErrNoMatch) {
		s.logger.Debug("sale rejected",
			zap.String("product_id", record.ID),
			zap.String("unit_id", record.UnitID),
			zap.Int("requested", quantity),
		)
		return models.StockRecord{}, &apperror.InsufficientQuantityError{ProductID: record.ID, UnitID: record.UnitID, Requested: quantity}
	}
	if err != nil {
		return models.StockRecord{}, fmt.Errorf("sell product %s: %w", record.ID, err)
	}

	s.logger.Info("product sold",
		zap.String("product_id", updated.ID),
		zap.String("unit_id", updated.UnitID),
		zap.Int("quantity", quantity),
		zap.Float64("profit", profit),
	)
	return updated, nil
}

// Buy adds quantity items and books purchase_price * quantity as a negative
// gain. The capacity check and the update run under the unit lock.
func (s *Service) Buy(ctx context.Context, productID, unitID string, quantity int) (models.StockRecord, error) {
	if quantity < 0 {
		return models.StockRecord{}, apperror.Invalid("quantity", "must not be negative")
	}

	record, err := s.find(ctx, productID, unitID)
	if err != nil {
		return models.StockRecord{}, err
	}

	var updated models.StockRecord
	err = s.withUnitLock(ctx, record.UnitID, func() error {
		// Purchases are serialized by the lock and sales only shrink stock,
		// so the current quantity bounds the addition.
		current, err := s.find(ctx, record.ID, record.UnitID)
		if err != nil {
			return err
		}
		if quantity > math.MaxInt-current.Quantity {
			return apperror.Invalid("quantity", "overflows stock")
		}
		if err := s.checkFits(ctx, record.UnitID, quantity, record.Volume); err != nil {
			return err
		}

		var applyErr error
		updated, applyErr = s.stock.ApplyPurchase(ctx, record.ID, record.UnitID, quantity, -record.Cost(quantity))
		if errors.Is(applyErr, repository.ErrNoMatch) {
			return &apperror.NotFoundError{Entity: "product", ID: record.ID, UnitID: record.UnitID}
		}
		if applyErr != nil {
			return fmt.Errorf("buy product %s: %w", record.ID, applyErr)
		}
		return nil
	})
	if err != nil {
		s.logger.Debug("purchase rejected", zap.String("product_id", record.ID), zap.String("unit_id", record.UnitID), zap.Error(err))
		return models.StockRecord{}, err
	}

	s.logger.Info("product bought",
		zap.String("product_id", updated.ID),
		zap.String("unit_id", updated.UnitID),
		zap.Int("quantity", quantity),
	)
	return updated, nil
}
