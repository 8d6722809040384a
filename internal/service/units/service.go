package units

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/inventory/internal/domain/apperror"
	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/repository"
)

// Service is the unit registry. Units are provisioned once and never resized.
type Service struct {
	repo   repository.UnitRepository
	logger *zap.Logger
}

// NewService wires a unit registry over a repository.
func NewService(repo repository.UnitRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Get returns the unit or a NotFound error.
func (s *Service) Get(ctx context.Context, unitID string) (models.Unit, error) {
	unit, err := s.repo.GetUnit(ctx, unitID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Unit{}, apperror.NotFound("unit", unitID)
	}
	if err != nil {
		return models.Unit{}, fmt.Errorf("get unit: %w", err)
	}
	return unit, nil
}

// List returns every registered unit.
func (s *Service) List(ctx context.Context) ([]models.Unit, error) {
	units, err := s.repo.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return units, nil
}

// IDs returns the id of every registered unit.
func (s *Service) IDs(ctx context.Context) ([]string, error) {
	ids, err := s.repo.UnitIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unit ids: %w", err)
	}
	return ids, nil
}

// Create provisions a unit, generating its id when empty.
func (s *Service) Create(ctx context.Context, unit models.Unit) (models.Unit, error) {
	unit.ID = strings.TrimSpace(unit.ID)
	unit.Name = strings.TrimSpace(unit.Name)

	if unit.Name == "" {
		return models.Unit{}, apperror.Invalid("name", "is required")
	}
	if unit.Volume < 0 {
		return models.Unit{}, apperror.Invalid("volume", "must not be negative")
	}
	if unit.ID == "" {
		unit.ID = uuid.NewString()
	}

	if err := s.repo.InsertUnit(ctx, unit); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Unit{}, &apperror.DuplicateError{Entity: "unit", ID: unit.ID}
		}
		return models.Unit{}, fmt.Errorf("create unit: %w", err)
	}

	s.logger.Info("unit provisioned", zap.String("unit_id", unit.ID), zap.Float64("volume", unit.Volume))
	return unit, nil
}
