// Package memory provides thread-safe in-memory repositories for single
// process deployments and tests.
package memory

import (
	"context"
	"sync"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/repository"
)

// UnitStore keeps units in insertion order.
type UnitStore struct {
	mu    sync.RWMutex
	units []models.Unit
	index map[string]int
}

// NewUnitStore constructs an empty UnitStore.
func NewUnitStore() *UnitStore {
	return &UnitStore{index: make(map[string]int)}
}

var _ repository.UnitRepository = (*UnitStore)(nil)

func (s *UnitStore) GetUnit(ctx context.Context, id string) (models.Unit, error) {
	if err := ctx.Err(); err != nil {
		return models.Unit{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return models.Unit{}, repository.ErrNotFound
	}
	return s.units[i], nil
}

func (s *UnitStore) ListUnits(ctx context.Context) ([]models.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Unit, len(s.units))
	copy(out, s.units)
	return out, nil
}

func (s *UnitStore) UnitIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.units))
	for _, u := range s.units {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (s *UnitStore) InsertUnit(ctx context.Context, unit models.Unit) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[unit.ID]; exists {
		return repository.ErrDuplicate
	}
	s.index[unit.ID] = len(s.units)
	s.units = append(s.units, unit)
	return nil
}
