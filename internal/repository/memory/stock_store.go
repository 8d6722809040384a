package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/repository"
)

type stockKey struct {
	id     string
	unitID string
}

// StockStore keeps stock records in insertion order, indexed by (id, unit_id).
// Every conditional update runs under the write lock, so check and write are
// a single step.
type StockStore struct {
	mu      sync.RWMutex
	records []models.StockRecord
	index   map[stockKey]int
}

// NewStockStore constructs an empty StockStore.
func NewStockStore() *StockStore {
	return &StockStore{index: make(map[stockKey]int)}
}

var _ repository.StockRepository = (*StockStore)(nil)

func (s *StockStore) FindOne(ctx context.Context, id, unitID string) (models.StockRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.StockRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if unitID != "" {
		i, ok := s.index[stockKey{id: id, unitID: unitID}]
		if !ok {
			return models.StockRecord{}, repository.ErrNotFound
		}
		return s.records[i], nil
	}

	found := -1
	for i, r := range s.records {
		if r.ID != id {
			continue
		}
		if found == -1 || r.UnitID < s.records[found].UnitID {
			found = i
		}
	}
	if found == -1 {
		return models.StockRecord{}, repository.ErrNotFound
	}
	return s.records[found], nil
}

func (s *StockStore) Find(ctx context.Context, filter repository.StockFilter, order repository.Sort) ([]models.StockRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]models.StockRecord, 0, len(s.records))
	for _, r := range s.records {
		if matches(r, filter) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	var less func(i, j int) bool
	switch order.Field {
	case repository.SortByName:
		less = func(i, j int) bool { return strings.Compare(out[i].Name, out[j].Name) < 0 }
	case repository.SortByQuantity:
		less = func(i, j int) bool { return out[i].Quantity < out[j].Quantity }
	}
	if less != nil {
		if order.Descending {
			asc := less
			less = func(i, j int) bool { return asc(j, i) }
		}
		sort.SliceStable(out, less)
	}

	return out, nil
}

func (s *StockStore) UnitLoad(ctx context.Context, unitID string) ([]models.StockLoad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var loads []models.StockLoad
	for _, r := range s.records {
		if r.UnitID != unitID {
			continue
		}
		loads = append(loads, models.StockLoad{ID: r.ID, Quantity: r.Quantity, Volume: r.Volume})
	}
	return loads, nil
}

func (s *StockStore) Insert(ctx context.Context, record models.StockRecord) error {
	return s.InsertMany(ctx, []models.StockRecord{record})
}

func (s *StockStore) InsertMany(ctx context.Context, records []models.StockRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[stockKey]struct{}, len(records))
	for _, r := range records {
		key := stockKey{id: r.ID, unitID: r.UnitID}
		if _, exists := s.index[key]; exists {
			return repository.ErrDuplicate
		}
		if _, dup := seen[key]; dup {
			return repository.ErrDuplicate
		}
		seen[key] = struct{}{}
	}

	for _, r := range records {
		r.UnitName = ""
		s.index[stockKey{id: r.ID, unitID: r.UnitID}] = len(s.records)
		s.records = append(s.records, r)
	}
	return nil
}

func (s *StockStore) ApplySale(ctx context.Context, id, unitID string, quantity int, profit float64) (models.StockRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.StockRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[stockKey{id: id, unitID: unitID}]
	if !ok || s.records[i].Quantity < quantity {
		return models.StockRecord{}, repository.ErrNoMatch
	}

	r := &s.records[i]
	r.Quantity -= quantity
	r.SoldQuantity += quantity
	r.UnitGain += profit
	return *r, nil
}

func (s *StockStore) ApplyPurchase(ctx context.Context, id, unitID string, quantity int, gainDelta float64) (models.StockRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.StockRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[stockKey{id: id, unitID: unitID}]
	if !ok {
		return models.StockRecord{}, repository.ErrNoMatch
	}

	r := &s.records[i]
	r.Quantity += quantity
	r.UnitGain += gainDelta
	return *r, nil
}

func matches(r models.StockRecord, f repository.StockFilter) bool {
	if f.ID != "" && r.ID != f.ID {
		return false
	}
	if f.Name != "" && r.Name != f.Name {
		return false
	}
	if f.UnitID != "" && r.UnitID != f.UnitID {
		return false
	}
	if f.Quantity != nil && (r.Quantity < f.Quantity.Min || r.Quantity > f.Quantity.Max) {
		return false
	}
	return true
}
