package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/repository"
)

func record(id, unitID, name string, quantity int) models.StockRecord {
	return models.StockRecord{
		ID:            id,
		Name:          name,
		Quantity:      quantity,
		Volume:        1,
		Category:      "misc",
		PurchasePrice: 1,
		SellingPrice:  2,
		Manufacturer:  "acme",
		UnitID:        unitID,
	}
}

func TestStockStoreInsertRejectsDuplicatePair(t *testing.T) {
	s := NewStockStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("p1", "u1", "bolt", 1)))
	require.NoError(t, s.Insert(ctx, record("p1", "u2", "bolt", 1)))

	err := s.Insert(ctx, record("p1", "u1", "bolt", 5))
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestStockStoreInsertManyIsAllOrNothing(t *testing.T) {
	s := NewStockStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("p1", "u2", "bolt", 0)))

	err := s.InsertMany(ctx, []models.StockRecord{
		record("p1", "u1", "bolt", 0),
		record("p1", "u2", "bolt", 0),
		record("p1", "u3", "bolt", 0),
	})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	all, err := s.Find(ctx, repository.StockFilter{ID: "p1"}, repository.Sort{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStockStoreFindOneWithoutUnitPicksLowestUnitID(t *testing.T) {
	s := NewStockStore()
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("p1", "u3", "bolt", 3)))
	require.NoError(t, s.Insert(ctx, record("p1", "u1", "bolt", 1)))
	require.NoError(t, s.Insert(ctx, record("p1", "u2", "bolt", 2)))

	got, err := s.FindOne(ctx, "p1", "")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UnitID)

	got, err = s.FindOne(ctx, "p1", "u3")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)

	_, err = s.FindOne(ctx, "p1", "u9")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStockStoreApplySaleGuard(t *testing.T) {
	s := NewStockStore()
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, record("p1", "u1", "bolt", 5)))

	updated, err := s.ApplySale(ctx, "p1", "u1", 5, 12.5)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)
	assert.Equal(t, 5, updated.SoldQuantity)
	assert.Equal(t, 12.5, updated.UnitGain)

	_, err = s.ApplySale(ctx, "p1", "u1", 1, 2.5)
	assert.ErrorIs(t, err, repository.ErrNoMatch)

	unchanged, err := s.FindOne(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, updated, unchanged)
}

func TestStockStoreConcurrentSalesNeverOversell(t *testing.T) {
	s := NewStockStore()
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, record("p1", "u1", "bolt", 50)))

	var wg sync.WaitGroup
	var ok int64
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ApplySale(ctx, "p1", "u1", 1, 1); err == nil {
				atomic.AddInt64(&ok, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 50, ok)
	final, err := s.FindOne(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, final.Quantity)
	assert.Equal(t, 50, final.SoldQuantity)
}

func TestStockStoreApplyPurchase(t *testing.T) {
	s := NewStockStore()
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, record("p1", "u1", "bolt", 1)))

	updated, err := s.ApplyPurchase(ctx, "p1", "u1", 4, -4)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, -4.0, updated.UnitGain)

	_, err = s.ApplyPurchase(ctx, "missing", "u1", 1, -1)
	assert.ErrorIs(t, err, repository.ErrNoMatch)
}

func TestStockStoreFindFiltersAndSorts(t *testing.T) {
	s := NewStockStore()
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, record("a", "u1", "nail", 9)))
	require.NoError(t, s.Insert(ctx, record("b", "u1", "bolt", 2)))
	require.NoError(t, s.Insert(ctx, record("c", "u1", "screw", 5)))
	require.NoError(t, s.Insert(ctx, record("c", "u2", "screw", 7)))

	t.Run("range", func(t *testing.T) {
		got, err := s.Find(ctx, repository.StockFilter{UnitID: "u1", Quantity: &repository.QuantityRange{Min: 3, Max: 8}}, repository.Sort{})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 5, got[0].Quantity)
	})

	t.Run("name ascending", func(t *testing.T) {
		got, err := s.Find(ctx, repository.StockFilter{UnitID: "u1"}, repository.Sort{Field: repository.SortByName})
		require.NoError(t, err)
		assert.Equal(t, []string{"bolt", "nail", "screw"}, names(got))
	})

	t.Run("quantity descending", func(t *testing.T) {
		got, err := s.Find(ctx, repository.StockFilter{}, repository.Sort{Field: repository.SortByQuantity, Descending: true})
		require.NoError(t, err)
		assert.Equal(t, []int{9, 7, 5, 2}, quantities(got))
	})

	t.Run("natural order", func(t *testing.T) {
		got, err := s.Find(ctx, repository.StockFilter{Name: "screw"}, repository.Sort{})
		require.NoError(t, err)
		assert.Equal(t, []int{5, 7}, quantities(got))
	})

	t.Run("no match", func(t *testing.T) {
		got, err := s.Find(ctx, repository.StockFilter{ID: "zzz"}, repository.Sort{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStockStoreUnitLoad(t *testing.T) {
	s := NewStockStore()
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, record("a", "u1", "nail", 9)))
	require.NoError(t, s.Insert(ctx, record("b", "u2", "bolt", 2)))

	loads, err := s.UnitLoad(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []models.StockLoad{{ID: "a", Quantity: 9, Volume: 1}}, loads)
}

func TestUnitStore(t *testing.T) {
	s := NewUnitStore()
	ctx := context.Background()

	require.NoError(t, s.InsertUnit(ctx, models.Unit{ID: "u2", Name: "second", Volume: 5}))
	require.NoError(t, s.InsertUnit(ctx, models.Unit{ID: "u1", Name: "first", Volume: 10}))
	assert.ErrorIs(t, s.InsertUnit(ctx, models.Unit{ID: "u1"}), repository.ErrDuplicate)

	ids, err := s.UnitIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u1"}, ids)

	u, err := s.GetUnit(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10.0, u.Volume)

	_, err = s.GetUnit(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStoresHonorCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewUnitStore().ListUnits(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = NewStockStore().ApplySale(ctx, "p", "u", 1, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func names(records []models.StockRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func quantities(records []models.StockRecord) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.Quantity)
	}
	return out
}
