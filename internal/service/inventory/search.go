package inventory

import (
	"context"
	"fmt"

	"github.com/mamadbah2/inventory/internal/domain/apperror"
	"github.com/mamadbah2/inventory/internal/domain/models"
	"github.com/mamadbah2/inventory/internal/repository"
)

var sortable = map[string]bool{
	repository.SortByName:     true,
	repository.SortByQuantity: true,
}

// Search filters records by equality on name, id and unit and, when both bounds
// are given, by an inclusive quantity range. Unknown sort fields leave the
// result unordered.
func (s *Service) Search(ctx context.Context, q models.SearchQuery) ([]models.StockRecord, error) {
	filter, order, err := buildSearch(q)
	if err != nil {
		return nil, err
	}

	records, err := s.stock.Find(ctx, filter, order)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return s.withUnitNames(ctx, records)
}

func buildSearch(q models.SearchQuery) (repository.StockFilter, repository.Sort, error) {
	filter := repository.StockFilter{ID: q.ID, Name: q.Name, UnitID: q.UnitID}

	if q.MinQuantity != nil && q.MaxQuantity != nil {
		lo, hi := *q.MinQuantity, *q.MaxQuantity
		if lo < 0 || hi < 0 {
			return repository.StockFilter{}, repository.Sort{}, apperror.Invalid("quantity range", "bounds must not be negative")
		}
		if lo > hi {
			return repository.StockFilter{}, repository.Sort{}, apperror.Invalid("quantity range", "min_quantity exceeds max_quantity")
		}
		filter.Quantity = &repository.QuantityRange{Min: lo, Max: hi}
	}

	var order repository.Sort
	if sortable[q.OrderField] {
		order = repository.Sort{Field: q.OrderField, Descending: q.OrderType == models.OrderDescending}
	}
	return filter, order, nil
}
