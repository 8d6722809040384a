// Package repository declares the storage contracts shared by the Mongo and
// in-memory drivers.
package repository

import (
	"context"
	"errors"

	"github.com/mamadbah2/inventory/internal/domain/models"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique key is violated.
	ErrDuplicate = errors.New("duplicate record")

	// ErrNoMatch is returned when a conditional update matches no document.
	ErrNoMatch = errors.New("conditional update matched no record")
)

// Sortable stock fields.
const (
	SortByName     = "name"
	SortByQuantity = "quantity"
)

// QuantityRange is an inclusive bound on StockRecord.Quantity.
type QuantityRange struct {
	Min int
	Max int
}

// StockFilter holds equality filters; empty strings are ignored.
type StockFilter struct {
	ID       string
	Name     string
	UnitID   string
	Quantity *QuantityRange
}

// Sort orders results by Field. An empty Field leaves the natural order.
type Sort struct {
	Field      string
	Descending bool
}

// UnitRepository stores storage units.
type UnitRepository interface {
	GetUnit(ctx context.Context, id string) (models.Unit, error)
	ListUnits(ctx context.Context) ([]models.Unit, error)
	UnitIDs(ctx context.Context) ([]string, error)
	InsertUnit(ctx context.Context, unit models.Unit) error
}

// StockRepository stores per-unit stock records.
type StockRepository interface {
	// FindOne returns the record (id, unitID). With an empty unitID the match
	// with the lowest unit_id is returned.
	FindOne(ctx context.Context, id, unitID string) (models.StockRecord, error)
	Find(ctx context.Context, filter StockFilter, sort Sort) ([]models.StockRecord, error)
	UnitLoad(ctx context.Context, unitID string) ([]models.StockLoad, error)
	Insert(ctx context.Context, record models.StockRecord) error
	// InsertMany inserts every record or none of them.
	InsertMany(ctx context.Context, records []models.StockRecord) error
	// ApplySale decrements quantity and increments sold_quantity and unit_gain
	// in one step, only when the current quantity covers the sale.
	ApplySale(ctx context.Context, id, unitID string, quantity int, profit float64) (models.StockRecord, error)
	// ApplyPurchase increments quantity and adds gainDelta to unit_gain in one step.
	ApplyPurchase(ctx context.Context, id, unitID string, quantity int, gainDelta float64) (models.StockRecord, error)
}
