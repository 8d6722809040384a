package inventory

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mamadbah2/inventory/internal/domain/apperror"
	"github.com/mamadbah2/inventory/internal/domain/models"
)

// recordFromDraft checks a draft and builds the record to store. Stock fields
// (quantity, sold_quantity, unit_gain) are required only for a single-unit insert;
// replicated inserts always start them at zero.
func recordFromDraft(d models.ProductDraft, withStock bool) (models.StockRecord, error) {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", d.Name},
		{"category", d.Category},
		{"manufacturer", d.Manufacturer},
	} {
		if strings.TrimSpace(f.value) == "" {
			return models.StockRecord{}, apperror.Invalid(f.name, "is required")
		}
	}

	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"weight", d.Weight},
		{"volume", d.Volume},
		{"purchase_price", d.PurchasePrice},
		{"selling_price", d.SellingPrice},
	} {
		if f.value == nil {
			return models.StockRecord{}, apperror.Invalid(f.name, "is required")
		}
		if *f.value < 0 {
			return models.StockRecord{}, apperror.Invalid(f.name, "must not be negative")
		}
	}
	if *d.Volume == 0 {
		return models.StockRecord{}, apperror.Invalid("volume", "must be positive")
	}

	record := models.StockRecord{
		ID:            strings.TrimSpace(d.ID),
		Name:          strings.TrimSpace(d.Name),
		Weight:        *d.Weight,
		Volume:        *d.Volume,
		Category:      strings.TrimSpace(d.Category),
		PurchasePrice: *d.PurchasePrice,
		SellingPrice:  *d.SellingPrice,
		Manufacturer:  strings.TrimSpace(d.Manufacturer),
		UnitID:        strings.TrimSpace(d.UnitID),
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	if !withStock {
		return record, nil
	}

	switch {
	case d.Quantity == nil:
		return models.StockRecord{}, apperror.Invalid("quantity", "is required")
	case *d.Quantity < 0:
		return models.StockRecord{}, apperror.Invalid("quantity", "must not be negative")
	case d.SoldQuantity == nil:
		return models.StockRecord{}, apperror.Invalid("sold_quantity", "is required")
	case *d.SoldQuantity < 0:
		return models.StockRecord{}, apperror.Invalid("sold_quantity", "must not be negative")
	case d.UnitGain == nil:
		return models.StockRecord{}, apperror.Invalid("unit_gain", "is required")
	}

	record.Quantity = *d.Quantity
	record.SoldQuantity = *d.SoldQuantity
	record.UnitGain = *d.UnitGain
	return record, nil
}
