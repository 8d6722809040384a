package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/inventory/internal/repository"
)

func recordKey(id, unitID string) bson.D {
	return bson.D{{Key: "id", Value: id}, {Key: "unit_id", Value: unitID}}
}

// lookupFilter matches an id, optionally restricted to one unit.
func lookupFilter(id, unitID string) bson.D {
	if unitID == "" {
		return bson.D{{Key: "id", Value: id}}
	}
	return recordKey(id, unitID)
}

// searchFilter translates a StockFilter into a query document.
func searchFilter(f repository.StockFilter) bson.D {
	filter := bson.D{}
	if f.Name != "" {
		filter = append(filter, bson.E{Key: "name", Value: f.Name})
	}
	if f.ID != "" {
		filter = append(filter, bson.E{Key: "id", Value: f.ID})
	}
	if f.UnitID != "" {
		filter = append(filter, bson.E{Key: "unit_id", Value: f.UnitID})
	}
	if f.Quantity != nil {
		filter = append(filter, bson.E{Key: "quantity", Value: bson.D{
			{Key: "$gte", Value: f.Quantity.Min},
			{Key: "$lte", Value: f.Quantity.Max},
		}})
	}
	return filter
}

// sortSpec returns nil for an unordered query.
func sortSpec(s repository.Sort) bson.D {
	if s.Field == "" {
		return nil
	}
	direction := 1
	if s.Descending {
		direction = -1
	}
	return bson.D{{Key: s.Field, Value: direction}}
}

// saleFilter matches the record only while it still holds enough stock.
func saleFilter(id, unitID string, quantity int) bson.D {
	return append(recordKey(id, unitID), bson.E{Key: "quantity", Value: bson.D{{Key: "$gte", Value: quantity}}})
}

func saleUpdate(quantity int, profit float64) bson.D {
	return bson.D{{Key: "$inc", Value: bson.D{
		{Key: "quantity", Value: -quantity},
		{Key: "sold_quantity", Value: quantity},
		{Key: "unit_gain", Value: profit},
	}}}
}

func purchaseUpdate(quantity int, gainDelta float64) bson.D {
	return bson.D{{Key: "$inc", Value: bson.D{
		{Key: "quantity", Value: quantity},
		{Key: "unit_gain", Value: gainDelta},
	}}}
}
