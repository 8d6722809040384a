package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/inventory/internal/repository"
)

func TestSearchFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter repository.StockFilter
		want   bson.D
	}{
		{
			name:   "empty",
			filter: repository.StockFilter{},
			want:   bson.D{},
		},
		{
			name:   "equality fields",
			filter: repository.StockFilter{Name: "bolt", ID: "p1", UnitID: "u1"},
			want: bson.D{
				{Key: "name", Value: "bolt"},
				{Key: "id", Value: "p1"},
				{Key: "unit_id", Value: "u1"},
			},
		},
		{
			name:   "quantity range",
			filter: repository.StockFilter{Quantity: &repository.QuantityRange{Min: 3, Max: 8}},
			want: bson.D{
				{Key: "quantity", Value: bson.D{{Key: "$gte", Value: 3}, {Key: "$lte", Value: 8}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, searchFilter(tt.filter))
		})
	}
}

func TestSortSpec(t *testing.T) {
	assert.Nil(t, sortSpec(repository.Sort{}))
	assert.Equal(t, bson.D{{Key: "name", Value: 1}}, sortSpec(repository.Sort{Field: "name"}))
	assert.Equal(t, bson.D{{Key: "quantity", Value: -1}}, sortSpec(repository.Sort{Field: "quantity", Descending: true}))
}

func TestSaleFilterGuardsQuantity(t *testing.T) {
	want := bson.D{
		{Key: "id", Value: "p1"},
		{Key: "unit_id", Value: "u1"},
		{Key: "quantity", Value: bson.D{{Key: "$gte", Value: 4}}},
	}
	assert.Equal(t, want, saleFilter("p1", "u1", 4))
}

func TestSaleUpdate(t *testing.T) {
	want := bson.D{{Key: "$inc", Value: bson.D{
		{Key: "quantity", Value: -4},
		{Key: "sold_quantity", Value: 4},
		{Key: "unit_gain", Value: 10.5},
	}}}
	assert.Equal(t, want, saleUpdate(4, 10.5))
}

func TestPurchaseUpdate(t *testing.T) {
	want := bson.D{{Key: "$inc", Value: bson.D{
		{Key: "quantity", Value: 3},
		{Key: "unit_gain", Value: -7.5},
	}}}
	assert.Equal(t, want, purchaseUpdate(3, -7.5))
}

func TestLookupFilter(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "id", Value: "p1"}}, lookupFilter("p1", ""))
	assert.Equal(t, bson.D{{Key: "id", Value: "p1"}, {Key: "unit_id", Value: "u1"}}, lookupFilter("p1", "u1"))
}
