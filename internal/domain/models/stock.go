package models

import "github.com/shopspring/decimal"

// StockRecord is the quantity, price and gain state of one product within one unit.
// The pair (ID, UnitID) identifies a record; the same ID may exist in several units.
type StockRecord struct {
	ID            string  `bson:"id" json:"id"`
	Name          string  `bson:"name" json:"name"`
	Quantity      int     `bson:"quantity" json:"quantity"`
	SoldQuantity  int     `bson:"sold_quantity" json:"sold_quantity"`
	Weight        float64 `bson:"weight" json:"weight"`
	Volume        float64 `bson:"volume" json:"volume"`
	Category      string  `bson:"category" json:"category"`
	PurchasePrice float64 `bson:"purchase_price" json:"purchase_price"`
	SellingPrice  float64 `bson:"selling_price" json:"selling_price"`
	Manufacturer  string  `bson:"manufacturer" json:"manufacturer"`
	UnitGain      float64 `bson:"unit_gain" json:"unit_gain"`
	UnitID        string  `bson:"unit_id" json:"unit_id"`

	// UnitName is resolved at read time and never persisted.
	UnitName string `bson:"-" json:"unit_name,omitempty"`
}

// StockLoad is the projection used to compute how much of a unit is occupied.
type StockLoad struct {
	ID       string  `bson:"id"`
	Quantity int     `bson:"quantity"`
	Volume   float64 `bson:"volume"`
}

// Profit returns (selling_price - purchase_price) * quantity.
func (r StockRecord) Profit(quantity int) float64 {
	margin := decimal.NewFromFloat(r.SellingPrice).Sub(decimal.NewFromFloat(r.PurchasePrice))
	return margin.Mul(decimal.NewFromInt(int64(quantity))).InexactFloat64()
}

// Cost returns purchase_price * quantity. Buying records it as a negative gain delta.
func (r StockRecord) Cost(quantity int) float64 {
	return decimal.NewFromFloat(r.PurchasePrice).Mul(decimal.NewFromInt(int64(quantity))).InexactFloat64()
}

// ProductDraft carries the fields of a product to insert. Pointer fields
// distinguish a missing value from an explicit zero.
type ProductDraft struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Quantity      *int     `json:"quantity"`
	SoldQuantity  *int     `json:"sold_quantity"`
	Weight        *float64 `json:"weight"`
	Volume        *float64 `json:"volume"`
	Category      string   `json:"category"`
	PurchasePrice *float64 `json:"purchase_price"`
	SellingPrice  *float64 `json:"selling_price"`
	Manufacturer  string   `json:"manufacturer"`
	UnitGain      *float64 `json:"unit_gain"`
	UnitID        string   `json:"unit_id"`
}
