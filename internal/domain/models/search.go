package models

// OrderDescending is the only order_type value that reverses the sort.
const OrderDescending = "descending"

// SearchQuery describes a catalog search. Empty strings and nil bounds mean "not supplied".
type SearchQuery struct {
	OrderField  string
	OrderType   string
	Name        string
	ID          string
	UnitID      string
	MinQuantity *int
	MaxQuantity *int
}
