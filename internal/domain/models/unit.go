package models

// Unit is a physical storage location with a fixed volumetric capacity.
type Unit struct {
	ID     string  `bson:"id" json:"id"`
	Name   string  `bson:"name" json:"name"`
	Volume float64 `bson:"volume" json:"volume"`
}
