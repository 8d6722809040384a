package models

import "time"

// UnitUtilization summarizes occupancy and gain of one unit.
type UnitUtilization struct {
	UnitID        string  `bson:"unit_id" json:"unit_id"`
	UnitName      string  `bson:"unit_name" json:"unit_name"`
	Volume        float64 `bson:"volume" json:"volume"`
	Used          float64 `bson:"used" json:"used"`
	Free          float64 `bson:"free" json:"free"`
	Utilization   float64 `bson:"utilization" json:"utilization"`
	Records       int     `bson:"records" json:"records"`
	TotalQuantity int     `bson:"total_quantity" json:"total_quantity"`
	TotalSold     int     `bson:"total_sold" json:"total_sold"`
	TotalGain     float64 `bson:"total_gain" json:"total_gain"`
}

// UtilizationReport aggregates every unit at a point in time.
type UtilizationReport struct {
	GeneratedAt time.Time         `bson:"generated_at" json:"generated_at"`
	Units       []UnitUtilization `bson:"units" json:"units"`
	TotalVolume float64           `bson:"total_volume" json:"total_volume"`
	TotalUsed   float64           `bson:"total_used" json:"total_used"`
	TotalGain   float64           `bson:"total_gain" json:"total_gain"`
}
