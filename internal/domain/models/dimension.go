package models

import "strings"

// Dimension is the entity type trips are grouped by in aggregation reports.
type Dimension string

const (
	DimensionVehicle Dimension = "vehicle"
	DimensionDriver  Dimension = "driver"
	DimensionClient  Dimension = "client"
)

func ParseDimension(s string) (Dimension, bool) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DimensionVehicle, DimensionDriver, DimensionClient:
		return d, true
	}
	return "", false
}

// Column is the trips foreign-key column for the dimension.
func (d Dimension) Column() string {
	switch d {
	case DimensionVehicle:
		return "vehicle_id"
	case DimensionDriver:
		return "driver_id"
	case DimensionClient:
		return "client_id"
	}
	return ""
}

// Entity is a record a trip group resolves to: a Vehicle, Driver or Client.
type Entity interface {
	EntityID() string
	DisplayName() string
}
