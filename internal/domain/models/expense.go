package models

import "time"

type ExpenseType string

const (
	ExpenseMaintenance ExpenseType = "MAINTENANCE"
	ExpenseToll        ExpenseType = "TOLL"
	ExpenseFuel        ExpenseType = "FUEL"
	ExpenseFood        ExpenseType = "FOOD"
	ExpenseOther       ExpenseType = "OTHER"
)

// ExpenseTypes lists types in report order.
var ExpenseTypes = []ExpenseType{ExpenseMaintenance, ExpenseToll, ExpenseFuel, ExpenseFood, ExpenseOther}

func (t ExpenseType) Valid() bool {
	for _, v := range ExpenseTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Expense belongs to exactly one trip. DriverID and VehicleID mirror the trip's.
type Expense struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Value     float64     `json:"value"`
	Date      time.Time   `json:"date"`
	Type      ExpenseType `json:"type"`
	Notes     *string     `json:"notes"`
	TripID    string      `json:"tripId"`
	DriverID  string      `json:"driverId"`
	VehicleID string      `json:"vehicleId"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
