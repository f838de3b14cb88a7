package models

import "time"

type TripStatus string

const (
	TripScheduled  TripStatus = "SCHEDULED"
	TripInProgress TripStatus = "IN_PROGRESS"
	TripCompleted  TripStatus = "COMPLETED"
	TripCancelled  TripStatus = "CANCELLED"
)

// TripStatuses lists statuses in report order.
var TripStatuses = []TripStatus{TripScheduled, TripInProgress, TripCompleted, TripCancelled}

func (s TripStatus) Valid() bool {
	for _, v := range TripStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Trip struct {
	ID               string     `json:"id"`
	Origin           string     `json:"origin"`
	Destination      string     `json:"destination"`
	DepartureDate    time.Time  `json:"departureDate"`
	ReturnDate       *time.Time `json:"returnDate"`
	InitialKilometer *int       `json:"initialKilometer"`
	FinalKilometer   *int       `json:"finalKilometer"`
	TripValue        *float64   `json:"tripValue"`
	Status           TripStatus `json:"status"`
	Notes            *string    `json:"notes"`
	VehicleID        string     `json:"vehicleId"`
	DriverID         string     `json:"driverId"`
	ClientID         string     `json:"clientId"`
	UserID           string     `json:"userId"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	Vehicle  *Vehicle  `json:"vehicle,omitempty"`
	Driver   *Driver   `json:"driver,omitempty"`
	Client   *Client   `json:"client,omitempty"`
	Expenses []Expense `json:"expenses"`
}

// Value returns tripValue, treating a missing value as 0.
func (t Trip) Value() float64 {
	if t.TripValue == nil {
		return 0
	}
	return *t.TripValue
}

// ForeignKey returns the id this trip carries for the given dimension.
func (t Trip) ForeignKey(d Dimension) string {
	switch d {
	case DimensionVehicle:
		return t.VehicleID
	case DimensionDriver:
		return t.DriverID
	case DimensionClient:
		return t.ClientID
	}
	return ""
}
