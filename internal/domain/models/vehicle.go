package models

type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "ACTIVE"
	VehicleInactive    VehicleStatus = "INACTIVE"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleActive, VehicleInactive, VehicleMaintenance:
		return true
	}
	return false
}

type Vehicle struct {
	ID       string        `json:"id"`
	Plate    string        `json:"plate"`
	Brand    string        `json:"brand"`
	Model    string        `json:"model"`
	Year     int           `json:"year"`
	Capacity int           `json:"capacity"`
	Status   VehicleStatus `json:"status"`
}

func (v Vehicle) EntityID() string    { return v.ID }
func (v Vehicle) DisplayName() string { return v.Plate }
