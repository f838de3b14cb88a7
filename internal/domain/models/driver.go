package models

type DriverStatus string

const (
	DriverActive    DriverStatus = "ACTIVE"
	DriverInactive  DriverStatus = "INACTIVE"
	DriverSuspended DriverStatus = "SUSPENDED"
)

func (s DriverStatus) Valid() bool {
	switch s {
	case DriverActive, DriverInactive, DriverSuspended:
		return true
	}
	return false
}

type Driver struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	CPF     string       `json:"cpf"`
	CNH     string       `json:"cnh"`
	Phone   string       `json:"phone"`
	Email   *string      `json:"email"`
	Address *string      `json:"address"`
	Status  DriverStatus `json:"status"`
}

func (d Driver) EntityID() string    { return d.ID }
func (d Driver) DisplayName() string { return d.Name }
