package models

type ClientStatus string

const (
	ClientActive   ClientStatus = "ACTIVE"
	ClientInactive ClientStatus = "INACTIVE"
	ClientBlocked  ClientStatus = "BLOCKED"
)

func (s ClientStatus) Valid() bool {
	switch s {
	case ClientActive, ClientInactive, ClientBlocked:
		return true
	}
	return false
}

// Client is a customer; at least one of CPF (person) or CNPJ (company) is set.
type Client struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	CPF     *string      `json:"cpf"`
	CNPJ    *string      `json:"cnpj"`
	Phone   string       `json:"phone"`
	Email   *string      `json:"email"`
	Address *string      `json:"address"`
	Status  ClientStatus `json:"status"`
}

func (c Client) EntityID() string    { return c.ID }
func (c Client) DisplayName() string { return c.Name }
