package models

// UserRole is the role claim carried in access tokens. Trips record the
// creating user's id; users themselves are managed elsewhere.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
	RoleUser    UserRole = "USER"
)
