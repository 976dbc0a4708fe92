package entity

import "time"

// Roles.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User is an operator of the system.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | operator
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
