package entity

import "time"

// Valid roles for User.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is an account in the store.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after persisting
	Name         string
	Role         string // customer, admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
