package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Customer struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         Role

	DateJoined time.Time
}

// Actor is the authenticated identity behind a request. Every service
// operation takes it explicitly; nothing reads session state ambiently.
type Actor struct {
	CustomerID uuid.UUID
	Role       Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
