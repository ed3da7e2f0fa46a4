package model

import (
	"time"

	"github.com/google/uuid"
)

// Known user roles. Librarians and admins are the operator roles.
const (
	RoleUser      = "user"
	RoleLibrarian = "librarian"
	RoleAdmin     = "admin"
)

// User represents a registered account. Identity is keyed by email; the
// token issuer owns credentials, so none are stored here.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// IsOperator reports whether the role may use operator-scoped routes.
func IsOperator(role string) bool {
	return role == RoleLibrarian || role == RoleAdmin
}

// UserRequest represents the request payload for registering a user.
type UserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// RoleResponse is the payload of the role-lookup endpoint. Role is null
// when the user is unknown, matching the original contract.
type RoleResponse struct {
	Role    *string `json:"role"`
	Message string  `json:"message,omitempty"`
}

// RoleRequest represents the payload for an operator role change.
type RoleRequest struct {
	Role string `json:"role"`
}
