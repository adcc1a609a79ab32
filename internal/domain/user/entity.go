package user

import (
	"time"

	"github.com/google/uuid"
)

// Marketplace roles. Fixed at account creation; there is no promotion path.
const (
	RoleCustomer   = "CUSTOMER"
	RoleRestaurant = "RESTAURANT"
	RoleAdmin      = "ADMIN"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleRestaurant, RoleAdmin:
		return true
	}
	return false
}

// User is the single identity entity. PasswordHash never leaves the
// service boundary.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FullName      string    `json:"full_name"`
	Phone         *string   `json:"phone,omitempty"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
