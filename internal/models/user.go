package models

import (
	"time"

	"github.com/google/uuid"
)

// Account roles. Every mutating operation in the marketplace is authorized
// against the caller's role plus ownership of the target entity.
const (
	RoleCorporate = "corporate"
	RoleDealer    = "dealer"
	RoleAgency    = "agency"
	RoleAdmin     = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         string    `json:"role" db:"role"`
	CompanyName  string    `json:"company_name" db:"company_name"`
	ContactName  string    `json:"contact_name" db:"contact_name"`
	Phone        *string   `json:"phone" db:"phone"`
	Address      *string   `json:"address" db:"address"`
	GSTIN        *string   `json:"gstin" db:"gstin"`
	Verified     bool      `json:"verified" db:"verified"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ValidRole reports whether role is one of the four account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleCorporate, RoleDealer, RoleAgency, RoleAdmin:
		return true
	}
	return false
}
