package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PartnershipStatusPending  = "pending"
	PartnershipStatusApproved = "approved"
	PartnershipStatusRejected = "rejected"
	PartnershipStatusBlocked  = "blocked"
)

// Partnership links a dealer to a corporate company. The pair is unique and
// only the company side may change the status.
type Partnership struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	DealerID   uuid.UUID  `json:"dealer_id" db:"dealer_id"`
	CompanyID  uuid.UUID  `json:"company_id" db:"company_id"`
	Status     string     `json:"status" db:"status"`
	Notes      *string    `json:"notes" db:"notes"`
	ReviewedAt *time.Time `json:"reviewed_at" db:"reviewed_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// ValidPartnershipStatus reports whether status is a reviewable outcome a
// company may set. Pending is excluded: it is only ever the initial state.
func ValidPartnershipStatus(status string) bool {
	switch status {
	case PartnershipStatusApproved, PartnershipStatusRejected, PartnershipStatusBlocked:
		return true
	}
	return false
}
