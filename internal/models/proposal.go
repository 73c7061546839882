package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProposalStatusSent     = "sent"
	ProposalStatusAccepted = "accepted"
	ProposalStatusRejected = "rejected"
)

// Proposal is a marketing pitch sent by an agency to a corporate. Only the
// receiving corporate may accept or reject it.
type Proposal struct {
	ID          uuid.UUID `json:"id" db:"id"`
	AgencyID    uuid.UUID `json:"agency_id" db:"agency_id"`
	CorporateID uuid.UUID `json:"corporate_id" db:"corporate_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Budget      float64   `json:"budget" db:"budget"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
