package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TenderStatusActive = "active"
	TenderStatusClosed = "closed" // terminal, no reopening
)

type Tender struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CreatedBy    uuid.UUID  `json:"created_by" db:"created_by"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description" db:"description"`
	ServiceType  string     `json:"service_type" db:"service_type"`
	RequiredArea float64    `json:"required_area" db:"required_area"`
	StartDate    time.Time  `json:"start_date" db:"start_date"`
	EndDate      time.Time  `json:"end_date" db:"end_date"`
	Deadline     *time.Time `json:"deadline" db:"deadline"`
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
