package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	WarehouseStatusActive   = "active"
	WarehouseStatusInactive = "inactive"
)

// AvailabilityResult is the outcome of a warehouse capacity check.
type AvailabilityResult struct {
	Available     bool    `json:"available"`
	AvailableArea float64 `json:"available_area"`
	RequestedArea float64 `json:"requested_area"`
	BookedArea    float64 `json:"booked_area"`
	Reason        string  `json:"reason,omitempty"`
}

// Warehouse is the capacity ledger for a storage location. AvailableArea is
// the dealer-declared lettable area; remaining capacity for a date range is
// always recomputed from active bookings, never decremented here.
type Warehouse struct {
	ID             uuid.UUID `json:"id" db:"id"`
	DealerID       uuid.UUID `json:"dealer_id" db:"dealer_id"`
	Name           string    `json:"name" db:"name"`
	Location       string    `json:"location" db:"location"`
	TotalArea      float64   `json:"total_area" db:"total_area"`
	AvailableArea  float64   `json:"available_area" db:"available_area"`
	DailyRate      float64   `json:"daily_rate" db:"daily_rate"`
	MinBookingDays int       `json:"min_booking_days" db:"min_booking_days"`
	Status         string    `json:"status" db:"status"`
	PhotoKey       *string   `json:"photo_key,omitempty" db:"photo_key"`
	PhotoURL       string    `json:"photo_url,omitempty" db:"-"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
