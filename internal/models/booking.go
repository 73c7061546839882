package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusRejected  = "rejected"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking lifecycle actions issued by the warehouse-owning dealer.
const (
	BookingActionConfirm  = "confirm"
	BookingActionReject   = "reject"
	BookingActionComplete = "complete"
	BookingActionCancel   = "cancel"
)

type Booking struct {
	ID           uuid.UUID `json:"id" db:"id"`
	WarehouseID  uuid.UUID `json:"warehouse_id" db:"warehouse_id"`
	CorporateID  uuid.UUID `json:"corporate_id" db:"corporate_id"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
	RequiredArea float64   `json:"required_area" db:"required_area"`
	Status       string    `json:"status" db:"status"`
	DealerNotes  *string   `json:"dealer_notes" db:"dealer_notes"`
	AgreementKey *string   `json:"agreement_key,omitempty" db:"agreement_key"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// bookingTransitions maps (current status, action) to the next status.
// Completed, rejected and cancelled are terminal: no action leads out of them.
var bookingTransitions = map[string]map[string]string{
	BookingStatusPending: {
		BookingActionConfirm: BookingStatusConfirmed,
		BookingActionReject:  BookingStatusRejected,
		BookingActionCancel:  BookingStatusCancelled,
	},
	BookingStatusConfirmed: {
		BookingActionComplete: BookingStatusCompleted,
		BookingActionCancel:   BookingStatusCancelled,
	},
}

// NextBookingStatus resolves a lifecycle action against the current status.
// It returns false when the transition is not allowed.
func NextBookingStatus(current, action string) (string, bool) {
	next, ok := bookingTransitions[current][action]
	return next, ok
}

// BookingActive reports whether a booking in the given status still counts
// against warehouse capacity.
func BookingActive(status string) bool {
	return status == BookingStatusPending || status == BookingStatusConfirmed
}
