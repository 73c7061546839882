package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuoteStatusSubmitted   = "submitted"
	QuoteStatusUnderReview = "under_review"
	QuoteStatusApproved    = "approved"
	QuoteStatusRejected    = "rejected"
)

// TenderQuote is a dealer's offer against a corporate tender. One quote per
// (tender, dealer) pair.
type TenderQuote struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TenderID  uuid.UUID `json:"tender_id" db:"tender_id"`
	DealerID  uuid.UUID `json:"dealer_id" db:"dealer_id"`
	Amount    float64   `json:"amount" db:"amount"`
	Notes     *string   `json:"notes" db:"notes"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// quoteTransitions: review moves forward only, approved/rejected are terminal.
var quoteTransitions = map[string]map[string]bool{
	QuoteStatusSubmitted: {
		QuoteStatusUnderReview: true,
		QuoteStatusApproved:    true,
		QuoteStatusRejected:    true,
	},
	QuoteStatusUnderReview: {
		QuoteStatusApproved: true,
		QuoteStatusRejected: true,
	},
}

// QuoteStatusAllowed reports whether a quote may move from current to next.
func QuoteStatusAllowed(current, next string) bool {
	return quoteTransitions[current][next]
}
