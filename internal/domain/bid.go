package domain

import "time"

// BidStatus represents the current status of a bid.
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
	BidStatusExpired  BidStatus = "expired"
)

// BidExpiry is how long a bid advertises itself as valid. ExpiresAt is
// advisory data for clients; nothing sweeps bids past it.
const BidExpiry = 24 * time.Hour

// Bid is a trucker's offer to transport a load for a price.
//
// TruckerEligible is a snapshot of the trucker's eligibility taken when
// the bid was placed. It is never recomputed, even if the trucker's
// profile changes later.
type Bid struct {
	ID        string
	LoadID    string
	TruckerID string
	Amount    float64
	Status    BidStatus
	Notes     string

	TruckerEligible bool

	ExpiresAt  time.Time
	AcceptedAt time.Time
	RejectedAt time.Time
	CreatedAt  time.Time
}
