package domain

import "time"

// TransactionType represents the direction and nature of a transaction.
type TransactionType string

const (
	TransactionTypePayment TransactionType = "payment"
	TransactionTypePayout  TransactionType = "payout"
	TransactionTypeRefund  TransactionType = "refund"
	TransactionTypeFee     TransactionType = "fee"
	TransactionTypeOther   TransactionType = "other"
)

// TransactionStatus represents the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// PaymentDetails carries opaque settlement metadata on a transaction.
type PaymentDetails struct {
	CardLast4   string `json:"cardLast4,omitempty"`
	BankAccount string `json:"bankAccount,omitempty"`
	Provider    string `json:"provider,omitempty"`
}

// Transaction records money moving for a user, optionally tied to a load.
// A payment debits the user's balance and a payout credits it; both the
// transaction row and the balance change commit together.
type Transaction struct {
	ID             string
	UserID         string
	LoadID         string
	Amount         float64
	Type           TransactionType
	Status         TransactionStatus
	Description    string
	Reference      string
	PaymentMethod  string
	PaymentDetails PaymentDetails
	CreatedAt      time.Time
	CompletedAt    time.Time
}
