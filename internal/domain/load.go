package domain

import "time"

// LoadStatus represents the current status of a load.
// The values (including the space in "in transit") are part of the wire
// contract with existing clients.
type LoadStatus string

const (
	LoadStatusPending   LoadStatus = "pending"
	LoadStatusAssigned  LoadStatus = "assigned"
	LoadStatusInTransit LoadStatus = "in transit"
	LoadStatusDelivered LoadStatus = "delivered"
	LoadStatusCancelled LoadStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are possible.
func (s LoadStatus) IsTerminal() bool {
	return s == LoadStatusDelivered || s == LoadStatusCancelled
}

// PaymentStatus represents the financial settlement state of a load.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
)

// Dimensions describes the physical size of a shipment.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Location is the last reported position of a load in transit.
type Location struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Address   string    `json:"address"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Alert is a note attached to a load by a shipper or admin.
type Alert struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	IsRead    bool      `json:"isRead"`
}

// Load represents a shipment a shipper wants transported.
//
// WinningBidID and AssignedTruckerID are non-owning references: the load
// points at a bid and a user it does not own, and resolving either always
// goes through a repository lookup.
type Load struct {
	ID           string
	ShipperID    string
	Origin       string
	Destination  string
	ShipmentDate time.Time
	Weight       float64
	Dimensions   Dimensions

	Status            LoadStatus
	WinningBidID      string
	AssignedTruckerID string
	Price             float64

	CurrentLocation *Location

	PaymentStatus PaymentStatus
	PaymentDate   time.Time

	Alerts []Alert

	PickupTime            time.Time
	DeliveryTime          time.Time
	EstimatedDeliveryTime time.Time
	CreatedAt             time.Time
}
