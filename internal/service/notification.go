package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"loadboard/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBidPlaced         NotificationType = "BID_PLACED"
	NotificationBidAccepted       NotificationType = "BID_ACCEPTED"
	NotificationBidRejected       NotificationType = "BID_REJECTED"
	NotificationLoadStatusChanged NotificationType = "LOAD_STATUS_CHANGED"
	NotificationLoadDelivered     NotificationType = "LOAD_DELIVERED"
	NotificationLoadCancelled     NotificationType = "LOAD_CANCELLED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM, APNS)
	// - Email client (SendGrid)
	// - WebSocket connections for real-time
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBidPlaced notifies the shipper that a new bid arrived on their load.
func (s *NotificationService) NotifyBidPlaced(ctx context.Context, bid *domain.Bid, load *domain.Load) error {
	notification := Notification{
		Type:        NotificationBidPlaced,
		RecipientID: load.ShipperID,
		Title:       "New Bid",
		Message:     fmt.Sprintf("A bid of $%.2f was placed on your load %s -> %s", bid.Amount, load.Origin, load.Destination),
		Data: map[string]interface{}{
			"bid_id":  bid.ID,
			"load_id": load.ID,
			"amount":  bid.Amount,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyBidAccepted notifies the trucker that their bid was accepted.
func (s *NotificationService) NotifyBidAccepted(ctx context.Context, bid *domain.Bid, load *domain.Load) error {
	notification := Notification{
		Type:        NotificationBidAccepted,
		RecipientID: bid.TruckerID,
		Title:       "Bid Accepted",
		Message:     fmt.Sprintf("Your bid of $%.2f was accepted. Load %s -> %s is yours.", bid.Amount, load.Origin, load.Destination),
		Data: map[string]interface{}{
			"bid_id":  bid.ID,
			"load_id": load.ID,
			"amount":  bid.Amount,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyBidRejected notifies the trucker that their bid was rejected.
func (s *NotificationService) NotifyBidRejected(ctx context.Context, bid *domain.Bid) error {
	notification := Notification{
		Type:        NotificationBidRejected,
		RecipientID: bid.TruckerID,
		Title:       "Bid Rejected",
		Message:     fmt.Sprintf("Your bid of $%.2f was rejected", bid.Amount),
		Data: map[string]interface{}{
			"bid_id":  bid.ID,
			"load_id": bid.LoadID,
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// NotifyLoadStatusChanged notifies the shipper about a load status change.
func (s *NotificationService) NotifyLoadStatusChanged(ctx context.Context, load *domain.Load) error {
	notificationType := NotificationLoadStatusChanged
	switch load.Status {
	case domain.LoadStatusDelivered:
		notificationType = NotificationLoadDelivered
	case domain.LoadStatusCancelled:
		notificationType = NotificationLoadCancelled
	}

	notification := Notification{
		Type:        notificationType,
		RecipientID: load.ShipperID,
		Title:       "Load Update",
		Message:     fmt.Sprintf("Your load %s -> %s is now %s", load.Origin, load.Destination, load.Status),
		Data: map[string]interface{}{
			"load_id": load.ID,
			"status":  string(load.Status),
		},
		CreatedAt: time.Now(),
	}
	return s.send(ctx, notification)
}

// send delivers a notification (mock implementation).
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)

	return nil
}
