package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/dwellio/dwellio-api/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	n.conn.Close()
	return nil
}

// Noop backs tests and deployments without a NATS_URL.
type Noop struct{}

func (Noop) Publish(context.Context, string, interface{}) error { return nil }
func (Noop) Close() error                                       { return nil }

// Event subjects
const (
	ListingCreated = "listing.created"
	ListingUpdated = "listing.updated"
	ListingDeleted = "listing.deleted"

	FavoriteAdded   = "favorite.added"
	FavoriteRemoved = "favorite.removed"

	RecommendationCreated       = "recommendation.created"
	RecommendationStatusChanged = "recommendation.status_changed"
)

// Event payloads
type ListingEvent struct {
	PropertyID  int64     `json:"property_id"`
	PropertyUID string    `json:"property_uid"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type FavoriteEvent struct {
	UserID     int64     `json:"user_id"`
	PropertyID int64     `json:"property_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type RecommendationEvent struct {
	RecommendationID int64     `json:"recommendation_id"`
	SenderID         int64     `json:"sender_id"`
	ReceiverID       int64     `json:"receiver_id"`
	PropertyID       int64     `json:"property_id"`
	Status           string    `json:"status"`
	OccurredAt       time.Time `json:"occurred_at"`
}
