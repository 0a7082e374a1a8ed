package eventlog

import (
	"context"
	"time"
)

// Event represents a logged event
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	AccountID *string                `json:"account_id,omitempty"`
	FarmID    *string                `json:"farm_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventFilter filters events for queries
type EventFilter struct {
	AccountID *string
	FarmID    *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvent stores an event. Payload and metadata are marshalled to JSON.
	LogEvent(ctx context.Context, eventType string, accountID, farmID *string, payload, metadata interface{}) error

	// GetEvents retrieves events based on filter criteria
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// GetEventsByFarm retrieves events for a specific farm
	GetEventsByFarm(ctx context.Context, farmID string, limit int) ([]Event, error)

	// GetEventsByAccount retrieves events involving a specific account
	GetEventsByAccount(ctx context.Context, accountID string, limit int) ([]Event, error)

	// CleanupOldEvents removes events older than the specified number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
