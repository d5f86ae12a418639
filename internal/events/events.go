// Package events broadcasts prediction lifecycle events to websocket subscribers.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	TypePredictionsUpdated = "predictions.updated"
	TypeCacheCleared       = "cache.cleared"
)

// Event is one message pushed to subscribers
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// NewEvent stamps a new event with an id and the current time
func NewEvent(eventType string, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// PredictionsUpdated is the payload of TypePredictionsUpdated
type PredictionsUpdated struct {
	Date          string         `json:"date"`
	Fixtures      int            `json:"fixtures"`
	FixtureSource string         `json:"fixture_source"`
	Counts        map[string]int `json:"counts"`
}

// CacheCleared is the payload of TypeCacheCleared
type CacheCleared struct {
	Caches []string `json:"caches"`
}

// Publisher accepts events for delivery. Publish must not block.
type Publisher interface {
	Publish(event Event)
}

// Nop discards every event
type Nop struct{}

// Publish implements Publisher
func (Nop) Publish(Event) {}
