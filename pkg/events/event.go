package events

import "time"

// Journal event types.
const (
	ThoughtCreated = "THOUGHT_CREATED"
	ThoughtUpdated = "THOUGHT_UPDATED"
	ThoughtDeleted = "THOUGHT_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "THOUGHT_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by publishers.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewThoughtEvent builds a journal event for one thought.
func NewThoughtEvent(eventType, uid string, thoughtId int64) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"uid":        uid,
			"thought_id": thoughtId,
		},
		OccurredAt: time.Now().UTC(),
	}
}
