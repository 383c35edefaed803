package events

import (
	"time"
)

// Event is the interface all episode events satisfy.
type Event interface {
	// Type returns the event type string used for filtering and logging.
	Type() string
	// Timestamp returns when the event occurred.
	Timestamp() time.Time
	// EpisodeID returns the episode the event belongs to.
	EpisodeID() string
}

// BaseEvent carries the fields shared by every event.
type BaseEvent struct {
	EventType string
	Time      time.Time
	Episode   string
}

// newBase stamps a BaseEvent with the current time.
func newBase(eventType, episodeID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Episode:   episodeID,
	}
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) EpisodeID() string    { return e.Episode }

// EventHandler processes a single event.
type EventHandler func(Event)

// Subscriber receives events it declares interest in.
type Subscriber interface {
	// ID returns a unique identifier for this subscriber.
	ID() string
	// HandleEvent processes an event.
	HandleEvent(Event)
	// InterestedIn reports whether the subscriber wants this event type.
	InterestedIn(eventType string) bool
}

// Bus is what episode producers publish through.
type Bus interface {
	// Publish sends an event to all interested subscribers.
	Publish(Event)
	// Subscribe adds a subscriber.
	Subscribe(Subscriber)
	// Unsubscribe removes the subscriber with the given ID.
	Unsubscribe(subscriberID string)
	// SubscribeFunc adds a function handler for one event type.
	SubscribeFunc(eventType string, handler EventHandler) string
}
