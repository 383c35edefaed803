package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// EventBus delivers episode events synchronously. Publish returns only
// after every interested handler has run, so a subscriber wired up before
// a run sees events in exactly the order the episode produced them.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string]Subscriber
	handlers    map[string][]namedHandler
	handlerSeq  int
	logger      zerolog.Logger
}

type namedHandler struct {
	id string
	fn EventHandler
}

// NewEventBus creates an event bus that logs through the given logger.
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[string]Subscriber),
		handlers:    make(map[string][]namedHandler),
		logger:      logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a subscriber. A second subscriber with the same ID
// replaces the first.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	eb.subscribers[subscriber.ID()] = subscriber
	eb.mu.Unlock()

	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added")
}

// Unsubscribe removes the subscriber with the given ID.
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	delete(eb.subscribers, subscriberID)
	eb.mu.Unlock()

	eb.logger.Debug().
		Str("subscriber_id", subscriberID).
		Msg("Subscriber removed")
}

// SubscribeFunc registers a handler for a single event type and returns
// the handler's ID. IDs stay unique for the life of the bus.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	eb.handlerSeq++
	id := fmt.Sprintf("%s/%d", eventType, eb.handlerSeq)
	eb.handlers[eventType] = append(eb.handlers[eventType], namedHandler{id: id, fn: handler})
	eb.mu.Unlock()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", id).
		Msg("Handler added")

	return id
}

// Publish delivers the event to every interested subscriber and every
// handler registered for its type. The registry is snapshotted first, so
// a handler may subscribe or unsubscribe during delivery; a panic in one
// handler is logged and does not stop the others.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	subs := make([]Subscriber, 0, len(eb.subscribers))
	for _, s := range eb.subscribers {
		if s.InterestedIn(eventType) {
			subs = append(subs, s)
		}
	}
	handlers := append([]namedHandler(nil), eb.handlers[eventType]...)
	eb.mu.RUnlock()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("episode_id", event.EpisodeID()).
		Time("timestamp", event.Timestamp()).
		Msg("Publishing event")

	for _, s := range subs {
		eb.deliver(s.ID(), event, s.HandleEvent)
	}
	for _, h := range handlers {
		eb.deliver(h.id, event, h.fn)
	}
}

// deliver runs one handler, turning a panic into an error record.
func (eb *EventBus) deliver(id string, event Event, fn EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("handler_id", id).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Handler panicked while handling event")
		}
	}()
	fn(event)
}

// GetSubscriberCount returns the number of registered subscribers.
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// GetFuncHandlerCount returns the number of handlers registered for the
// given event type.
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventType])
}
