package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/marlkit/boxpush/internal/game/events"
)

// LoggerSubscriber writes one structured log record per episode event.
type LoggerSubscriber struct {
	id     string
	logger zerolog.Logger
	level  zerolog.Level

	// filter restricts logging to the listed event types; nil means all.
	filter map[string]bool
	// dumpPayload attaches the whole event as JSON to each record.
	dumpPayload bool
}

// NewLoggerSubscriber creates a subscriber that logs every event at the
// given level.
func NewLoggerSubscriber(id string, logger zerolog.Logger, level zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:     id,
		logger: logger.With().Str("component", "event_logger").Logger(),
		level:  level,
	}
}

// ID returns the subscriber's unique identifier.
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter restricts logging to the given event types. An empty
// list removes the filter.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.filter = nil
		return
	}
	ls.filter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.filter[eventType] = true
	}
}

// SetDumpPayload toggles attaching the full event as JSON, for chasing
// down a field the summary line does not carry.
func (ls *LoggerSubscriber) SetDumpPayload(enabled bool) {
	ls.dumpPayload = enabled
}

// InterestedIn reports whether the subscriber logs this event type.
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.filter == nil {
		return true
	}
	return ls.filter[eventType]
}

// HandleEvent logs the event with its type-specific fields.
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	rec := ls.logger.WithLevel(ls.level).
		Str("event_type", event.Type()).
		Str("episode_id", event.EpisodeID()).
		Time("timestamp", event.Timestamp())

	addEventFields(rec, event)

	if ls.dumpPayload {
		if raw, err := json.Marshal(event); err == nil {
			rec.RawJSON("event_data", raw)
		}
	}

	rec.Msg("Episode event")
}

// addEventFields attaches the fields particular to each event type.
func addEventFields(rec *zerolog.Event, event events.Event) {
	switch e := event.(type) {
	case *events.EpisodeStartedEvent:
		rec.
			Int("rows", e.Rows).
			Int("cols", e.Cols).
			Int("horizon", e.Horizon)

	case *events.ChanceResolvedEvent:
		rec.
			Int("outcome", e.Outcome).
			Int("initiative", e.Initiative).
			Str("orientation_0", e.Orientations[0].String()).
			Str("orientation_1", e.Orientations[1].String())

	case *events.TurnResolvedEvent:
		rec.
			Int("turn", e.TurnNumber).
			Str("action_0", e.Actions[0].String()).
			Str("action_1", e.Actions[1].String()).
			Str("status_0", e.Statuses[0].String()).
			Str("status_1", e.Statuses[1].String()).
			Float64("reward", e.Reward)

	case *events.EpisodeEndedEvent:
		rec.
			Bool("won", e.Won).
			Int("final_turn", e.FinalTurn).
			Float64("total_reward", e.TotalReward).
			Dur("duration", e.Duration)

	case *events.MoverTransitionEvent:
		rec.
			Str("from", e.From).
			Str("to", e.To).
			Str("reason", e.Reason)
	}
}
