package events

import (
	"time"

	"github.com/marlkit/boxpush/internal/game"
	"github.com/marlkit/boxpush/internal/game/core"
)

// Event type constants
const (
	TypeEpisodeStarted  = "episode.started"
	TypeChanceResolved  = "chance.resolved"
	TypeTurnResolved    = "turn.resolved"
	TypeEpisodeEnded    = "episode.ended"
	TypeMoverTransition = "mover.transition"
)

// EpisodeStartedEvent is published when a new episode begins.
type EpisodeStartedEvent struct {
	BaseEvent
	Rows    int
	Cols    int
	Horizon int
}

// NewEpisodeStartedEvent creates a new EpisodeStartedEvent.
func NewEpisodeStartedEvent(episodeID string, rows, cols, horizon int) *EpisodeStartedEvent {
	return &EpisodeStartedEvent{
		BaseEvent: newBase(TypeEpisodeStarted, episodeID),
		Rows:      rows,
		Cols:      cols,
		Horizon:   horizon,
	}
}

// ChanceResolvedEvent is published when the opening chance draw is applied.
type ChanceResolvedEvent struct {
	BaseEvent
	Outcome      int
	Initiative   int
	Orientations [core.NumAgents]core.Orientation
}

// NewChanceResolvedEvent creates a new ChanceResolvedEvent.
func NewChanceResolvedEvent(episodeID string, outcome, initiative int, orientations [core.NumAgents]core.Orientation) *ChanceResolvedEvent {
	return &ChanceResolvedEvent{
		BaseEvent:    newBase(TypeChanceResolved, episodeID),
		Outcome:      outcome,
		Initiative:   initiative,
		Orientations: orientations,
	}
}

// TurnResolvedEvent is published after a simultaneous turn is resolved.
type TurnResolvedEvent struct {
	BaseEvent
	TurnNumber int
	Actions    [core.NumAgents]game.Action
	Statuses   [core.NumAgents]game.ActionStatus
	Reward     float64
}

// NewTurnResolvedEvent creates a new TurnResolvedEvent.
func NewTurnResolvedEvent(episodeID string, turn int, actions [core.NumAgents]game.Action, statuses [core.NumAgents]game.ActionStatus, reward float64) *TurnResolvedEvent {
	return &TurnResolvedEvent{
		BaseEvent:  newBase(TypeTurnResolved, episodeID),
		TurnNumber: turn,
		Actions:    actions,
		Statuses:   statuses,
		Reward:     reward,
	}
}

// EpisodeEndedEvent is published when an episode ends.
type EpisodeEndedEvent struct {
	BaseEvent
	Won         bool
	FinalTurn   int
	TotalReward float64
	Duration    time.Duration
}

// NewEpisodeEndedEvent creates a new EpisodeEndedEvent.
func NewEpisodeEndedEvent(episodeID string, won bool, finalTurn int, totalReward float64, duration time.Duration) *EpisodeEndedEvent {
	return &EpisodeEndedEvent{
		BaseEvent:   newBase(TypeEpisodeEnded, episodeID),
		Won:         won,
		FinalTurn:   finalTurn,
		TotalReward: totalReward,
		Duration:    duration,
	}
}

// MoverTransitionEvent is published when the episode moves between phases.
type MoverTransitionEvent struct {
	BaseEvent
	From   string
	To     string
	Reason string
}

// NewMoverTransitionEvent creates a new MoverTransitionEvent.
func NewMoverTransitionEvent(episodeID, from, to, reason string) *MoverTransitionEvent {
	return &MoverTransitionEvent{
		BaseEvent: newBase(TypeMoverTransition, episodeID),
		From:      from,
		To:        to,
		Reason:    reason,
	}
}
