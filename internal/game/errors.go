package game

import "errors"

var (
	// ErrInvalidAction reports an action outside the legal set. The caller
	// contract is violated; the turn is not resolved.
	ErrInvalidAction = errors.New("invalid action")
	// ErrInvalidAgent reports an agent index outside 0..NumAgents-1.
	ErrInvalidAgent = errors.New("invalid agent index")
	// ErrInvalidOutcome reports a chance outcome index outside the draw's
	// support.
	ErrInvalidOutcome = errors.New("invalid chance outcome")
	// ErrEpisodeOver reports a mutation attempted on a terminal episode.
	ErrEpisodeOver = errors.New("episode is over")
	// ErrChancePending reports play attempted before the opening chance
	// draw has been applied.
	ErrChancePending = errors.New("opening chance draw not applied")
	// ErrChanceResolved reports a second chance draw on the same episode.
	ErrChanceResolved = errors.New("chance draw already applied")
	// ErrStaleState reports a reward query on a state that has not
	// resolved any turn yet.
	ErrStaleState = errors.New("no turn resolved yet")
)
