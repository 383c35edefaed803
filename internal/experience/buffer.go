package experience

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

var (
	// ErrBufferClosed reports an Add against a closed buffer.
	ErrBufferClosed = errors.New("trajectory buffer is closed")
)

// OverflowStrategy decides which trajectory loses when the buffer is full.
type OverflowStrategy string

const (
	// OverflowDropOldest evicts the oldest trajectory to make room.
	OverflowDropOldest OverflowStrategy = "drop_oldest"
	// OverflowDropNewest rejects the incoming trajectory instead.
	OverflowDropNewest OverflowStrategy = "drop_newest"
)

// Buffer holds completed trajectories in a fixed-capacity ring. Episode
// workers Add concurrently; consumers drain with Get/GetAll or follow
// the stream channel.
type Buffer struct {
	mu       sync.RWMutex
	ring     []*Trajectory
	capacity int
	size     int
	head     int
	tail     int
	overflow OverflowStrategy
	closed   bool

	streamChan chan *Trajectory

	totalAdded    int64
	totalDropped  int64
	totalStreamed int64

	logger zerolog.Logger
}

// NewBuffer creates a buffer holding up to capacity trajectories. A
// non-positive capacity falls back to the config default.
func NewBuffer(capacity int, logger zerolog.Logger) *Buffer {
	if capacity <= 0 {
		capacity = 10000
	}

	return &Buffer{
		ring:       make([]*Trajectory, capacity),
		capacity:   capacity,
		overflow:   OverflowDropOldest,
		streamChan: make(chan *Trajectory, 100),
		logger:     logger.With().Str("component", "trajectory_buffer").Logger(),
	}
}

// SetOverflowStrategy changes how a full buffer treats new trajectories.
func (b *Buffer) SetOverflowStrategy(strategy OverflowStrategy) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.overflow = strategy
}

// next advances a ring index by one slot.
func (b *Buffer) next(i int) int {
	return (i + 1) % b.capacity
}

// popOldest removes and returns the oldest trajectory. Caller holds the
// lock and guarantees size > 0.
func (b *Buffer) popOldest() *Trajectory {
	traj := b.ring[b.tail]
	b.ring[b.tail] = nil
	b.tail = b.next(b.tail)
	b.size--
	return traj
}

// Add appends a trajectory, applying the overflow strategy when full.
func (b *Buffer) Add(traj *Trajectory) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBufferClosed
	}

	if b.size == b.capacity {
		if b.overflow == OverflowDropNewest {
			b.totalDropped++
			b.logger.Debug().
				Str("episode_id", traj.EpisodeID).
				Int64("dropped_total", b.totalDropped).
				Msg("Buffer full, rejecting trajectory")
			return nil
		}
		b.popOldest()
		b.totalDropped++
		b.logger.Debug().
			Int64("dropped_total", b.totalDropped).
			Msg("Buffer full, evicting oldest trajectory")
	}

	b.ring[b.head] = traj
	b.head = b.next(b.head)
	b.size++
	b.totalAdded++

	// A full stream channel skips the handoff rather than blocking the
	// episode worker.
	select {
	case b.streamChan <- traj:
		b.totalStreamed++
	default:
	}

	return nil
}

// AddBatch appends several trajectories in order.
func (b *Buffer) AddBatch(trajectories []*Trajectory) error {
	for _, traj := range trajectories {
		if err := b.Add(traj); err != nil {
			return err
		}
	}
	return nil
}

// Get removes and returns up to n trajectories, oldest first.
func (b *Buffer) Get(n int) []*Trajectory {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > b.size {
		n = b.size
	}
	out := make([]*Trajectory, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, b.popOldest())
	}
	return out
}

// GetAll drains the buffer, oldest first.
func (b *Buffer) GetAll() []*Trajectory {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*Trajectory, 0, b.size)
	for b.size > 0 {
		out = append(out, b.popOldest())
	}
	return out
}

// GetLatest returns the n most recent trajectories, oldest of them
// first, without removing anything.
func (b *Buffer) GetLatest(n int) []*Trajectory {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n > b.size {
		n = b.size
	}
	out := make([]*Trajectory, n)
	for i := 0; i < n; i++ {
		out[i] = b.ring[(b.head-n+i+b.capacity)%b.capacity]
	}
	return out
}

// StreamChannel returns the channel new trajectories are offered on.
func (b *Buffer) StreamChannel() <-chan *Trajectory {
	return b.streamChan
}

// Size returns the number of buffered trajectories.
func (b *Buffer) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Capacity returns the fixed ring capacity.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// IsFull reports whether the next Add will trigger the overflow strategy.
func (b *Buffer) IsFull() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size == b.capacity
}

// Clear discards every buffered trajectory. Counters keep their totals.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.ring = make([]*Trajectory, b.capacity)
	b.size = 0
	b.head = 0
	b.tail = 0

	b.logger.Debug().Msg("Buffer cleared")
}

// Close stops the buffer. Later Adds fail and the stream channel is
// closed; buffered trajectories stay readable.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.streamChan)

	b.logger.Info().
		Int64("total_added", b.totalAdded).
		Int64("total_dropped", b.totalDropped).
		Int64("total_streamed", b.totalStreamed).
		Msg("Buffer closed")

	return nil
}

// Stats returns a snapshot of the buffer counters.
func (b *Buffer) Stats() BufferStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return BufferStats{
		CurrentSize:    b.size,
		Capacity:       b.capacity,
		TotalAdded:     b.totalAdded,
		TotalDropped:   b.totalDropped,
		TotalStreamed:  b.totalStreamed,
		UtilizationPct: float64(b.size) / float64(b.capacity) * 100,
	}
}

// BufferStats is a point-in-time view of the buffer counters.
type BufferStats struct {
	CurrentSize    int
	Capacity       int
	TotalAdded     int64
	TotalDropped   int64
	TotalStreamed  int64
	UtilizationPct float64
}
