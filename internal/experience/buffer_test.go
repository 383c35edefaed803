package experience

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trajectoryFixture(id string, turns int) *Trajectory {
	traj := &Trajectory{
		EpisodeID: id,
		Steps:     make([]Step, turns),
		FinalTurn: turns,
	}
	for i := range traj.Steps {
		traj.Steps[i] = Step{Turn: i + 1, Reward: -0.1}
		traj.TotalReward += traj.Steps[i].Reward
	}
	return traj
}

func fillBuffer(t *testing.T, b *Buffer, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, b.Add(trajectoryFixture(id, 3)))
	}
}

func episodeIDs(trajectories []*Trajectory) []string {
	ids := make([]string, len(trajectories))
	for i, traj := range trajectories {
		ids[i] = traj.EpisodeID
	}
	return ids
}

func TestBufferEmpty(t *testing.T) {
	buffer := NewBuffer(100, zerolog.Nop())

	assert.Equal(t, 100, buffer.Capacity())
	assert.Equal(t, 0, buffer.Size())
	assert.False(t, buffer.IsFull())
	assert.Empty(t, buffer.Get(5))
	assert.Empty(t, buffer.GetAll())
}

func TestBufferFIFO(t *testing.T) {
	buffer := NewBuffer(10, zerolog.Nop())
	fillBuffer(t, buffer, "a", "b", "c", "d", "e")

	assert.Equal(t, 5, buffer.Size())

	assert.Equal(t, []string{"a", "b", "c"}, episodeIDs(buffer.Get(3)))
	assert.Equal(t, 2, buffer.Size())

	assert.Equal(t, []string{"d", "e"}, episodeIDs(buffer.GetAll()))
	assert.Equal(t, 0, buffer.Size())
}

func TestBufferEvictsOldestWhenFull(t *testing.T) {
	buffer := NewBuffer(3, zerolog.Nop())
	fillBuffer(t, buffer, "a", "b", "c", "d", "e")

	assert.Equal(t, 3, buffer.Size())
	assert.True(t, buffer.IsFull())

	// a and b went to make room.
	assert.Equal(t, []string{"c", "d", "e"}, episodeIDs(buffer.GetAll()))

	stats := buffer.Stats()
	assert.Equal(t, int64(5), stats.TotalAdded)
	assert.Equal(t, int64(2), stats.TotalDropped)
}

func TestBufferRejectsNewestWhenConfigured(t *testing.T) {
	buffer := NewBuffer(3, zerolog.Nop())
	buffer.SetOverflowStrategy(OverflowDropNewest)
	fillBuffer(t, buffer, "a", "b", "c", "d", "e")

	// The first three stay, the overflow never made it in.
	assert.Equal(t, []string{"a", "b", "c"}, episodeIDs(buffer.GetAll()))

	stats := buffer.Stats()
	assert.Equal(t, int64(3), stats.TotalAdded)
	assert.Equal(t, int64(2), stats.TotalDropped)
}

func TestBufferAddBatch(t *testing.T) {
	buffer := NewBuffer(10, zerolog.Nop())

	batch := make([]*Trajectory, 5)
	for i := range batch {
		batch[i] = trajectoryFixture(fmt.Sprintf("ep-%d", i), 3)
	}

	require.NoError(t, buffer.AddBatch(batch))
	assert.Equal(t, 5, buffer.Size())
	assert.Len(t, buffer.GetAll(), 5)
}

func TestBufferGetLatestPeeks(t *testing.T) {
	buffer := NewBuffer(10, zerolog.Nop())
	fillBuffer(t, buffer, "a", "b", "c", "d", "e", "f", "g")

	assert.Equal(t, []string{"e", "f", "g"}, episodeIDs(buffer.GetLatest(3)))

	// Peeking removes nothing.
	assert.Equal(t, 7, buffer.Size())

	// More than available returns everything buffered.
	assert.Len(t, buffer.GetLatest(10), 7)
}

func TestBufferClear(t *testing.T) {
	buffer := NewBuffer(10, zerolog.Nop())
	fillBuffer(t, buffer, "a", "b", "c", "d", "e")

	buffer.Clear()
	assert.Equal(t, 0, buffer.Size())

	require.NoError(t, buffer.Add(trajectoryFixture("after-clear", 1)))
	assert.Equal(t, 1, buffer.Size())
}

func TestBufferConcurrentAddAndGet(t *testing.T) {
	buffer := NewBuffer(1000, zerolog.Nop())

	const writers = 10
	const addsPerWriter = 100

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < addsPerWriter; i++ {
				buffer.Add(trajectoryFixture(fmt.Sprintf("w%d-%d", w, i), 2))
			}
		}(w)
	}
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				buffer.Get(5)
				time.Sleep(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(writers*addsPerWriter), buffer.Stats().TotalAdded)
}

func TestBufferStreamChannel(t *testing.T) {
	buffer := NewBuffer(10, zerolog.Nop())
	stream := buffer.StreamChannel()

	require.NoError(t, buffer.Add(trajectoryFixture("streamed", 3)))

	select {
	case traj := <-stream:
		assert.Equal(t, "streamed", traj.EpisodeID)
	case <-time.After(time.Second):
		t.Fatal("expected trajectory on stream channel")
	}
}

func TestBufferClose(t *testing.T) {
	buffer := NewBuffer(10, zerolog.Nop())
	require.NoError(t, buffer.Add(trajectoryFixture("kept", 1)))

	require.NoError(t, buffer.Close())

	assert.ErrorIs(t, buffer.Add(trajectoryFixture("late", 1)), ErrBufferClosed)

	// Closing twice is fine, and buffered data stays readable.
	assert.NoError(t, buffer.Close())
	assert.Equal(t, []string{"kept"}, episodeIDs(buffer.GetAll()))
}
