package barrier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ReleasesWhenAllArrive(t *testing.T) {
	b := New(3, nil)

	assert.Equal(t, StateWaiting, b.State())

	b.Arrive(context.Background())
	assert.Equal(t, StateWaiting, b.State())

	b.Arrive(context.Background())
	assert.Equal(t, StateWaiting, b.State())

	b.Arrive(context.Background())

	failed, err := b.WaitAll()
	require.False(t, failed)
	assert.NoError(t, err)
	assert.Equal(t, StateReleased, b.State())
}

func Test_MarkFailedWakesWaiters(t *testing.T) {
	b := New(3, nil)

	cause := errors.New("init blew up")

	var wg sync.WaitGroup

	wg.Add(1)

	var gotFailed bool

	var gotErr error

	go func() {
		defer wg.Done()
		gotFailed, gotErr = b.WaitAll()
	}()

	b.Arrive(context.Background())
	b.MarkFailed(context.Background(), cause)

	wg.Wait()

	assert.True(t, gotFailed)
	assert.ErrorIs(t, gotErr, cause)
	assert.Equal(t, StateFailed, b.State())
}

func Test_TerminalStatesAreAbsorbing(t *testing.T) {
	b := New(1, nil)

	b.Arrive(context.Background())
	require.Equal(t, StateReleased, b.State())

	b.MarkFailed(context.Background(), errors.New("too late"))
	assert.Equal(t, StateReleased, b.State(), "failure after release must not retroactively fail the barrier")
}

func Test_ZeroTotalReleasesImmediately(t *testing.T) {
	b := New(0, nil)

	failed, err := b.WaitAll()
	assert.False(t, failed)
	assert.NoError(t, err)
}

func Test_WaitAllBlocksUntilTerminal(t *testing.T) {
	b := New(2, nil)

	done := make(chan struct{})

	go func() {
		b.WaitAll()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("WaitAll returned before barrier reached a terminal state")
	case <-time.After(20 * time.Millisecond):
	}

	b.Arrive(context.Background())
	b.Arrive(context.Background())

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("WaitAll did not return after barrier released")
	}
}
