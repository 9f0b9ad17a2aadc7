package stopsignal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_New_NotSet(t *testing.T) {
	f := New()
	assert.False(t, f.IsSet())
}

func Test_Trigger_WakesWaiters(t *testing.T) {
	f := New()

	done := make(chan struct{})
	go func() {
		f.WaitUntilSet()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("waiter woke before trigger")
	case <-time.After(10 * time.Millisecond):
	}

	f.Trigger()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("waiter did not wake after trigger")
	}

	assert.True(t, f.IsSet())
}

func Test_Trigger_IdempotentAcrossRepeatedCalls(t *testing.T) {
	f := New()

	assert.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			f.Trigger()
		}
	})
	assert.True(t, f.IsSet())
}

func Test_WaitUntilSet_ReturnsImmediatelyIfAlreadySet(t *testing.T) {
	f := New()
	f.Trigger()

	done := make(chan struct{})
	go func() {
		f.WaitUntilSet()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(50 * time.Millisecond):
		t.Fatal("WaitUntilSet blocked despite already-set flag")
	}
}
