package bus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tick struct{ N int }

type other struct{ Name string }

func Test_New(t *testing.T) {
	b := New(8, nil)
	assert.NotNil(t, b)
	assert.False(t, b.Sealed())
}

func Test_PublishSubscribe(t *testing.T) {
	b := New(8, nil)

	sub := Subscribe[tick](b)

	Publish(b, tick{N: 1})

	v, ok := sub.Recv()
	require.True(t, ok)
	assert.Equal(t, 1, v.N)
}

func Test_FanoutCompleteness(t *testing.T) {
	b := New(8, nil)

	const subscribers = 5

	subs := make([]Subscription[tick], subscribers)
	for i := range subs {
		subs[i] = Subscribe[tick](b)
	}

	b.Seal()
	Publish(b, tick{N: 7})

	for i := range subs {
		v, ok := subs[i].Recv()
		require.True(t, ok, "subscriber %d", i)
		assert.Equal(t, 7, v.N)
	}
}

func Test_PerPublisherOrdering(t *testing.T) {
	b := New(8, nil)
	sub := Subscribe[tick](b)
	b.Seal()

	for i := 0; i < 10; i++ {
		Publish(b, tick{N: i})
	}

	for i := 0; i < 10; i++ {
		v, ok := sub.Recv()
		require.True(t, ok)
		assert.Equal(t, i, v.N)
	}
}

func Test_DistinctTypesDoNotCrossDeliver(t *testing.T) {
	b := New(8, nil)

	tickSub := Subscribe[tick](b)
	otherSub := Subscribe[other](b)

	Publish(b, tick{N: 1})
	Publish(b, other{Name: "x"})

	v, ok := tickSub.Recv()
	require.True(t, ok)
	assert.Equal(t, 1, v.N)

	o, ok := otherSub.Recv()
	require.True(t, ok)
	assert.Equal(t, "x", o.Name)
}

func Test_SealFreezesSnapshot_LateSubscribeIsLoudAndInert(t *testing.T) {
	b := New(1, nil)
	b.Seal()

	sub := Subscribe[tick](b)
	Publish(b, tick{N: 1})

	select {
	case _, ok := <-sub.C():
		assert.False(t, ok, "post-seal subscription should never observe a publication")
	case <-time.After(20 * time.Millisecond):
	}
}

func Test_SealIsIdempotent(t *testing.T) {
	b := New(8, nil)
	Subscribe[tick](b)
	b.Seal()
	b.Seal()
	assert.True(t, b.Sealed())
}

func Test_BackpressureFullChannelDoesNotBlockOtherSubscribers(t *testing.T) {
	b := New(1, nil)

	slow := Subscribe[tick](b)
	fast := Subscribe[tick](b)
	b.Seal()

	Publish(b, tick{N: 1}) // fills both channels (capacity 1)

	v, ok := fast.Recv()
	require.True(t, ok)
	assert.Equal(t, 1, v.N)

	done := make(chan struct{})

	go func() {
		Publish(b, tick{N: 2}) // slow's channel is full; fast's isn't
		close(done)
	}()

	v, ok = fast.Recv()
	require.True(t, ok)
	assert.Equal(t, 2, v.N)

	v, ok = slow.Recv()
	require.True(t, ok)
	assert.Equal(t, 1, v.N)

	<-done

	v, ok = slow.Recv()
	require.True(t, ok)
	assert.Equal(t, 2, v.N)
}

func Test_PublishAny_RoutesByRuntimeType(t *testing.T) {
	b := New(8, nil)

	subA := Subscribe[tick](b)
	subB := Subscribe[other](b)

	b.PublishAny(tick{N: 3})
	b.PublishAny(&other{Name: "y"})

	a, ok := subA.Recv()
	require.True(t, ok)
	assert.Equal(t, 3, a.N)

	o, ok := subB.Recv()
	require.True(t, ok)
	assert.Equal(t, "y", o.Name)
}

func Test_PublishAny_NoSubscriberDropsSilently(t *testing.T) {
	b := New(8, nil)
	assert.NotPanics(t, func() { b.PublishAny(tick{N: 1}) })
}

func Test_PublishErased_DispatchesThroughEmbeddedFunc(t *testing.T) {
	b := New(8, nil)
	sub := Subscribe[tick](b)

	ev := ErasedEvent{
		Publish: func(bus *Bus, payload any) { Publish(bus, *payload.(*tick)) },
		Payload: &tick{N: 9},
	}
	b.PublishErased(ev)

	v, ok := sub.Recv()
	require.True(t, ok)
	assert.Equal(t, 9, v.N)
}

func Test_PublishErased_TypeMismatchPanics(t *testing.T) {
	b := New(8, nil)

	ev := ErasedEvent{
		Publish: func(bus *Bus, payload any) { Publish(bus, *payload.(*tick)) },
		Payload: &other{Name: "boom"},
	}

	assert.Panics(t, func() { b.PublishErased(ev) })
}

func Test_DebugSubscriberCount(t *testing.T) {
	b := New(8, nil)
	assert.Equal(t, 0, DebugSubscriberCount[tick](b))

	Subscribe[tick](b)
	Subscribe[tick](b)
	assert.Equal(t, 2, DebugSubscriberCount[tick](b))

	b.Seal()
	assert.Equal(t, 2, DebugSubscriberCount[tick](b))
}

func Test_ConcurrentPublishIsRace_Free(t *testing.T) {
	b := New(64, nil)

	const subscribers = 8

	subs := make([]Subscription[tick], subscribers)
	for i := range subs {
		subs[i] = Subscribe[tick](b)
	}

	b.Seal()

	var wg sync.WaitGroup

	const publishers = 4

	const perPublisher = 50

	wg.Add(publishers)

	for p := 0; p < publishers; p++ {
		go func() {
			defer wg.Done()

			for i := 0; i < perPublisher; i++ {
				Publish(b, tick{N: i})
			}
		}()
	}

	var readers sync.WaitGroup

	readers.Add(subscribers)

	for i := range subs {
		go func(s Subscription[tick]) {
			defer readers.Done()

			for n := 0; n < publishers*perPublisher; n++ {
				_, ok := s.Recv()
				require.True(t, ok)
			}
		}(subs[i])
	}

	wg.Wait()
	readers.Wait()
}
