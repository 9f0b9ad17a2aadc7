// Package bus implements the typed fanout bus: a mapping from message type
// to the list of subscriber channels for that type, with publish dispatch,
// a back-pressure policy, and startup sealing.
//
// Subscriber lists are type-erased and keyed by runtime type identity,
// frozen to an immutable snapshot at seal time; after that, publish reads
// only the snapshot. The sealed publish path is not lock-free: it still
// takes the bus's read lock and the per-type index's mutex briefly to
// reach that snapshot.
package bus

import (
	"reflect"
	"sync"

	"microbus/errors"
	"microbus/logger"
)

// Subscription is the receive end of a single-producer-multiple-consumer
// channel of shared *T values. It is uniquely owned by the worker task
// that polls it.
type Subscription[T any] struct {
	ch <-chan *T
}

// Recv blocks until a value is published or the subscription's channel is
// closed. The bus closes only a subscription taken out after Seal, which
// it hands back already closed.
func (s *Subscription[T]) Recv() (*T, bool) {
	v, ok := <-s.ch
	return v, ok
}

// C exposes the raw channel for use in select statements, e.g. alongside a
// stop signal.
func (s *Subscription[T]) C() <-chan *T { return s.ch }

// typeIndexEntry is the type-erased handle every concrete typeIndex[T]
// satisfies, so the bus can hold one map keyed by reflect.Type while still
// downcasting to the concrete sender slice on the generic fast path.
type typeIndexEntry interface {
	freeze()
}

// typeIndex is the bus's per-message-type list of subscriber sender ends,
// plus the immutable snapshot built once at seal time.
type typeIndex[T any] struct {
	mu     sync.Mutex
	any    []chan *T
	frozen []chan *T
	sealed bool
}

func (t *typeIndex[T]) freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sealed {
		return
	}

	t.frozen = append([]chan *T(nil), t.any...)
	t.sealed = true
}

// ErasedEvent pairs a publish function pointer with a type-erased payload.
// The payload's runtime type must match what the publish function expects;
// a mismatch is a programming error and PublishErased panics rather than
// silently dropping the value.
type ErasedEvent struct {
	Publish func(b *Bus, payload any)
	Payload any
}

// Bus holds the routing table: a map from message type to type-erased
// TypeIndex, the default channel capacity, and the sealed flag.
type Bus struct {
	mu              sync.RWMutex
	subs            map[reflect.Type]typeIndexEntry
	publishFns      map[reflect.Type]func(b *Bus, payload any)
	defaultCapacity int
	sealed          bool
	log             logger.Logger
}

// New constructs a Bus with the given default channel capacity for every
// subscription it creates.
func New(defaultCapacity int, log logger.Logger) *Bus {
	if log == nil {
		log = logger.Noop()
	}

	if defaultCapacity <= 0 {
		defaultCapacity = 1
	}

	return &Bus{
		subs:            make(map[reflect.Type]typeIndexEntry),
		publishFns:      make(map[reflect.Type]func(b *Bus, payload any)),
		defaultCapacity: defaultCapacity,
		log:             log.WithComponent("BUS"),
	}
}

func typeIndexFor[T any](b *Bus) *typeIndex[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()

	b.mu.RLock()
	entry, ok := b.subs[t]
	b.mu.RUnlock()

	if ok {
		idx, cast := entry.(*typeIndex[T])
		if !cast {
			panic(errors.ErrDowncastMismatch)
		}

		return idx
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if entry, ok := b.subs[t]; ok {
		idx, cast := entry.(*typeIndex[T])
		if !cast {
			panic(errors.ErrDowncastMismatch)
		}

		return idx
	}

	idx := &typeIndex[T]{}
	b.subs[t] = idx
	b.publishFns[t] = func(bus *Bus, payload any) {
		v, ok := payload.(*T)
		if !ok {
			panic(errors.ErrDowncastMismatch)
		}

		publishValue(bus, idx, v)
	}

	return idx
}

// Subscribe creates a fresh Subscription[T] with capacity equal to the
// bus's default capacity. Calling Subscribe after Seal is a logic error:
// by policy it is tolerated with a loud warning rather than a panic (see
// DESIGN.md's Open Question resolution). The returned subscription is
// already closed: it never receives anything, and Recv reports ok=false
// at once.
func Subscribe[T any](b *Bus) Subscription[T] {
	b.mu.RLock()
	sealed := b.sealed
	b.mu.RUnlock()

	idx := typeIndexFor[T](b)

	ch := make(chan *T, b.defaultCapacity)

	if sealed {
		b.log.Warn().Msg("subscribe called after bus sealed; returned subscription will never receive")
		close(ch)

		return Subscription[T]{ch: ch}
	}

	idx.mu.Lock()
	idx.any = append(idx.any, ch)
	idx.mu.Unlock()

	return Subscription[T]{ch: ch}
}

// Publish delivers value to every currently open subscriber of T.
//
// Back-pressure policy: for each subscriber a non-blocking send is tried
// first; subscribers whose channel is full are collected into a pending
// list and drained in order with blocking sends afterward, so a full
// subscriber does not delay delivery to subscribers that still have room.
// A pending subscriber that stays full does delay the pending subscribers
// after it. No send clones the value: Go shares *T by pointer.
func Publish[T any](b *Bus, value T) {
	idx := typeIndexFor[T](b)
	publishValue(b, idx, &value)
}

func publishValue[T any](b *Bus, idx *typeIndex[T], v *T) {
	idx.mu.Lock()
	sealed := idx.sealed
	senders := idx.frozen
	if !sealed {
		senders = idx.any
	}
	idx.mu.Unlock()

	switch len(senders) {
	case 0:
		return
	case 1:
		sendOne(senders[0], v)
	default:
		pending := make([]chan *T, 0, len(senders))

		for _, ch := range senders {
			select {
			case ch <- v:
			default:
				pending = append(pending, ch)
			}
		}

		for _, ch := range pending {
			sendOne(ch, v)
		}
	}
}

func sendOne[T any](ch chan *T, v *T) {
	select {
	case ch <- v:
		return
	default:
	}

	defer func() { _ = recover() }()
	ch <- v
}

// PublishErased invokes the event's embedded publish function, which must
// statically dispatch to Publish[T] for the event's true type. A mismatch
// between Payload's runtime type and what Publish expects is a programming
// error in the caller's code generation and panics.
func (b *Bus) PublishErased(ev ErasedEvent) {
	ev.Publish(b, ev.Payload)
}

// PublishAny looks up the subscriber list by value's runtime type and, if
// any exist, forwards to Publish[T] via the stored dispatch closure. If no
// component ever subscribed to that type the value is dropped silently.
// Go has no owned-box vs shared-arc distinction, so this single function
// serves both the AnyBox and AnyArc return shapes from spec.md §4.5; see
// DESIGN.md.
func (b *Bus) PublishAny(value any) {
	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	b.mu.RLock()
	fn, ok := b.publishFns[t]
	b.mu.RUnlock()

	if !ok {
		return
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		fn(b, value)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(rv)
	fn(b, ptr.Interface())
}

// Seal freezes the subscription table: for every TypeIndex it builds an
// immutable snapshot of the sender list, after which Publish reads only
// the snapshot. Idempotent.
func (b *Bus) Seal() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed {
		return
	}

	for _, entry := range b.subs {
		entry.freeze()
	}

	b.sealed = true
}

// Sealed reports whether Seal has been called.
func (b *Bus) Sealed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.sealed
}

// DebugSubscriberCount reports how many subscriptions of T currently exist
// on the bus. It exists for tests.
func DebugSubscriberCount[T any](b *Bus) int {
	idx := typeIndexFor[T](b)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.sealed {
		return len(idx.frozen)
	}

	return len(idx.any)
}
