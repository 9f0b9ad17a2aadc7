package inspector

import (
	tea "github.com/charmbracelet/bubbletea"

	"microbus/bus"
	"microbus/component"
)

// eventMsg wraps a LifecycleEvent as it crosses into Bubble Tea's message
// loop.
type eventMsg component.LifecycleEvent

// subscriber forwards component.LifecycleEvent messages from a Bus to a
// running Bubble Tea program. It never closes its subscription channel
// itself; it returns when the program's send loop is torn down alongside
// the program exiting.
type subscriber struct {
	sub bus.Subscription[component.LifecycleEvent]
}

func newSubscriber(b *bus.Bus) *subscriber {
	return &subscriber{sub: bus.Subscribe[component.LifecycleEvent](b)}
}

// listen returns a Bubble Tea command that blocks for exactly one event
// and then resolves, so the model can re-issue it after each Update — the
// conventional Bubble Tea pattern for bridging an external channel into
// the Msg stream without a background goroutine calling p.Send directly.
func (s *subscriber) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := s.sub.Recv()
		if !ok {
			return nil
		}

		return eventMsg(*ev)
	}
}
