// Package inspector implements a Bubble Tea TUI that attaches to a running
// App's bus as an out-of-band subscriber and renders a live feed of
// component.LifecycleEvent messages — the diagnostic consumer an
// application's bus_handle exists for.
package inspector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"microbus/bus"
	"microbus/component"
)

// defaultBufferSize bounds how many events the model keeps rendered at
// once; older entries are evicted as new ones arrive.
const defaultBufferSize = 500

// Model is the inspector's Bubble Tea model.
type Model struct {
	sub *subscriber

	entries []component.LifecycleEvent
	maxSize int

	viewport   viewport.Model
	autoscroll bool
	pulse      pulse

	width, height int
	ready         bool

	total  int
	failed int
}

// New builds an inspector model attached to b, subscribing immediately.
// Call before the owning App's Start seals the bus, or the subscription
// comes back permanently empty; call RunModel afterward to drive it.
func New(b *bus.Bus) Model {
	return Model{
		sub:        newSubscriber(b),
		entries:    make([]component.LifecycleEvent, 0, defaultBufferSize),
		maxSize:    defaultBufferSize,
		autoscroll: true,
		pulse:      newPulse(),
	}
}

// Run starts a full-screen Bubble Tea program driving m until the user
// quits (q, ctrl+c) or the program is otherwise terminated.
func Run(b *bus.Bus) error {
	return RunModel(New(b))
}

// RunModel drives an already-built Model full-screen until the user quits.
// Build m with New before the application's bus is sealed — a Model built
// from New after the bus seals gets a permanently empty subscription — and
// pass it here once the application has started.
func RunModel(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sub.listen(), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 1
		vpHeight := msg.Height - headerHeight - footerHeight

		if vpHeight < 0 {
			vpHeight = 0
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}

		m.updateContent()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.viewport.GotoBottom()
			}

			return m, nil
		case "c":
			m.entries = m.entries[:0]
			m.total = 0
			m.failed = 0
			m.updateContent()

			return m, nil
		}

		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)

		return m, cmd

	case eventMsg:
		m.addEvent(component.LifecycleEvent(msg))
		m.pulse.kick()
		m.updateContent()

		return m, m.sub.listen()

	case tickMsg:
		m.pulse.tick()

		return m, tickCmd()
	}

	return m, nil
}

func (m *Model) addEvent(ev component.LifecycleEvent) {
	m.total++
	if ev.Phase == component.PhaseFailed {
		m.failed++
	}

	if len(m.entries) >= m.maxSize {
		m.entries = m.entries[1:]
	}

	m.entries = append(m.entries, ev)
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}

	var b strings.Builder

	for _, ev := range m.entries {
		fmt.Fprintf(&b, "%s %-24s %s", componentStyle.Render(ev.Component), renderPhase(ev.Phase), "\n")

		if ev.Err != nil {
			fmt.Fprintf(&b, "  %s\n", errStyle.Render(ev.Err.Error()))
		}
	}

	m.viewport.SetContent(b.String())

	if m.autoscroll {
		m.viewport.GotoBottom()
	}
}

func (m Model) View() string {
	if !m.ready {
		return "initializing…"
	}

	header := fmt.Sprintf(
		"%s %s  events=%d failed=%d",
		titleStyle.Render("microbus inspector"),
		m.pulse.frame(),
		m.total,
		m.failed,
	)

	footer := helpStyle.Render("q quit · a toggle autoscroll · c clear")

	return header + "\n" + m.viewport.View() + "\n" + footer
}
