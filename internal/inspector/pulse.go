package inspector

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

const (
	pulseFPS              = 12
	pulseAngularFrequency = 6.0
	pulseDampingRatio     = 0.6
	pulseThreshold        = 0.3

	tickInterval = time.Second / pulseFPS
)

// pulse is a small spring-driven "alive" indicator next to the title,
// nudged toward 1.0 every time an event arrives and decaying back to 0
// between events, so a quiet bus visibly goes dim.
type pulse struct {
	spring   harmonica.Spring
	position float64
	velocity float64
	target   float64
}

func newPulse() pulse {
	return pulse{
		spring: harmonica.NewSpring(harmonica.FPS(pulseFPS), pulseAngularFrequency, pulseDampingRatio),
	}
}

func (p *pulse) kick() {
	p.target = 1.0
}

func (p *pulse) tick() {
	p.position, p.velocity = p.spring.Update(p.position, p.velocity, p.target)
	p.target = 0
}

func (p pulse) frame() string {
	if p.position < pulseThreshold {
		return pulseOffStyle.Render("●")
	}

	return pulseOnStyle.Render("●")
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
