package demo

import (
	"time"

	"microbus/component"
)

// Tick is published once per producer loop iteration, carrying a strictly
// increasing sequence number.
type Tick struct{ N int }

type producer struct {
	n int
}

// NewProducer declares a Loop active publishing Tick with the Value
// RetShape, demonstrating the plain incrementing-publisher scenario.
func NewProducer() component.Spec {
	b := component.NewBuilder("producer", func() *producer { return &producer{} })

	component.Active(b, func(p *producer) component.Return {
		p.n++
		time.Sleep(5 * time.Millisecond)

		return component.Value(Tick{N: p.n})
	})

	return b.Build()
}
