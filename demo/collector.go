package demo

import (
	"fmt"

	"microbus/component"
)

type collector struct {
	strict bool
	latest int
}

func newCollector(name string, strict bool) component.Spec {
	b := component.NewBuilder(name, func() *collector { return &collector{strict: strict} })

	component.Handle(b, func(c *collector, msg *Tick) component.Return {
		c.latest = msg.N

		if c.strict && msg.N%2 != 0 {
			return component.Err(fmt.Errorf("collector: odd tick %d rejected", msg.N))
		}

		return component.Unit()
	})

	return b.Build()
}

// NewCollector declares a handler on Tick that stores the latest value
// and never errors.
func NewCollector() component.Spec {
	return newCollector("collector", false)
}

// NewCollectorStrict is the same handler but rejects odd ticks with an
// error, exercising the runtime's log-and-continue handling of a handler
// error: neither the component nor any other subscriber is affected.
func NewCollectorStrict() component.Spec {
	return newCollector("collector-strict", true)
}
