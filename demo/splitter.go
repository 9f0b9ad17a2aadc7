package demo

import (
	"time"

	"microbus/component"
)

// A and B are the two payload types a Splitter alternates between,
// published dynamically by runtime type via the AnyValue RetShape rather
// than a single static Handle type.
type A struct{ N int }

type B struct{ N int }

type splitter struct {
	n int
}

// NewSplitter declares a Loop active that alternates publishing A and B
// through bus.PublishAny, exercising the AnyValue RetShape.
func NewSplitter() component.Spec {
	b := component.NewBuilder("splitter", func() *splitter { return &splitter{} })

	component.Active(b, func(s *splitter) component.Return {
		s.n++
		time.Sleep(5 * time.Millisecond)

		if s.n%2 == 0 {
			return component.AnyValue(B{N: s.n})
		}

		return component.AnyValue(A{N: s.n})
	})

	return b.Build()
}

type aCollector struct {
	count int
}

// NewACollector declares a handler on A.
func NewACollector() component.Spec {
	b := component.NewBuilder("a-collector", func() *aCollector { return &aCollector{} })

	component.Handle(b, func(c *aCollector, msg *A) component.Return {
		c.count++
		return component.Unit()
	})

	return b.Build()
}

type bCollector struct {
	count int
}

// NewBCollector declares a handler on B.
func NewBCollector() component.Spec {
	b := component.NewBuilder("b-collector", func() *bCollector { return &bCollector{} })

	component.Handle(b, func(c *bCollector, msg *B) component.Return {
		c.count++
		return component.Unit()
	})

	return b.Build()
}
