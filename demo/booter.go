package demo

import "microbus/component"

// Boot is published exactly once, after the startup barrier releases,
// before any component's steady state begins.
type Boot struct{ Generation int }

type booter struct{}

// NewBooter declares a Once active publishing Boot with the Value
// RetShape.
func NewBooter() component.Spec {
	b := component.NewBuilder("booter", func() *booter { return &booter{} })

	component.Once(b, func(*booter) component.Return {
		return component.Value(Boot{Generation: 0})
	})

	return b.Build()
}
