package demo

import "microbus/component"

// Cfg is the business configuration Echo requires at init; a missing Cfg
// fails the component's startup.
type Cfg struct{ Val int }

// Echoed is published once, during init, with the configured value.
type Echoed struct{ Val int }

type echo struct{}

// NewEcho declares a component whose init requires Cfg to be present in
// the frozen config store and publishes Echoed from it.
func NewEcho() component.Spec {
	b := component.NewBuilder("echo", func() *echo { return &echo{} })

	component.InitWithConfig(b, func(_ *echo, cfg *Cfg) component.Return {
		return component.Value(Echoed{Val: cfg.Val})
	})

	return b.Build()
}
