package component

import (
	"microbus/barrier"
	"microbus/bus"
	"microbus/config"
	"microbus/stopsignal"
)

// Context is the handle injected into any framework-invoked function that
// declares it: the bus publish path, the stop signal, the barrier, and the
// frozen config store. It is cloneable ("forked") for each spawned worker;
// all clones share the same underlying bus/stop/barrier/config.
type Context struct {
	Bus     *bus.Bus
	Stop    *stopsignal.Flag
	Barrier *barrier.StartupBarrier
	Config  *config.Store

	// Component is the name of the owning component, for logging.
	Component string
}

// Fork returns a copy of the context for a newly spawned worker. All
// fields point at shared state; nothing here is deep-copied.
func (c *Context) Fork() *Context {
	cp := *c
	return &cp
}
