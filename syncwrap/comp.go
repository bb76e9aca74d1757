// Package syncwrap wraps a configuration bus slave so that its register
// contents can be observed from another clock domain. The bus and control
// ports of the slave pass through unchanged; the wrapper only adds a
// resampler that copies the whole register file into the observer domain.
package syncwrap

import (
	"sync"

	"github.com/openesl/confbus/regfile"
	"github.com/openesl/confbus/sim"
	"github.com/openesl/confbus/slave"
)

// A Comp resamples the register file of a wrapped slave at the observer
// clock frequency. The copy is wholesale, so an observer never sees a torn
// update, only a stale one.
type Comp struct {
	*sim.TickingComponent

	slave *slave.Comp

	mu           sync.Mutex
	dirty        bool
	snapshot     regfile.Snapshot
	lastResample sim.VTimeInSec
}

// Slave returns the wrapped slave.
func (c *Comp) Slave() *slave.Comp {
	return c.slave
}

// Snapshot returns the register file contents as seen from the observer
// domain. It returns nil until the first resample has happened.
func (c *Comp) Snapshot() regfile.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot
}

// LastResampleTime returns the time of the most recent resample.
func (c *Comp) LastResampleTime() sim.VTimeInSec {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastResample
}

// Tick copies the register file into the observer domain if it changed
// since the previous resample.
func (c *Comp) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return false
	}

	c.snapshot = c.slave.RegisterFile().Snapshot()
	c.lastResample = c.CurrentTime()
	c.dirty = false

	return true
}

func (c *Comp) markDirty() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()

	c.TickLater()
}

// slaveWatcher wakes the resampler when the wrapped slave changes its
// register file.
type slaveWatcher struct {
	c *Comp
}

func (w *slaveWatcher) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case slave.HookPosAccessDone:
		detail := ctx.Detail.(slave.AccessDetail)
		if !detail.IsWrite || detail.Err {
			return
		}
	case slave.HookPosReset:
	default:
		return
	}

	w.c.markDirty()
}
