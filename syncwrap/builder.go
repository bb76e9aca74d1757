package syncwrap

import (
	"github.com/openesl/confbus/regfile"
	"github.com/openesl/confbus/sim"
	"github.com/openesl/confbus/slave"
)

// A Builder can build domain-sync wrappers together with the slaves they
// wrap.
type Builder struct {
	engine       sim.Engine
	busFreq      sim.Freq
	observerFreq sim.Freq
	cfg          regfile.Config
	bufSize      int
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		busFreq:      1 * sim.GHz,
		observerFreq: 1 * sim.GHz,
		cfg:          regfile.DefaultConfig(),
		bufSize:      4,
	}
}

// WithEngine sets the event-driven simulation engine to use.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithBusFreq sets the frequency of the bus clock domain of the wrapped
// slave.
func (b Builder) WithBusFreq(freq sim.Freq) Builder {
	b.busFreq = freq
	return b
}

// WithObserverFreq sets the frequency of the clock domain that observes the
// register file.
func (b Builder) WithObserverFreq(freq sim.Freq) Builder {
	b.observerFreq = freq
	return b
}

// WithConfig sets the geometry of the register file of the wrapped slave.
func (b Builder) WithConfig(cfg regfile.Config) Builder {
	b.cfg = cfg
	return b
}

// WithBufSize sets the capacity of the port buffers of the wrapped slave.
func (b Builder) WithBufSize(bufSize int) Builder {
	b.bufSize = bufSize
	return b
}

// Build creates a wrapper and the slave inside it. The slave's Top and Ctrl
// ports are re-exported on the wrapper so that external components connect
// to the wrapper as if it were the slave itself.
func (b Builder) Build(name string) *Comp {
	c := &Comp{}
	c.TickingComponent = sim.NewTickingComponent(
		name, b.engine, b.observerFreq, c)

	c.slave = slave.MakeBuilder().
		WithEngine(b.engine).
		WithFreq(b.busFreq).
		WithConfig(b.cfg).
		WithBufSize(b.bufSize).
		Build(name + ".Slave")

	c.AddPort("Top", c.slave.GetPortByName("Top"))
	c.AddPort("Ctrl", c.slave.GetPortByName("Ctrl"))

	c.slave.AcceptHook(&slaveWatcher{c: c})

	return c
}
