package busdriver

import (
	"github.com/openesl/confbus/sim"
)

// A Builder can build bus drivers.
type Builder struct {
	engine        sim.Engine
	freq          sim.Freq
	slaveBusPort  sim.RemotePort
	slaveCtrlPort sim.RemotePort
	bufSize       int
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:    1 * sim.GHz,
		bufSize: 4,
	}
}

// WithEngine sets the event-driven simulation engine to use.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver's clock domain.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithSlaveBusPort sets the remote port that accesses are sent to.
func (b Builder) WithSlaveBusPort(port sim.RemotePort) Builder {
	b.slaveBusPort = port
	return b
}

// WithSlaveCtrlPort sets the remote port that control messages are sent to.
func (b Builder) WithSlaveCtrlPort(port sim.RemotePort) Builder {
	b.slaveCtrlPort = port
	return b
}

// WithBufSize sets the capacity of the port buffers.
func (b Builder) WithBufSize(bufSize int) Builder {
	b.bufSize = bufSize
	return b
}

// Build creates a new Comp with the given name.
func (b Builder) Build(name string) *Comp {
	c := &Comp{}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.slaveBusPort = b.slaveBusPort
	c.slaveCtrlPort = b.slaveCtrlPort

	c.busPort = sim.NewPort(c, b.bufSize, b.bufSize, name+".Bus")
	c.AddPort("Bus", c.busPort)

	c.ctrlPort = sim.NewPort(c, b.bufSize, b.bufSize, name+".Ctrl")
	c.AddPort("Ctrl", c.ctrlPort)

	return c
}
