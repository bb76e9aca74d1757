package slave

import (
	"github.com/openesl/confbus/regfile"
	"github.com/openesl/confbus/sim"
)

// A Builder can build configuration bus slaves.
type Builder struct {
	engine  sim.Engine
	freq    sim.Freq
	cfg     regfile.Config
	bufSize int
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:    1 * sim.GHz,
		cfg:     regfile.DefaultConfig(),
		bufSize: 4,
	}
}

// WithEngine sets the event-driven simulation engine to use.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the slave's clock domain.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithConfig sets the geometry of the register file.
func (b Builder) WithConfig(cfg regfile.Config) Builder {
	b.cfg = cfg
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
	c.regs = regfile.New(b.cfg)

	c.topPort = sim.NewPort(c, b.bufSize, b.bufSize, name+".Top")
	c.AddPort("Top", c.topPort)

	c.ctrlPort = sim.NewPort(c, b.bufSize, b.bufSize, name+".Ctrl")
	c.AddPort("Ctrl", c.ctrlPort)

	return c
}
