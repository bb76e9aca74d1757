// Package simulation assembles the services that a configuration bus
// simulation needs: the event-driven engine, the trace recorder, and the
// monitoring server.
package simulation

import (
	"github.com/openesl/confbus/bustrace"
	"github.com/openesl/confbus/datarecording"
	"github.com/openesl/confbus/monitoring"
	"github.com/openesl/confbus/sim"
	"github.com/openesl/confbus/slave"
)

// A Simulation provides the services required to define a simulation.
type Simulation struct {
	id string

	engine       sim.Engine
	dataRecorder datarecording.DataRecorder
	tracer       *bustrace.Tracer
	monitor      *monitoring.Monitor

	components    []sim.Component
	compNameIndex map[string]int
	ports         []sim.Port
	portNameIndex map[string]int
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetDataRecorder returns the data recorder used in the simulation.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterComponent registers a component with the simulation.
func (s *Simulation) RegisterComponent(c sim.Component) {
	compName := c.Name()
	if _, found := s.compNameIndex[compName]; found {
		panic("component " + compName + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1

	for _, p := range c.Ports() {
		s.registerPort(p)
	}

	if s.monitor != nil {
		s.monitor.RegisterComponent(c)
	}
}

// RegisterSlave registers a slave with the simulation and hooks the access
// tracer to it.
func (s *Simulation) RegisterSlave(c *slave.Comp) {
	s.RegisterComponent(c)
	c.AcceptHook(s.tracer)
}

// registerPort registers a port with the simulation. A port that is
// re-exported by a wrapper component may be registered more than once; later
// registrations of the same port are ignored.
func (s *Simulation) registerPort(p sim.Port) {
	portName := p.Name()
	if index, found := s.portNameIndex[portName]; found {
		if s.ports[index] != p {
			panic("a different port named " + portName +
				" is already registered")
		}

		return
	}

	s.ports = append(s.ports, p)
	s.portNameIndex[portName] = len(s.ports) - 1
}

// GetComponentByName returns the component with the given name.
func (s *Simulation) GetComponentByName(name string) sim.Component {
	index, found := s.compNameIndex[name]
	if !found {
		panic("component " + name + " is not registered")
	}

	return s.components[index]
}

// GetPortByName returns the port with the given name.
func (s *Simulation) GetPortByName(name string) sim.Port {
	index, found := s.portNameIndex[name]
	if !found {
		panic("port " + name + " is not registered")
	}

	return s.ports[index]
}

// Components returns all the registered components.
func (s *Simulation) Components() []sim.Component {
	return s.components
}

// Terminate terminates the simulation.
func (s *Simulation) Terminate() {
	s.dataRecorder.Close()
}
