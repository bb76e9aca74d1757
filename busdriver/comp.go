// Package busdriver provides a scripted bus master that issues configuration
// accesses to a slave, one at a time, and records the outcome of each.
package busdriver

import (
	"log"
	"reflect"

	"github.com/openesl/confbus/conf"
	"github.com/openesl/confbus/sim"
)

// A Result records the outcome of one completed access.
type Result struct {
	Address   uint64
	IsWrite   bool
	Data      uint64
	Err       bool
	IssueTime sim.VTimeInSec
	DoneTime  sim.VTimeInSec
}

type command struct {
	isWrite bool
	isReset bool
	address uint64
	data    uint64
}

// A Comp is a scripted configuration bus master. It keeps at most one access
// outstanding, matching the single-transfer handshake of the bus.
type Comp struct {
	*sim.TickingComponent

	busPort  sim.Port
	ctrlPort sim.Port

	slaveBusPort  sim.RemotePort
	slaveCtrlPort sim.RemotePort

	commands []command

	pendingID    string
	pendingCmd   command
	pendingIssue sim.VTimeInSec
	busy         bool

	results    []Result
	resetsDone int
}

// EnqueueRead schedules a read access to the given address.
func (c *Comp) EnqueueRead(address uint64) {
	c.commands = append(c.commands, command{address: address})
	c.TickLater()
}

// EnqueueWrite schedules a write access to the given address.
func (c *Comp) EnqueueWrite(address, data uint64) {
	c.commands = append(c.commands, command{
		isWrite: true,
		address: address,
		data:    data,
	})
	c.TickLater()
}

// TriggerReset schedules a synchronous reset of the slave.
func (c *Comp) TriggerReset() {
	c.commands = append(c.commands, command{isReset: true})
	c.TickLater()
}

// Results returns the outcomes of the completed accesses, in completion
// order. Resets do not appear here.
func (c *Comp) Results() []Result {
	return c.results
}

// ResetsDone returns the number of completed resets.
func (c *Comp) ResetsDone() int {
	return c.resetsDone
}

// Tick updates the state of the driver by one cycle.
func (c *Comp) Tick() bool {
	madeProgress := false

	madeProgress = c.collectRsp() || madeProgress
	madeProgress = c.issue() || madeProgress

	return madeProgress
}

func (c *Comp) collectRsp() bool {
	madeProgress := false

	if item := c.busPort.RetrieveIncoming(); item != nil {
		rsp, ok := item.(*conf.AccessRsp)
		if !ok {
			log.Panicf("cannot handle msg of type %s", reflect.TypeOf(item))
		}

		c.completeAccess(rsp)
		madeProgress = true
	}

	if item := c.ctrlPort.RetrieveIncoming(); item != nil {
		if _, ok := item.(*conf.ControlRsp); !ok {
			log.Panicf("cannot handle msg of type %s", reflect.TypeOf(item))
		}

		c.resetsDone++
		c.busy = false
		madeProgress = true
	}

	return madeProgress
}

func (c *Comp) completeAccess(rsp *conf.AccessRsp) {
	if rsp.RespondTo != c.pendingID {
		log.Panicf("unexpected response to request %s", rsp.RespondTo)
	}

	data := rsp.Data
	if c.pendingCmd.isWrite {
		data = c.pendingCmd.data
	}

	c.results = append(c.results, Result{
		Address:   c.pendingCmd.address,
		IsWrite:   c.pendingCmd.isWrite,
		Data:      data,
		Err:       rsp.Error,
		IssueTime: c.pendingIssue,
		DoneTime:  c.CurrentTime(),
	})
	c.busy = false
}

func (c *Comp) issue() bool {
	if c.busy || len(c.commands) == 0 {
		return false
	}

	cmd := c.commands[0]

	if cmd.isReset {
		return c.issueReset(cmd)
	}

	return c.issueAccess(cmd)
}

func (c *Comp) issueAccess(cmd command) bool {
	var req sim.Msg
	if cmd.isWrite {
		req = conf.WriteReqBuilder{}.
			WithSrc(c.busPort.AsRemote()).
			WithDst(c.slaveBusPort).
			WithAddress(cmd.address).
			WithData(cmd.data).
			Build()
	} else {
		req = conf.ReadReqBuilder{}.
			WithSrc(c.busPort.AsRemote()).
			WithDst(c.slaveBusPort).
			WithAddress(cmd.address).
			Build()
	}

	if err := c.busPort.Send(req); err != nil {
		return false
	}

	c.commands = c.commands[1:]
	c.pendingID = req.Meta().ID
	c.pendingCmd = cmd
	c.pendingIssue = c.CurrentTime()
	c.busy = true

	return true
}

func (c *Comp) issueReset(cmd command) bool {
	msg := conf.ControlMsgBuilder{}.
		WithSrc(c.ctrlPort.AsRemote()).
		WithDst(c.slaveCtrlPort).
		ToReset().
		Build()

	if err := c.ctrlPort.Send(msg); err != nil {
		return false
	}

	c.commands = c.commands[1:]
	c.pendingCmd = cmd
	c.busy = true

	return true
}
