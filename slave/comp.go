// Package slave provides a register-mapped configuration bus slave. It
// serves read and write accesses from a bus master against a register file
// and answers each access with a one-cycle registered latency.
package slave

import (
	"log"
	"reflect"

	"github.com/openesl/confbus/conf"
	"github.com/openesl/confbus/regfile"
	"github.com/openesl/confbus/sim"
)

// HookPosAccessDone is a hook position that triggers when the slave executes
// an access against its register file. The hook context item is the request
// and the detail is an AccessDetail.
var HookPosAccessDone = &sim.HookPos{Name: "Access Done"}

// HookPosReset is a hook position that triggers when the slave performs a
// synchronous reset.
var HookPosReset = &sim.HookPos{Name: "Reset"}

// An AccessDetail describes one executed access.
type AccessDetail struct {
	Time    sim.VTimeInSec
	Address uint64
	IsWrite bool
	Data    uint64
	Err     bool
}

// A Comp is a configuration bus slave. Accesses arrive at the Top port and
// control messages at the Ctrl port. An access retrieved in one cycle is
// answered in the next, matching a zero-wait-state registered-output slave.
type Comp struct {
	*sim.TickingComponent

	topPort  sim.Port
	ctrlPort sim.Port

	regs *regfile.RegisterFile

	stagedRsp     *conf.AccessRsp
	stagedCtrlRsp *conf.ControlRsp
}

// RegisterFile returns the register file that backs the slave. Domain
// resamplers and tracers read it through this accessor.
func (c *Comp) RegisterFile() *regfile.RegisterFile {
	return c.regs
}

// Tick updates the state of the slave by one cycle.
func (c *Comp) Tick() bool {
	madeProgress := false

	madeProgress = c.respond() || madeProgress
	madeProgress = c.processCtrl() || madeProgress
	madeProgress = c.sampleAccess() || madeProgress

	return madeProgress
}

// respond sends the responses staged in the previous cycle. A response that
// cannot be sent stays staged and is retried without re-executing the access.
func (c *Comp) respond() bool {
	madeProgress := false

	if c.stagedCtrlRsp != nil {
		if err := c.ctrlPort.Send(c.stagedCtrlRsp); err == nil {
			c.stagedCtrlRsp = nil
			madeProgress = true
		}
	}

	if c.stagedRsp != nil {
		if err := c.topPort.Send(c.stagedRsp); err == nil {
			c.stagedRsp = nil
			madeProgress = true
		}
	}

	return madeProgress
}

func (c *Comp) processCtrl() bool {
	if c.stagedCtrlRsp != nil {
		return false
	}

	item := c.ctrlPort.RetrieveIncoming()
	if item == nil {
		return false
	}

	msg, ok := item.(*conf.ControlMsg)
	if !ok {
		log.Panicf("cannot handle msg of type %s", reflect.TypeOf(item))
	}

	if msg.Reset {
		c.reset()
	}

	c.stagedCtrlRsp = conf.ControlRspBuilder{}.
		WithSrc(c.ctrlPort.AsRemote()).
		WithDst(msg.Src).
		WithRspTo(msg.ID).
		Build()

	return true
}

// reset clears the register values, the sticky written flags, and any
// in-flight access, synchronously to the slave's own clock.
func (c *Comp) reset() {
	c.regs.Reset()
	c.stagedRsp = nil

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosReset,
		Detail: c.CurrentTime(),
	})
}

func (c *Comp) sampleAccess() bool {
	item := c.topPort.PeekIncoming()
	if item == nil {
		return false
	}

	c.topPort.RetrieveIncoming()

	if c.stagedRsp != nil {
		// A new access while one is still in flight violates the bus
		// handshake. The slave drops it instead of queuing.
		return true
	}

	req, ok := item.(conf.AccessReq)
	if !ok {
		log.Panicf("cannot handle msg of type %s", reflect.TypeOf(item))
	}

	c.stagedRsp = c.execute(req)

	return true
}

func (c *Comp) execute(req conf.AccessReq) *conf.AccessRsp {
	wr, isWrite := req.(*conf.WriteReq)

	b := conf.AccessRspBuilder{}.
		WithSrc(c.topPort.AsRemote()).
		WithDst(req.Meta().Src).
		WithRspTo(req.Meta().ID)

	detail := AccessDetail{
		Time:    c.CurrentTime(),
		Address: req.GetAddress(),
		IsWrite: isWrite,
	}

	index, inRange := c.regs.Decode(req.GetAddress())
	switch {
	case !inRange:
		detail.Err = true
		b = b.WithError()
	case isWrite:
		c.regs.Write(index, wr.Data)
		detail.Data = wr.Data
	default:
		detail.Data = c.regs.Read(index)
		b = b.WithData(detail.Data)
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosAccessDone,
		Item:   req,
		Detail: detail,
	})

	return b.Build()
}
