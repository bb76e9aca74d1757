// Package conf defines the messages that travel on the configuration bus.
//
// A request in flight corresponds to the setup phase of the bus handshake.
// The slave executes the access one cycle after sampling the request, and
// the response message marks the ready cycle.
package conf

import (
	"github.com/openesl/confbus/sim"
)

var accessReqByteOverhead = 12
var accessRspByteOverhead = 4
var controlMsgByteOverhead = 4

// AccessReq abstracts read and write requests that are sent to a
// configuration slave.
type AccessReq interface {
	sim.Msg
	GetAddress() uint64
}

// A ReadReq asks a configuration slave for the value of one register.
type ReadReq struct {
	sim.MsgMeta

	Address uint64
}

// Meta returns the message meta.
func (r *ReadReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetAddress returns the address that the request is accessing.
func (r *ReadReq) GetAddress() uint64 {
	return r.Address
}

// ReadReqBuilder can build read requests.
type ReadReqBuilder struct {
	src, dst sim.RemotePort
	address  uint64
}

// WithSrc sets the source of the request to build.
func (b ReadReqBuilder) WithSrc(src sim.RemotePort) ReadReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b ReadReqBuilder) WithDst(dst sim.RemotePort) ReadReqBuilder {
	b.dst = dst
	return b
}

// WithAddress sets the address of the request to build.
func (b ReadReqBuilder) WithAddress(address uint64) ReadReqBuilder {
	b.address = address
	return b
}

// Build creates a new ReadReq.
func (b ReadReqBuilder) Build() *ReadReq {
	r := &ReadReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = accessReqByteOverhead
	r.Address = b.address

	return r
}

// A WriteReq asks a configuration slave to update one register.
type WriteReq struct {
	sim.MsgMeta

	Address uint64
	Data    uint64
}

// Meta returns the message meta.
func (r *WriteReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetAddress returns the address that the request is accessing.
func (r *WriteReq) GetAddress() uint64 {
	return r.Address
}

// WriteReqBuilder can build write requests.
type WriteReqBuilder struct {
	src, dst sim.RemotePort
	address  uint64
	data     uint64
}

// WithSrc sets the source of the request to build.
func (b WriteReqBuilder) WithSrc(src sim.RemotePort) WriteReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b WriteReqBuilder) WithDst(dst sim.RemotePort) WriteReqBuilder {
	b.dst = dst
	return b
}

// WithAddress sets the address of the request to build.
func (b WriteReqBuilder) WithAddress(address uint64) WriteReqBuilder {
	b.address = address
	return b
}

// WithData sets the data of the request to build.
func (b WriteReqBuilder) WithData(data uint64) WriteReqBuilder {
	b.data = data
	return b
}

// Build creates a new WriteReq.
func (b WriteReqBuilder) Build() *WriteReq {
	r := &WriteReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = accessReqByteOverhead + 8
	r.Address = b.address
	r.Data = b.data

	return r
}

// An AccessRsp is the registered response of a configuration slave. It marks
// the ready cycle of the access it responds to. Error reports an access to
// an address outside the mapped register range; Data is zero in that case.
type AccessRsp struct {
	sim.MsgMeta

	RespondTo string // The ID of the request it replies to
	Data      uint64
	Error     bool
}

// Meta returns the message meta.
func (r *AccessRsp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetRspTo returns the ID of the request that the response is responding to.
func (r *AccessRsp) GetRspTo() string {
	return r.RespondTo
}

// AccessRspBuilder can build access responses.
type AccessRspBuilder struct {
	src, dst sim.RemotePort
	rspTo    string
	data     uint64
	err      bool
}

// WithSrc sets the source of the response to build.
func (b AccessRspBuilder) WithSrc(src sim.RemotePort) AccessRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b AccessRspBuilder) WithDst(dst sim.RemotePort) AccessRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the request that the response to build replies to.
func (b AccessRspBuilder) WithRspTo(id string) AccessRspBuilder {
	b.rspTo = id
	return b
}

// WithData sets the data carried by the response to build.
func (b AccessRspBuilder) WithData(data uint64) AccessRspBuilder {
	b.data = data
	return b
}

// WithError marks the response to build as an out-of-range error response.
func (b AccessRspBuilder) WithError() AccessRspBuilder {
	b.err = true
	b.data = 0
	return b
}

// Build creates a new AccessRsp.
func (b AccessRspBuilder) Build() *AccessRsp {
	r := &AccessRsp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = accessRspByteOverhead + 8
	r.RespondTo = b.rspTo
	r.Data = b.data
	r.Error = b.err

	return r
}

// A ControlMsg carries domain-local control signals to a configuration
// slave. Reset clears the register file and any in-flight access
// synchronously to the slave's own clock.
type ControlMsg struct {
	sim.MsgMeta

	Reset bool
}

// Meta returns the message meta.
func (m *ControlMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

// ControlMsgBuilder can build control messages.
type ControlMsgBuilder struct {
	src, dst sim.RemotePort
	reset    bool
}

// WithSrc sets the source of the message to build.
func (b ControlMsgBuilder) WithSrc(src sim.RemotePort) ControlMsgBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the message to build.
func (b ControlMsgBuilder) WithDst(dst sim.RemotePort) ControlMsgBuilder {
	b.dst = dst
	return b
}

// ToReset sets the reset bit of the message to build.
func (b ControlMsgBuilder) ToReset() ControlMsgBuilder {
	b.reset = true
	return b
}

// Build creates a new ControlMsg.
func (b ControlMsgBuilder) Build() *ControlMsg {
	m := &ControlMsg{}
	m.ID = sim.GetIDGenerator().Generate()
	m.Src = b.src
	m.Dst = b.dst
	m.TrafficBytes = controlMsgByteOverhead
	m.Reset = b.reset

	return m
}

// A ControlRsp marks the completion of a control message.
type ControlRsp struct {
	sim.MsgMeta

	RespondTo string
}

// Meta returns the message meta.
func (r *ControlRsp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// GetRspTo returns the ID of the message that the response is responding to.
func (r *ControlRsp) GetRspTo() string {
	return r.RespondTo
}

// ControlRspBuilder can build control responses.
type ControlRspBuilder struct {
	src, dst sim.RemotePort
	rspTo    string
}

// WithSrc sets the source of the response to build.
func (b ControlRspBuilder) WithSrc(src sim.RemotePort) ControlRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b ControlRspBuilder) WithDst(dst sim.RemotePort) ControlRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the message that the response to build replies to.
func (b ControlRspBuilder) WithRspTo(id string) ControlRspBuilder {
	b.rspTo = id
	return b
}

// Build creates a new ControlRsp.
func (b ControlRspBuilder) Build() *ControlRsp {
	r := &ControlRsp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = controlMsgByteOverhead
	r.RespondTo = b.rspTo

	return r
}
