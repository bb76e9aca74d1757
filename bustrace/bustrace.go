// Package bustrace records the accesses served by configuration bus slaves
// into a database for later analysis.
package bustrace

import (
	"github.com/openesl/confbus/datarecording"
	"github.com/openesl/confbus/sim"
	"github.com/openesl/confbus/slave"
)

const (
	accessTable = "bus_accesses"
	resetTable  = "bus_resets"
)

// An AccessRecord is one row in the access trace.
type AccessRecord struct {
	Time    float64
	Slave   string
	Address uint64
	Write   bool
	Data    uint64
	Err     bool
}

// A ResetRecord is one row in the reset trace.
type ResetRecord struct {
	Time  float64
	Slave string
}

// A Tracer records the accesses and resets of the slaves it is hooked to.
type Tracer struct {
	recorder datarecording.DataRecorder
}

// NewTracer creates a Tracer that writes into the given recorder. The trace
// tables are created immediately.
func NewTracer(recorder datarecording.DataRecorder) *Tracer {
	recorder.CreateTable(accessTable, AccessRecord{})
	recorder.CreateTable(resetTable, ResetRecord{})

	return &Tracer{recorder: recorder}
}

// Func records one access or reset.
func (t *Tracer) Func(ctx sim.HookCtx) {
	name := ""
	if named, ok := ctx.Domain.(sim.Named); ok {
		name = named.Name()
	}

	switch ctx.Pos {
	case slave.HookPosAccessDone:
		detail := ctx.Detail.(slave.AccessDetail)
		t.recorder.InsertData(accessTable, AccessRecord{
			Time:    float64(detail.Time),
			Slave:   name,
			Address: detail.Address,
			Write:   detail.IsWrite,
			Data:    detail.Data,
			Err:     detail.Err,
		})
	case slave.HookPosReset:
		t.recorder.InsertData(resetTable, ResetRecord{
			Time:  float64(ctx.Detail.(sim.VTimeInSec)),
			Slave: name,
		})
	}
}

// Record traces every access served by the given slaves into a SQLite
// database at path. The caller owns the returned recorder and should close
// it when the simulation ends.
func Record(path string, slaves ...*slave.Comp) datarecording.DataRecorder {
	recorder := datarecording.New(path)
	tracer := NewTracer(recorder)

	for _, s := range slaves {
		s.AcceptHook(tracer)
	}

	return recorder
}
