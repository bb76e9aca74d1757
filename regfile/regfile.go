// Package regfile provides the configuration register file that backs a
// register-mapped bus slave.
package regfile

import "fmt"

// A Config describes the geometry of a register file and the address range
// it is mapped to.
type Config struct {
	DataWidth    int
	AddrWidth    int
	NumRegisters int
	BaseAddress  uint64
}

// DefaultConfig returns the default register file geometry: 16 32-bit
// registers mapped at address 0.
func DefaultConfig() Config {
	return Config{
		DataWidth:    32,
		AddrWidth:    32,
		NumRegisters: 16,
		BaseAddress:  0,
	}
}

// MustBeValid panics if the configuration is not realizable.
func (c Config) MustBeValid() {
	if c.NumRegisters <= 0 {
		panic("register file must have at least one register")
	}

	if c.DataWidth <= 0 || c.DataWidth%8 != 0 || c.DataWidth > 64 {
		panic(fmt.Sprintf(
			"data width %d must be a multiple of 8 in (0, 64]", c.DataWidth))
	}

	if c.AddrWidth <= 0 || c.AddrWidth > 64 {
		panic(fmt.Sprintf("address width %d must be in (0, 64]", c.AddrWidth))
	}
}

// WordSize returns the number of bytes that one register occupies in the
// address space.
func (c Config) WordSize() uint64 {
	return uint64(c.DataWidth / 8)
}

// Mask returns the bit mask that truncates a value to DataWidth bits.
func (c Config) Mask() uint64 {
	if c.DataWidth == 64 {
		return ^uint64(0)
	}

	return (uint64(1) << c.DataWidth) - 1
}

// An Entry is one register. Written is sticky: it records that the register
// has ever been written since the last reset, not that the value changed in
// the current cycle.
type Entry struct {
	Value   uint64
	Written bool
}

// A Snapshot is a wholesale copy of all the entries of a register file.
type Snapshot []Entry

// A RegisterFile is a fixed-size array of registers with sticky
// written flags. The size is decided at construction and never grows.
type RegisterFile struct {
	cfg     Config
	entries []Entry
}

// New creates a RegisterFile with all the entries cleared.
func New(cfg Config) *RegisterFile {
	cfg.MustBeValid()

	return &RegisterFile{
		cfg:     cfg,
		entries: make([]Entry, cfg.NumRegisters),
	}
}

// Config returns the geometry of the register file.
func (r *RegisterFile) Config() Config {
	return r.cfg
}

// NumRegisters returns the number of registers in the file.
func (r *RegisterFile) NumRegisters() int {
	return len(r.entries)
}

// Decode converts a bus address into a register index. The second return
// value reports whether the address falls in the mapped range. Both guards
// are required: the subtraction below wraps around for addresses below the
// base, so `addr >= BaseAddress` cannot be replaced by an index check alone.
func (r *RegisterFile) Decode(addr uint64) (int, bool) {
	if addr < r.cfg.BaseAddress {
		return 0, false
	}

	localAddr := addr - r.cfg.BaseAddress
	index := localAddr / r.cfg.WordSize()

	if index >= uint64(len(r.entries)) {
		return 0, false
	}

	return int(index), true
}

// Read returns the value of the register at the given index.
func (r *RegisterFile) Read(index int) uint64 {
	return r.entries[index].Value
}

// Write stores a value, truncated to DataWidth bits, in the register at the
// given index and sets its sticky written flag.
func (r *RegisterFile) Write(index int, value uint64) {
	r.entries[index].Value = value & r.cfg.Mask()
	r.entries[index].Written = true
}

// IsWritten returns the sticky written flag of the register at the given
// index.
func (r *RegisterFile) IsWritten(index int) bool {
	return r.entries[index].Written
}

// Reset clears every register value and written flag.
func (r *RegisterFile) Reset() {
	for i := range r.entries {
		r.entries[i] = Entry{}
	}
}

// Snapshot copies every entry into a freshly allocated Snapshot. The copy
// replaces nothing in the register file itself; the caller owns the result.
func (r *RegisterFile) Snapshot() Snapshot {
	s := make(Snapshot, len(r.entries))
	copy(s, r.entries)

	return s
}
