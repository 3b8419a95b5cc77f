// Package memory provides the reference 64 KiB flat-address-space bus
// backend used by the conformance suite and by any other caller of cpu.CPU.
package memory

import (
	"math/rand"
	"time"
)

// Size is the full 16-bit address space this backend spans.
const Size = 1 << 16

// Ram is a flat 64 KiB byte-addressable array implementing bus.Bus. Unlike
// a mapper-backed memory map, reads and writes here always land in the same
// backing array and never fail, matching the Bus contract exactly.
type Ram struct {
	data [Size]uint8
}

// New returns a Ram with all bytes zeroed.
func New() *Ram {
	return &Ram{}
}

// Read implements bus.Bus.
func (r *Ram) Read(addr uint16) uint8 {
	return r.data[addr]
}

// Write implements bus.Bus.
func (r *Ram) Write(addr uint16, val uint8) {
	r.data[addr] = val
}

// LoadVector loads a contiguous run of address/value pairs, e.g. a
// conformance vector's "ram" field or a disassembled program image.
func (r *Ram) LoadVector(pairs [][2]int) {
	for _, p := range pairs {
		r.data[uint16(p[0])] = uint8(p[1])
	}
}

// PowerOn randomizes every byte, mirroring real hardware RAM's undefined
// power-on contents. Not used by the conformance suite (which loads an
// explicit initial state) but kept for callers that want power-on jitter the
// way the teacher's Bank.PowerOn did.
func (r *Ram) PowerOn() {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range r.data {
		r.data[i] = uint8(rnd.Intn(256))
	}
}
