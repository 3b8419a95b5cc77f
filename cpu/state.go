// Package cpu implements the 6502 instruction decoder, addressing-mode
// evaluator, and execution unit as a single synchronous Step call: fetch,
// decode, execute, return, with no suspension points in between.
package cpu

import (
	"github.com/m6502core/core/bus"
	"github.com/m6502core/core/flags"
	"github.com/m6502core/core/irq"
)

// Variant selects which 6502 dialect a CPU emulates. The two documented
// operations that differ across real silicon are decimal-mode ADC/SBC and
// whether undocumented opcodes execute; this core never executes
// undocumented opcodes regardless of variant (they always decode Illegal),
// so Variant only gates decimal mode.
type Variant struct {
	// Name is informational only (surfaced by String for logging).
	Name string
	// Decimal enables BCD arithmetic in ADC/SBC when the D flag is set.
	// NMOS decimal mode leaves N and Z undefined; this core still sets
	// them from the binary-mode result, which is one legitimate NMOS
	// behavior among several real chips exhibited.
	Decimal bool
}

func (v Variant) String() string { return v.Name }

// NMOS is the MOS 6502 proper: decimal mode honored.
var NMOS = Variant{Name: "NMOS 6502", Decimal: true}

// Ricoh is the 2A03/2A07 used in the NES: silicon identical to NMOS except
// the decimal mode circuitry is physically absent. This is the variant the
// nes6502 conformance vectors are written against.
var Ricoh = Variant{Name: "Ricoh 2A03", Decimal: false}

// CPU holds the complete observable processor state plus the bus it talks
// to. It owns its register file and cycle log exclusively; the bus/memory
// behind it may be shared by reference with other callers per the
// documented ownership split (the containing application serializes
// access, the core takes no locks of its own).
type CPU struct {
	PC   uint16
	A, X, Y, S uint8
	P    flags.Register

	running bool
	variant Variant

	bus *bus.Logged
	nmi irq.Sender
	irq irq.Sender
}

// Definition is the caller-supplied initial snapshot a CPU is constructed
// from: every field of Definition becomes the corresponding CPU field
// verbatim except P, which New passes through flags.New, and a Variant with
// an empty Name, which New replaces with Ricoh.
type Definition struct {
	PC      uint16
	A, X, Y uint8
	S       uint8
	P       uint8
	Variant Variant

	// Bus is the backing memory/device bus. It is wrapped in a
	// bus.Logged internally so every access is captured on the cycle
	// log; pass a plain bus.Bus (memory.Ram or anything else
	// implementing it).
	Bus bus.Bus

	// NMI and IRQ are optional interrupt sources polled only by
	// ServiceInterrupt, between Step calls. Either may be left nil, in
	// which case that interrupt line is treated as never asserted.
	NMI irq.Sender
	IRQ irq.Sender
}

// New constructs a CPU from def. The returned CPU is Running and has an
// empty cycle log.
func New(def Definition) *CPU {
	variant := def.Variant
	if variant.Name == "" {
		variant = Ricoh
	}
	return &CPU{
		PC:      def.PC,
		A:       def.A,
		X:       def.X,
		Y:       def.Y,
		S:       def.S,
		P:       flags.New(def.P),
		running: true,
		variant: variant,
		bus:     bus.NewLogged(def.Bus),
		nmi:     def.NMI,
		irq:     def.IRQ,
	}
}

// Running reports whether the CPU will accept further Step calls.
func (c *CPU) Running() bool { return c.running }

// CycleLog returns the ordered bus transactions recorded since the last
// ResetCycleLog call (or since construction, if never called). The slice
// is owned by the CPU; callers that need to retain it across the next Step
// should copy it.
func (c *CPU) CycleLog() []bus.Cycle { return c.bus.Log }

// ResetCycleLog clears the cycle log without disturbing any register or
// memory state. Conformance testing calls this after loading a vector's
// initial state and before executing the instruction under test.
func (c *CPU) ResetCycleLog() { c.bus.Reset() }

// Bus exposes the CPU's own read/write wrapper, so callers that need to
// poke memory outside of instruction execution (loading a conformance
// vector's initial RAM, inspecting final RAM) can do so through the same
// logging path the CPU itself uses, or bypass it by holding the backing
// bus.Bus directly.
func (c *CPU) Bus() bus.Bus { return c.bus }

func (c *CPU) read(addr uint16) uint8 {
	return c.bus.Read(addr)
}

func (c *CPU) write(addr uint16, val uint8) {
	c.bus.Write(addr, val)
}

// push writes val to the current stack address then decrements S, wrapping.
func (c *CPU) push(val uint8) {
	c.write(0x0100|uint16(c.S), val)
	c.S--
}

// pull increments S, wrapping, then reads from the new stack address.
func (c *CPU) pull() uint8 {
	c.S++
	return c.read(0x0100 | uint16(c.S))
}
