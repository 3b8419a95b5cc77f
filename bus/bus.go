// Package bus defines the abstract 16-bit-address/8-bit-data read-write
// contract the CPU issues all of its memory traffic through, and the
// cycle-logging wrapper that turns any Bus into one whose transactions are
// recorded in issue order.
package bus

import "fmt"

// Bus is the contract a CPU talks to for all memory traffic. Implementations
// must never fail and never block; a 64 KiB flat RAM (memory.Ram) is the
// reference implementation but a mapper/PPU-backed bus can implement this
// just as well.
type Bus interface {
	// Read returns the current byte at addr.
	Read(addr uint16) uint8
	// Write stores val at addr.
	Write(addr uint16, val uint8)
}

// Action identifies the direction of a bus transaction.
type Action int

const (
	Read Action = iota
	Write
)

// String implements fmt.Stringer using the lowercase spelling the
// conformance-vector JSON format uses ("read"/"write").
func (a Action) String() string {
	switch a {
	case Read:
		return "read"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Cycle is one bus transaction: an address, the value that crossed the bus,
// and the direction. One Cycle is appended per Read/Write call, in the exact
// order they're issued.
type Cycle struct {
	Address uint16
	Value   uint8
	Action  Action
}

// Logged wraps a Bus and appends a Cycle to Log for every Read and Write
// that passes through it. It is itself a Bus, so the CPU can be handed a
// Logged in place of the plain bus it wraps without knowing the difference.
//
// This is the injectable observer the cycle log wants: headless callers who
// don't care about the per-cycle trace can talk to the underlying Bus
// directly and pay nothing for logging.
type Logged struct {
	Bus Bus
	Log []Cycle
}

// NewLogged returns a Logged wrapping b with an empty log.
func NewLogged(b Bus) *Logged {
	return &Logged{Bus: b}
}

// Read implements Bus, forwarding to the wrapped bus and logging the result.
func (l *Logged) Read(addr uint16) uint8 {
	v := l.Bus.Read(addr)
	l.Log = append(l.Log, Cycle{Address: addr, Value: v, Action: Read})
	return v
}

// Write implements Bus, forwarding to the wrapped bus and logging the value
// written.
func (l *Logged) Write(addr uint16, val uint8) {
	l.Bus.Write(addr, val)
	l.Log = append(l.Log, Cycle{Address: addr, Value: val, Action: Write})
}

// Reset clears the cycle log without disturbing the underlying bus. Conformance
// testing clears the log after loading initial state and before executing the
// instruction under test.
func (l *Logged) Reset() {
	l.Log = l.Log[:0]
}
