package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewForcesExpansionBit(t *testing.T) {
	r := New(0x00)
	assert.Equal(t, uint8(0x20), r.Get(), "bit 5 must read 1 even from an all-zero initial byte")
}

func TestGetMasksBreak(t *testing.T) {
	r := New(0xFF)
	got := r.Get()
	assert.Zero(t, got&Break, "Get must never report bit 4 set")
	assert.Equal(t, uint8(0x20), got&one)
}

func TestSetIgnoresIncomingBreakBit(t *testing.T) {
	var r Register
	r.Set(0xFF)
	assert.Zero(t, r.Get()&Break)
	assert.Equal(t, Negative|Overflow|one|Decimal|Interrupt|Zero|Carry, r.Get())
}

func TestPushByteBreakConvention(t *testing.T) {
	r := New(0x00)
	assert.NotZero(t, r.PushByte(true)&Break, "PHP/BRK push with B=1")
	assert.Zero(t, r.PushByte(false)&Break, "IRQ/NMI push with B=0")
}

func TestNamedAccessorsRoundTrip(t *testing.T) {
	var r Register
	r.SetN(true)
	r.SetV(true)
	r.SetD(true)
	r.SetI(true)
	r.SetZ(true)
	r.SetC(true)
	assert.True(t, r.N())
	assert.True(t, r.V())
	assert.True(t, r.D())
	assert.True(t, r.I())
	assert.True(t, r.Z())
	assert.True(t, r.C())

	r.SetN(false)
	assert.False(t, r.N())
}

func TestSetNZ(t *testing.T) {
	var r Register
	r.SetNZ(0x00)
	assert.True(t, r.Z())
	assert.False(t, r.N())

	r.SetNZ(0x80)
	assert.False(t, r.Z())
	assert.True(t, r.N())

	r.SetNZ(0x01)
	assert.False(t, r.Z())
	assert.False(t, r.N())
}

func TestSetCarryFromAdd(t *testing.T) {
	var r Register
	r.SetCarryFromAdd(0x00FF)
	assert.False(t, r.C())
	r.SetCarryFromAdd(0x0100)
	assert.True(t, r.C())
}

func TestSetOverflowFromAdd(t *testing.T) {
	var r Register
	// 0x50 + 0x50 = 0xA0: both positive operands, negative result -> overflow.
	r.SetOverflowFromAdd(0x50, 0x50, 0xA0)
	assert.True(t, r.V())

	// 0x50 + 0x10 = 0x60: no sign-change overflow.
	r.SetOverflowFromAdd(0x50, 0x10, 0x60)
	assert.False(t, r.V())
}
