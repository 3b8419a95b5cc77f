package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/m6502core/core/bus"
	"github.com/m6502core/core/memory"
)

func newTestCPU(t *testing.T, program [][2]uint16) (*CPU, *memory.Ram) {
	t.Helper()
	ram := memory.New()
	for _, pv := range program {
		ram.Write(pv[0], uint8(pv[1]))
	}
	c := New(Definition{PC: 0x0000, Variant: Ricoh, Bus: ram})
	return c, ram
}

func dump(t *testing.T, c *CPU) {
	t.Helper()
	t.Logf("cpu state: %s", spew.Sdump(c.CycleLog()))
}

func TestImmediateLoad(t *testing.T) {
	c, _ := newTestCPU(t, [][2]uint16{{0x0000, 0xA9}, {0x0001, 0x42}})
	_, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0x42 || c.P.N() || c.P.Z() || c.PC != 0x0002 {
		dump(t, c)
		t.Fatalf("A=%#x N=%v Z=%v PC=%#x, want A=0x42 N=0 Z=0 PC=0x0002", c.A, c.P.N(), c.P.Z(), c.PC)
	}
	want := []bus.Cycle{
		{Address: 0x0000, Value: 0xA9, Action: bus.Read},
		{Address: 0x0001, Value: 0x42, Action: bus.Read},
	}
	assertCycles(t, c, want)
}

func TestZeroPageStore(t *testing.T) {
	c, ram := newTestCPU(t, [][2]uint16{{0x0000, 0x85}, {0x0001, 0x10}})
	c.A = 0xAB
	_, err := c.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if ram.Read(0x0010) != 0xAB || c.PC != 0x0002 {
		t.Fatalf("mem[0x10]=%#x PC=%#x, want 0xAB / 0x0002", ram.Read(0x0010), c.PC)
	}
	want := []bus.Cycle{
		{Address: 0x0000, Value: 0x85, Action: bus.Read},
		{Address: 0x0001, Value: 0x10, Action: bus.Read},
		{Address: 0x0010, Value: 0xAB, Action: bus.Write},
	}
	assertCycles(t, c, want)
}

func TestADCCarryAndOverflow(t *testing.T) {
	c, _ := newTestCPU(t, [][2]uint16{{0x0000, 0x65}, {0x0001, 0x20}, {0x0020, 0x50}})
	c.A = 0x50
	c.P.SetC(false)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.A != 0xA0 || !c.P.N() || !c.P.V() || c.P.Z() || c.P.C() || c.PC != 0x0002 {
		dump(t, c)
		t.Fatalf("A=%#x N=%v V=%v Z=%v C=%v PC=%#x", c.A, c.P.N(), c.P.V(), c.P.Z(), c.P.C(), c.PC)
	}
}

func TestBNETakenPageCross(t *testing.T) {
	ram := memory.New()
	ram.Write(0x00FE, 0xD0)
	ram.Write(0x00FF, 0x04)
	c := New(Definition{PC: 0x00FE, Variant: Ricoh, Bus: ram})
	c.P.SetZ(false)
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x0104 {
		dump(t, c)
		t.Fatalf("PC=%#x, want 0x0104", c.PC)
	}
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	ram := memory.New()
	ram.Write(0x0000, 0x6C)
	ram.Write(0x0001, 0xFF)
	ram.Write(0x0002, 0x10)
	ram.Write(0x10FF, 0x34)
	ram.Write(0x1000, 0x12)
	ram.Write(0x1100, 0x99) // must NOT be consulted
	c := New(Definition{PC: 0x0000, Variant: Ricoh, Bus: ram})
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x1234 {
		t.Fatalf("PC=%#x, want 0x1234 (page-wrap bug not reproduced)", c.PC)
	}
}

func TestJSRThenRTSRoundTrip(t *testing.T) {
	ram := memory.New()
	ram.Write(0x0600, 0x20) // JSR $0800
	ram.Write(0x0601, 0x00)
	ram.Write(0x0602, 0x08)
	ram.Write(0x0800, 0x60) // RTS
	c := New(Definition{PC: 0x0600, Variant: Ricoh, Bus: ram})
	startS := c.S

	if _, err := c.Step(); err != nil {
		t.Fatalf("JSR: %v", err)
	}
	if c.PC != 0x0800 {
		t.Fatalf("after JSR PC=%#x, want 0x0800", c.PC)
	}
	if _, err := c.Step(); err != nil {
		t.Fatalf("RTS: %v", err)
	}
	if c.PC != 0x0603 {
		t.Fatalf("after RTS PC=%#x, want 0x0603", c.PC)
	}
	if c.S != startS {
		t.Fatalf("S=%#x after round trip, want %#x (no net stack change)", c.S, startS)
	}
}

func TestIllegalOpcodeHaltsCPU(t *testing.T) {
	c, _ := newTestCPU(t, [][2]uint16{{0x0000, 0x02}}) // HLT-class illegal byte
	_, err := c.Step()
	if _, ok := err.(IllegalOpcode); !ok {
		t.Fatalf("err=%v (%T), want IllegalOpcode", err, err)
	}
	if c.Running() {
		t.Fatalf("CPU still running after illegal opcode")
	}
	if _, err := c.Step(); err != (NotRunning{}) {
		t.Fatalf("second Step after halt returned %v, want NotRunning", err)
	}
}

func TestADCSBCInverse(t *testing.T) {
	for a := 0; a < 256; a += 17 {
		for m := 0; m < 256; m += 23 {
			for _, carry := range []bool{false, true} {
				c, _ := newTestCPU(t, nil)
				c.A = uint8(a)
				c.P.SetC(carry)
				origA, origC := c.A, c.P.C()
				c.adc(uint8(m))
				c.sbc(uint8(m))
				if c.A != origA {
					t.Fatalf("a=%d m=%d carry=%v: A=%#x after ADC/SBC, want %#x", a, m, carry, c.A, origA)
				}
				if c.P.C() != origC {
					t.Fatalf("a=%d m=%d carry=%v: C=%v after ADC/SBC, want %v", a, m, carry, c.P.C(), origC)
				}
			}
		}
	}
}

func TestPushPullRoundTrip(t *testing.T) {
	c, _ := newTestCPU(t, [][2]uint16{{0x0000, 0x48}, {0x0001, 0x68}}) // PHA; PLA
	c.A = 0x77
	c.X, c.Y, c.S = 0x11, 0x22, 0xFD
	wantX, wantY, wantS := c.X, c.Y, c.S

	if _, err := c.Step(); err != nil { // PHA
		t.Fatalf("PHA: %v", err)
	}
	if _, err := c.Step(); err != nil { // PLA
		t.Fatalf("PLA: %v", err)
	}
	if c.A != 0x77 {
		t.Fatalf("A=%#x after PHA;PLA, want 0x77", c.A)
	}
	if c.X != wantX || c.Y != wantY || c.S != wantS {
		t.Fatalf("X/Y/S changed by PHA;PLA: got %#x/%#x/%#x", c.X, c.Y, c.S)
	}
}

func TestStackPointerWrapOn256PHA(t *testing.T) {
	c, _ := newTestCPU(t, nil)
	startS := c.S
	for i := 0; i < 256; i++ {
		c.dummyReadPC()
		c.push(0x00)
	}
	if c.S != startS {
		t.Fatalf("S=%#x after 256 pushes, want %#x", c.S, startS)
	}
}

func TestBitFivePersistsAfterExecution(t *testing.T) {
	c, _ := newTestCPU(t, [][2]uint16{{0x0000, 0xEA}}) // NOP
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.P.Get()&0x20 == 0 {
		t.Fatalf("bit 5 of P not set after execution")
	}
}

func assertCycles(t *testing.T, c *CPU, want []bus.Cycle) {
	t.Helper()
	got := c.CycleLog()
	if len(got) != len(want) {
		dump(t, c)
		t.Fatalf("cycle log has %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			dump(t, c)
			t.Fatalf("cycle[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
