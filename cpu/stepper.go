package cpu

// Step runs exactly one fetch-decode-execute cycle to completion and
// returns the instruction that ran. It never suspends partway through: by
// the time it returns, every register, memory, and cycle-log effect of
// that instruction has already happened.
//
// Once a step returns an error, the CPU is halted and every subsequent
// call returns NotRunning without touching any state.
func (c *CPU) Step() (Instruction, error) {
	if !c.running {
		return Instruction{}, NotRunning{}
	}

	opcode := c.read(c.PC)
	c.PC++

	inst := Decode(opcode)
	if inst.Kind == Illegal {
		c.running = false
		return inst, IllegalOpcode{Opcode: opcode, Instruction: inst}
	}

	if err := c.execute(inst); err != nil {
		c.running = false
		return inst, err
	}
	return inst, nil
}

// ServiceInterrupt checks the CPU's configured NMI and IRQ sources and, if
// either is asserted, runs the interrupt-entry sequence (identical to
// BRK's stack protocol except the pushed P has bit 4 clear and no opcode
// is fetched) and returns true. NMI takes priority over IRQ; IRQ is masked
// by the I flag, NMI is not.
//
// This is only ever called between Step calls, never from inside one: the
// core has no sub-instruction suspension points, so an asserted interrupt
// is only observed once the in-flight instruction has fully retired.
func (c *CPU) ServiceInterrupt() bool {
	switch {
	case c.nmi != nil && c.nmi.Raised():
		c.interrupt(0xFFFA)
		return true
	case c.irq != nil && c.irq.Raised() && !c.P.I():
		c.interrupt(0xFFFE)
		return true
	default:
		return false
	}
}

func (c *CPU) interrupt(vector uint16) {
	c.read(c.PC)
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC))
	c.push(c.P.PushByte(false))
	c.P.SetI(true)
	lo := c.read(vector)
	hi := c.read(vector + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
}
