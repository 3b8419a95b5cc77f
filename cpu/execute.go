package cpu

// execute runs the body of a decoded instruction. It is only ever called
// with OneByte or Operand instructions; Illegal is intercepted by Step
// before execute is reached.
func (c *CPU) execute(inst Instruction) error {
	switch inst.Kind {
	case OneByte:
		return c.executeOneByte(inst)
	case Operand:
		return c.executeOperand(inst)
	default:
		return ExecutionFault{Instruction: inst}
	}
}

// loadValue reads an operand's value for a read-only instruction: the
// literal byte for Immediate, or a bus read at the resolved effective
// address for everything else. It never forces the indexed-mode dummy
// read (write=false), matching real hardware's ability to skip the
// boundary-crossing dummy cycle when the access is read-only and no cross
// occurred.
func (c *CPU) loadValue(mode Mode) uint8 {
	if mode == Immediate {
		return c.fetchOperandByte()
	}
	return c.read(c.resolve(mode, false))
}

func (c *CPU) executeOperand(inst Instruction) error {
	switch inst.Op {
	case ADC:
		c.adc(c.loadValue(inst.Mode))
	case SBC:
		c.sbc(c.loadValue(inst.Mode))
	case AND:
		c.A &= c.loadValue(inst.Mode)
		c.P.SetNZ(c.A)
	case ORA:
		c.A |= c.loadValue(inst.Mode)
		c.P.SetNZ(c.A)
	case EOR:
		c.A ^= c.loadValue(inst.Mode)
		c.P.SetNZ(c.A)
	case CMP:
		c.compare(c.A, c.loadValue(inst.Mode))
	case CPX:
		c.compare(c.X, c.loadValue(inst.Mode))
	case CPY:
		c.compare(c.Y, c.loadValue(inst.Mode))
	case BIT:
		c.bit(c.loadValue(inst.Mode))
	case LDA:
		c.A = c.loadValue(inst.Mode)
		c.P.SetNZ(c.A)
	case LDX:
		c.X = c.loadValue(inst.Mode)
		c.P.SetNZ(c.X)
	case LDY:
		c.Y = c.loadValue(inst.Mode)
		c.P.SetNZ(c.Y)

	case STA:
		c.write(c.resolve(inst.Mode, true), c.A)
	case STX:
		c.write(c.resolve(inst.Mode, true), c.X)
	case STY:
		c.write(c.resolve(inst.Mode, true), c.Y)

	case ASL:
		c.shiftRotate(inst.Mode, c.asl)
	case LSR:
		c.shiftRotate(inst.Mode, c.lsr)
	case ROL:
		c.shiftRotate(inst.Mode, c.rol)
	case ROR:
		c.shiftRotate(inst.Mode, c.ror)
	case INC:
		c.rmwMemory(inst.Mode, func(v uint8) uint8 { return v + 1 })
	case DEC:
		c.rmwMemory(inst.Mode, func(v uint8) uint8 { return v - 1 })

	case BPL:
		c.branch(!c.P.N())
	case BMI:
		c.branch(c.P.N())
	case BVC:
		c.branch(!c.P.V())
	case BVS:
		c.branch(c.P.V())
	case BCC:
		c.branch(!c.P.C())
	case BCS:
		c.branch(c.P.C())
	case BNE:
		c.branch(!c.P.Z())
	case BEQ:
		c.branch(c.P.Z())

	default:
		return ExecutionFault{Instruction: inst}
	}
	return nil
}

// shiftRotate applies f either directly to A (Accumulator mode, no bus
// traffic beyond the implied dummy read) or as a read-modify-write at the
// resolved memory address.
func (c *CPU) shiftRotate(mode Mode, f func(uint8) uint8) {
	if mode == Accumulator {
		c.dummyReadPC()
		c.A = f(c.A)
		c.P.SetNZ(c.A)
		return
	}
	c.rmwMemory(mode, f)
}

func (c *CPU) rmwMemory(mode Mode, f func(uint8) uint8) {
	addr := c.resolve(mode, true)
	c.rmw(addr, func(v uint8) uint8 {
		nv := f(v)
		c.P.SetNZ(nv)
		return nv
	})
}

func (c *CPU) executeOneByte(inst Instruction) error {
	switch inst.Op {
	case PHP:
		c.dummyReadPC()
		c.push(c.P.PushByte(true))
	case PLP:
		c.dummyReadPC()
		c.read(0x0100 | uint16(c.S))
		c.P.Set(c.pull())
	case PHA:
		c.dummyReadPC()
		c.push(c.A)
	case PLA:
		c.dummyReadPC()
		c.read(0x0100 | uint16(c.S))
		c.A = c.pull()
		c.P.SetNZ(c.A)

	case DEY:
		c.dummyReadPC()
		c.Y--
		c.P.SetNZ(c.Y)
	case TAY:
		c.dummyReadPC()
		c.Y = c.A
		c.P.SetNZ(c.Y)
	case INY:
		c.dummyReadPC()
		c.Y++
		c.P.SetNZ(c.Y)
	case INX:
		c.dummyReadPC()
		c.X++
		c.P.SetNZ(c.X)
	case DEX:
		c.dummyReadPC()
		c.X--
		c.P.SetNZ(c.X)
	case TAX:
		c.dummyReadPC()
		c.X = c.A
		c.P.SetNZ(c.X)
	case TXA:
		c.dummyReadPC()
		c.A = c.X
		c.P.SetNZ(c.A)
	case TYA:
		c.dummyReadPC()
		c.A = c.Y
		c.P.SetNZ(c.A)
	case TSX:
		c.dummyReadPC()
		c.X = c.S
		c.P.SetNZ(c.X)
	case TXS:
		c.dummyReadPC()
		c.S = c.X

	case CLC:
		c.dummyReadPC()
		c.P.SetC(false)
	case SEC:
		c.dummyReadPC()
		c.P.SetC(true)
	case CLI:
		c.dummyReadPC()
		c.P.SetI(false)
	case SEI:
		c.dummyReadPC()
		c.P.SetI(true)
	case CLV:
		c.dummyReadPC()
		c.P.SetV(false)
	case CLD:
		c.dummyReadPC()
		c.P.SetD(false)
	case SED:
		c.dummyReadPC()
		c.P.SetD(true)
	case NOP:
		c.dummyReadPC()

	case JMP:
		c.PC = c.addrAbsolute()
	case JMPIndirect:
		c.PC = c.addrIndirect()
	case JSR:
		lo := c.fetchOperandByte()
		c.read(0x0100 | uint16(c.S)) // internal operation
		ret := c.PC // points at the (unread) high operand byte, i.e. return address - 1
		c.push(uint8(ret >> 8))
		c.push(uint8(ret))
		hi := c.fetchOperandByte()
		c.PC = uint16(hi)<<8 | uint16(lo)
	case RTS:
		c.dummyReadPC()
		c.read(0x0100 | uint16(c.S))
		lo := c.pull()
		hi := c.pull()
		c.PC = uint16(hi)<<8 | uint16(lo)
		c.read(c.PC)
		c.PC++
	case RTI:
		c.dummyReadPC()
		c.read(0x0100 | uint16(c.S))
		c.P.Set(c.pull())
		lo := c.pull()
		hi := c.pull()
		c.PC = uint16(hi)<<8 | uint16(lo)
	case BRK:
		c.read(c.PC) // padding byte, discarded
		c.PC++
		c.push(uint8(c.PC >> 8))
		c.push(uint8(c.PC))
		c.push(c.P.PushByte(true))
		c.P.SetI(true)
		lo := c.read(0xFFFE)
		hi := c.read(0xFFFF)
		c.PC = uint16(hi)<<8 | uint16(lo)

	default:
		return ExecutionFault{Instruction: inst}
	}
	return nil
}

func (c *CPU) compare(reg, m uint8) {
	r := uint16(reg) - uint16(m)
	c.P.SetC(reg >= m)
	c.P.SetNZ(uint8(r))
}

func (c *CPU) bit(m uint8) {
	c.P.SetZ(c.A&m == 0)
	c.P.SetN(m&0x80 != 0)
	c.P.SetV(m&0x40 != 0)
}

func (c *CPU) asl(v uint8) uint8 {
	c.P.SetC(v&0x80 != 0)
	return v << 1
}

func (c *CPU) lsr(v uint8) uint8 {
	c.P.SetC(v&0x01 != 0)
	r := v >> 1
	c.P.SetN(false)
	return r
}

func (c *CPU) rol(v uint8) uint8 {
	var carryIn uint8
	if c.P.C() {
		carryIn = 1
	}
	c.P.SetC(v&0x80 != 0)
	return (v << 1) | carryIn
}

func (c *CPU) ror(v uint8) uint8 {
	var carryIn uint8
	if c.P.C() {
		carryIn = 0x80
	}
	c.P.SetC(v&0x01 != 0)
	return (v >> 1) | carryIn
}

// branch evaluates a conditional branch. The offset byte is always fetched
// (and PC always advances past it); the dummy reads for taken/page-crossed
// branches only happen when taken is true.
func (c *CPU) branch(taken bool) {
	offset := c.addrRelative()
	if !taken {
		return
	}
	pre := c.PC
	c.read(pre)
	post := uint16(int32(pre) + int32(offset))
	if !samePage(pre, post) {
		c.read((pre & 0xFF00) | (post & 0x00FF))
	}
	c.PC = post
}

func (c *CPU) adc(m uint8) {
	if c.variant.Decimal && c.P.D() {
		c.adcDecimal(m)
		return
	}
	var carryIn uint16
	if c.P.C() {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(m) + carryIn
	result := uint8(sum)
	c.P.SetOverflowFromAdd(c.A, m, result)
	c.P.SetCarryFromAdd(sum)
	c.A = result
	c.P.SetNZ(c.A)
}

func (c *CPU) sbc(m uint8) {
	if c.variant.Decimal && c.P.D() {
		c.sbcDecimal(m)
		return
	}
	c.adc(^m)
}

// adcDecimal reproduces the NMOS BCD-mode ADC quirk: N and Z are set from
// the binary-mode sum rather than the decimal-corrected one, while A and C
// carry the decimal-corrected result.
func (c *CPU) adcDecimal(m uint8) {
	a := c.A
	var carryIn uint8
	if c.P.C() {
		carryIn = 1
	}

	binResult := a + m + carryIn
	c.P.SetOverflowFromAdd(a, m, binResult)
	c.P.SetNZ(binResult)

	lo := int16(a&0x0F) + int16(m&0x0F) + int16(carryIn)
	hi := int16(a>>4) + int16(m>>4)
	if lo > 9 {
		lo += 6
		hi++
	}
	carryOut := false
	if hi > 9 {
		hi += 6
		carryOut = true
	}
	c.A = uint8(hi<<4) | uint8(lo&0x0F)
	c.P.SetC(carryOut)
}

func (c *CPU) sbcDecimal(m uint8) {
	a := c.A
	var carryIn uint8
	if c.P.C() {
		carryIn = 1
	}
	borrow := int16(1 - carryIn)

	binResult := a + ^m + carryIn
	c.P.SetOverflowFromAdd(a, ^m, binResult)
	c.P.SetNZ(binResult)
	c.P.SetC(int16(a)-int16(m)-borrow >= 0)

	lo := int16(a&0x0F) - int16(m&0x0F) - borrow
	hi := int16(a>>4) - int16(m>>4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}
	c.A = uint8(hi<<4) | uint8(lo&0x0F)
}
