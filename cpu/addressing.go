package cpu

// This file computes effective addresses and emits the bus cycles each
// addressing mode produces on real hardware, including the dummy reads
// that only matter for the cycle log. It does not interpret opcodes; it is
// called once per Step from the per-operation bodies in execute.go, each
// of which already knows which mode it was decoded with.
//
// The opcode fetch itself is logged by Step before any of these run, and
// none of them re-read or re-log that first byte.

// samePage reports whether a and b fall in the same 256-byte page.
func samePage(a, b uint16) bool {
	return a&0xFF00 == b&0xFF00
}

// fetchOperandByte reads the byte at PC and advances PC by one. Used by
// Immediate, Relative, and the low/high halves of every multi-byte mode.
func (c *CPU) fetchOperandByte() uint8 {
	v := c.read(c.PC)
	c.PC++
	return v
}

// fetchOperandWord reads a little-endian 16-bit value starting at PC and
// advances PC by two.
func (c *CPU) fetchOperandWord() uint16 {
	lo := c.fetchOperandByte()
	hi := c.fetchOperandByte()
	return uint16(hi)<<8 | uint16(lo)
}

// dummyReadPC reads the byte at PC without advancing it: the one extra
// cycle Implied and Accumulator instructions spend before executing.
func (c *CPU) dummyReadPC() {
	c.read(c.PC)
}

// addrZeroPage resolves ZeroPage: one operand byte, which is the address.
func (c *CPU) addrZeroPage() uint16 {
	return uint16(c.fetchOperandByte())
}

// addrZeroPageIndexed resolves ZeroPageX/ZeroPageY: the base byte plus the
// index, wrapping within page zero, with a dummy read of the unindexed
// base address before the wrap is applied.
func (c *CPU) addrZeroPageIndexed(index uint8) uint16 {
	base := c.fetchOperandByte()
	c.read(uint16(base))
	return uint16(base + index)
}

// addrAbsolute resolves Absolute: a little-endian 16-bit address.
func (c *CPU) addrAbsolute() uint16 {
	return c.fetchOperandWord()
}

// addrAbsoluteIndexed resolves AbsoluteX/AbsoluteY. write forces the
// boundary-crossing dummy read to happen unconditionally, matching real
// hardware's behavior for stores and read-modify-write instructions (which
// never skip it, since the real chip can't yet know at that point in the
// cycle sequence whether the access is a read it could have skipped).
func (c *CPU) addrAbsoluteIndexed(index uint8, write bool) uint16 {
	base := c.fetchOperandWord()
	effective := base + uint16(index)
	crossed := !samePage(base, effective)
	if crossed || write {
		c.read((base & 0xFF00) | (effective & 0x00FF))
	}
	return effective
}

// addrIndirect resolves the Indirect mode used only by JMP, reproducing
// the page-wrap bug: the high byte of the target is fetched from
// (pointer&0xFF00)|((pointer+1)&0xFF) instead of pointer+1 when that would
// cross a page boundary.
func (c *CPU) addrIndirect() uint16 {
	pointer := c.fetchOperandWord()
	lo := c.read(pointer)
	hi := c.read((pointer & 0xFF00) | ((pointer + 1) & 0x00FF))
	return uint16(hi)<<8 | uint16(lo)
}

// addrIndexedIndirect resolves (zp,X): the zero-page pointer table is
// indexed by X before the pointer is read, with a dummy read of the
// unindexed zero-page byte first.
func (c *CPU) addrIndexedIndirect() uint16 {
	zp := c.fetchOperandByte()
	c.read(uint16(zp))
	ptr := zp + c.X
	lo := c.read(uint16(ptr))
	hi := c.read(uint16(ptr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// addrIndirectIndexed resolves (zp),Y: the zero-page pointer is read
// first, then Y is added to the pointed-to base, with the same
// conditional/forced dummy-read rule as AbsoluteX/Y on a page cross.
func (c *CPU) addrIndirectIndexed(write bool) uint16 {
	zp := c.fetchOperandByte()
	lo := c.read(uint16(zp))
	hi := c.read(uint16(zp + 1))
	base := uint16(hi)<<8 | uint16(lo)
	effective := base + uint16(c.Y)
	crossed := !samePage(base, effective)
	if crossed || write {
		c.read((base & 0xFF00) | (effective & 0x00FF))
	}
	return effective
}

// addrRelative resolves Relative: one operand byte, a signed displacement.
func (c *CPU) addrRelative() int8 {
	return int8(c.fetchOperandByte())
}

// resolve computes the effective address for any non-Immediate,
// non-Accumulator, non-Implied, non-Relative mode. write selects the
// forced-dummy-read behavior on the indexed/indirect-indexed modes.
func (c *CPU) resolve(mode Mode, write bool) uint16 {
	switch mode {
	case ZeroPage:
		return c.addrZeroPage()
	case ZeroPageX:
		return c.addrZeroPageIndexed(c.X)
	case ZeroPageY:
		return c.addrZeroPageIndexed(c.Y)
	case Absolute:
		return c.addrAbsolute()
	case AbsoluteX:
		return c.addrAbsoluteIndexed(c.X, write)
	case AbsoluteY:
		return c.addrAbsoluteIndexed(c.Y, write)
	case Indirect:
		return c.addrIndirect()
	case IndexedIndirect:
		return c.addrIndexedIndirect()
	case IndirectIndexed:
		return c.addrIndirectIndexed(write)
	default:
		// Unreachable from a legally decoded instruction; execute.go
		// never calls resolve with Implied/Accumulator/Immediate/Relative.
		return 0
	}
}

// rmw performs the three-cycle read-modify-write pattern at addr: read the
// current value, write it back unmodified (the dummy write real hardware
// performs before it has computed the new value), then write the result
// of applying f.
func (c *CPU) rmw(addr uint16, f func(uint8) uint8) uint8 {
	v := c.read(addr)
	c.write(addr, v)
	nv := f(v)
	c.write(addr, nv)
	return nv
}
