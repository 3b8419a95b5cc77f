// Package disassemble renders a single instruction at a given address as
// text, for debugging and test-failure diagnostics. It is not part of the
// core fetch-decode-execute path: it re-reads memory through a plain
// bus.Bus rather than the CPU's own logging wrapper, so calling it never
// perturbs a cycle log under test.
package disassemble

import (
	"fmt"

	"github.com/m6502core/core/bus"
	"github.com/m6502core/core/cpu"
)

var mnemonics = map[cpu.Op]string{
	cpu.ADC: "ADC", cpu.AND: "AND", cpu.ASL: "ASL", cpu.BCC: "BCC", cpu.BCS: "BCS",
	cpu.BEQ: "BEQ", cpu.BIT: "BIT", cpu.BMI: "BMI", cpu.BNE: "BNE", cpu.BPL: "BPL",
	cpu.BRK: "BRK", cpu.BVC: "BVC", cpu.BVS: "BVS", cpu.CLC: "CLC", cpu.CLD: "CLD",
	cpu.CLI: "CLI", cpu.CLV: "CLV", cpu.CMP: "CMP", cpu.CPX: "CPX", cpu.CPY: "CPY",
	cpu.DEC: "DEC", cpu.DEX: "DEX", cpu.DEY: "DEY", cpu.EOR: "EOR", cpu.INC: "INC",
	cpu.INX: "INX", cpu.INY: "INY", cpu.JMP: "JMP", cpu.JMPIndirect: "JMP",
	cpu.JSR: "JSR", cpu.LDA: "LDA", cpu.LDX: "LDX", cpu.LDY: "LDY", cpu.LSR: "LSR",
	cpu.NOP: "NOP", cpu.ORA: "ORA", cpu.PHA: "PHA", cpu.PHP: "PHP", cpu.PLA: "PLA",
	cpu.PLP: "PLP", cpu.ROL: "ROL", cpu.ROR: "ROR", cpu.RTI: "RTI", cpu.RTS: "RTS",
	cpu.SBC: "SBC", cpu.SEC: "SEC", cpu.SED: "SED", cpu.SEI: "SEI", cpu.STA: "STA",
	cpu.STX: "STX", cpu.STY: "STY", cpu.TAX: "TAX", cpu.TAY: "TAY", cpu.TSX: "TSX",
	cpu.TXA: "TXA", cpu.TXS: "TXS", cpu.TYA: "TYA",
}

// operandBytes reports how many bytes after the opcode byte this
// instruction consumes, so Step can tell the caller how far to advance.
func operandBytes(inst cpu.Instruction) int {
	if inst.Kind == cpu.OneByte {
		switch inst.Op {
		case cpu.JSR, cpu.JMP, cpu.JMPIndirect:
			return 2
		default:
			return 0
		}
	}
	switch inst.Mode {
	case cpu.Implied, cpu.Accumulator:
		return 0
	case cpu.Immediate, cpu.ZeroPage, cpu.ZeroPageX, cpu.ZeroPageY,
		cpu.IndexedIndirect, cpu.IndirectIndexed, cpu.Relative:
		return 1
	case cpu.Absolute, cpu.AbsoluteX, cpu.AbsoluteY, cpu.Indirect:
		return 2
	default:
		return 0
	}
}

// Step disassembles the instruction at pc and returns its text along with
// the number of bytes (including the opcode byte) it occupies. Besides the
// opcode it reads only the operand bytes the instruction consumes (pc+1,
// and pc+2 for two-byte operands).
func Step(pc uint16, b bus.Bus) (string, int) {
	opcode := b.Read(pc)
	inst := cpu.Decode(opcode)

	if inst.Kind == cpu.Illegal {
		return fmt.Sprintf(".byte $%02X", opcode), 1
	}

	size := 1 + operandBytes(inst)
	name := mnemonics[inst.Op]

	var text string
	switch {
	case inst.Kind == cpu.OneByte && (inst.Op == cpu.JSR || inst.Op == cpu.JMP):
		lo, hi := b.Read(pc+1), b.Read(pc+2)
		text = fmt.Sprintf("%s $%02X%02X", name, hi, lo)
	case inst.Kind == cpu.OneByte && inst.Op == cpu.JMPIndirect:
		lo, hi := b.Read(pc+1), b.Read(pc+2)
		text = fmt.Sprintf("%s ($%02X%02X)", name, hi, lo)
	case inst.Kind == cpu.OneByte:
		text = name
	case inst.Mode == cpu.Implied, inst.Mode == cpu.Accumulator:
		text = name
	case inst.Mode == cpu.Immediate:
		text = fmt.Sprintf("%s #$%02X", name, b.Read(pc+1))
	case inst.Mode == cpu.ZeroPage:
		text = fmt.Sprintf("%s $%02X", name, b.Read(pc+1))
	case inst.Mode == cpu.ZeroPageX:
		text = fmt.Sprintf("%s $%02X,X", name, b.Read(pc+1))
	case inst.Mode == cpu.ZeroPageY:
		text = fmt.Sprintf("%s $%02X,Y", name, b.Read(pc+1))
	case inst.Mode == cpu.Absolute:
		lo, hi := b.Read(pc+1), b.Read(pc+2)
		text = fmt.Sprintf("%s $%02X%02X", name, hi, lo)
	case inst.Mode == cpu.AbsoluteX:
		lo, hi := b.Read(pc+1), b.Read(pc+2)
		text = fmt.Sprintf("%s $%02X%02X,X", name, hi, lo)
	case inst.Mode == cpu.AbsoluteY:
		lo, hi := b.Read(pc+1), b.Read(pc+2)
		text = fmt.Sprintf("%s $%02X%02X,Y", name, hi, lo)
	case inst.Mode == cpu.IndexedIndirect:
		text = fmt.Sprintf("%s ($%02X,X)", name, b.Read(pc+1))
	case inst.Mode == cpu.IndirectIndexed:
		text = fmt.Sprintf("%s ($%02X),Y", name, b.Read(pc+1))
	case inst.Mode == cpu.Relative:
		offset := int8(b.Read(pc + 1))
		target := uint16(int32(pc) + 2 + int32(offset))
		text = fmt.Sprintf("%s $%04X", name, target)
	default:
		text = name
	}
	return text, size
}
