package cpu

// Op identifies an instruction's operation independent of its addressing
// mode.
type Op int

// The documented 6502 operations. Undocumented operations are never
// produced by Decode; they surface as Illegal instead.
const (
	OpNone Op = iota
	ADC
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JMPIndirect
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

// Mode identifies an addressing mode.
type Mode int

const (
	ModeNone Mode = iota
	Implied
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (d,x)
	IndirectIndexed // (d),y
	Relative
)

// Kind distinguishes the three shapes an Instruction can take.
type Kind int

const (
	// OneByte instructions come from the fixed exception table and carry no
	// Mode: stack ops, flag ops, register transfers, and the control-flow
	// ops BRK/RTI/RTS/JSR/JMP. Most take no operand byte; JSR, JMP and
	// JMPIndirect read their own two operand bytes when executed.
	OneByte Kind = iota
	// Operand instructions consume an operand via the given Mode.
	Operand
	// Illegal marks an opcode byte with no defined semantics in this
	// core. Decode never fails; it reports Illegal instead.
	Illegal
)

// Instruction is the decoder's sole output: a tagged value identifying an
// opcode byte's operation, addressing mode, and legality.
type Instruction struct {
	Kind   Kind
	Op     Op
	Mode   Mode
	Opcode uint8
}

// opcodeTable is populated once by init() and then consulted by Decode as a
// flat O(1) lookup. The 6502 opcode space decomposes into the bit field
// "aaa bbb cc" (bits 7-5, 4-2, 1-0): cc picks which operation family a row
// belongs to, aaa picks the operation within that family, and bbb picks the
// addressing mode. That grid is irregular at the edges (several aaa/bbb
// combinations are undefined) and has a set of single-byte and branch
// opcodes that never fit the grid at all, so those are carved out first.
var opcodeTable [256]Instruction

func init() {
	for i := range opcodeTable {
		opcodeTable[i] = Instruction{Kind: Illegal, Opcode: uint8(i)}
	}

	setOneByte(map[uint8]Op{
		0x08: PHP, 0x28: PLP, 0x48: PHA, 0x68: PLA,
		0x88: DEY, 0xA8: TAY, 0xC8: INY, 0xE8: INX,
		0x18: CLC, 0x38: SEC, 0x58: CLI, 0x78: SEI,
		0x98: TYA, 0xB8: CLV, 0xD8: CLD, 0xF8: SED,
		0x8A: TXA, 0x9A: TXS, 0xAA: TAX, 0xBA: TSX,
		0xCA: DEX, 0xEA: NOP,
		0x00: BRK, 0x40: RTI, 0x60: RTS, 0x20: JSR,
		0x4C: JMP, 0x6C: JMPIndirect,
	})

	setOperand(Relative, map[uint8]Op{
		0x10: BPL, 0x30: BMI, 0x50: BVC, 0x70: BVS,
		0x90: BCC, 0xB0: BCS, 0xD0: BNE, 0xF0: BEQ,
	})

	// cc=01 family: ORA/AND/EOR/ADC/STA/LDA/CMP/SBC, full eight-mode grid.
	// STA has no immediate form (0x89 stays Illegal: a store can't target
	// an immediate operand).
	for _, g := range []struct {
		op    Op
		opc   [8]uint8 // indexed by bbb: (d,x) zp #i abs (d),y zp,X abs,Y abs,X
	}{
		{ORA, [8]uint8{0x01, 0x05, 0x09, 0x0D, 0x11, 0x15, 0x19, 0x1D}},
		{AND, [8]uint8{0x21, 0x25, 0x29, 0x2D, 0x31, 0x35, 0x39, 0x3D}},
		{EOR, [8]uint8{0x41, 0x45, 0x49, 0x4D, 0x51, 0x55, 0x59, 0x5D}},
		{ADC, [8]uint8{0x61, 0x65, 0x69, 0x6D, 0x71, 0x75, 0x79, 0x7D}},
		{STA, [8]uint8{0x81, 0x85, 0x00, 0x8D, 0x91, 0x95, 0x99, 0x9D}},
		{LDA, [8]uint8{0xA1, 0xA5, 0xA9, 0xAD, 0xB1, 0xB5, 0xB9, 0xBD}},
		{CMP, [8]uint8{0xC1, 0xC5, 0xC9, 0xCD, 0xD1, 0xD5, 0xD9, 0xDD}},
		{SBC, [8]uint8{0xE1, 0xE5, 0xE9, 0xED, 0xF1, 0xF5, 0xF9, 0xFD}},
	} {
		modes := [8]Mode{IndexedIndirect, ZeroPage, Immediate, Absolute, IndirectIndexed, ZeroPageX, AbsoluteY, AbsoluteX}
		for bbb, opc := range g.opc {
			if g.op == STA && modes[bbb] == Immediate {
				continue // 0x89: no such instruction, stays Illegal
			}
			opcodeTable[opc] = Instruction{Kind: Operand, Op: g.op, Mode: modes[bbb], Opcode: opc}
		}
	}

	// cc=10 family: shift/rotate/STX/LDX/DEC/INC. Each operation only
	// exists in the modes real hardware defines for it; there is no
	// generic eight-mode grid here the way there is for cc=01.
	setOperand(ZeroPage, map[uint8]Op{0x06: ASL, 0x26: ROL, 0x46: LSR, 0x66: ROR, 0x86: STX, 0xA6: LDX, 0xC6: DEC, 0xE6: INC})
	setOperand(Accumulator, map[uint8]Op{0x0A: ASL, 0x2A: ROL, 0x4A: LSR, 0x6A: ROR})
	setOperand(Immediate, map[uint8]Op{0xA2: LDX})
	setOperand(Absolute, map[uint8]Op{0x0E: ASL, 0x2E: ROL, 0x4E: LSR, 0x6E: ROR, 0x8E: STX, 0xAE: LDX, 0xCE: DEC, 0xEE: INC})
	setOperand(ZeroPageX, map[uint8]Op{0x16: ASL, 0x36: ROL, 0x56: LSR, 0x76: ROR, 0xD6: DEC, 0xF6: INC})
	setOperand(ZeroPageY, map[uint8]Op{0x96: STX, 0xB6: LDX})
	setOperand(AbsoluteX, map[uint8]Op{0x1E: ASL, 0x3E: ROL, 0x5E: LSR, 0x7E: ROR, 0xDE: DEC, 0xFE: INC})
	setOperand(AbsoluteY, map[uint8]Op{0xBE: LDX})

	// cc=00 family: BIT/STY/LDY/CPY/CPX. Immediate is valid only for
	// LDY/CPY/CPX (BIT and STY have no immediate form).
	setOperand(Immediate, map[uint8]Op{0xA0: LDY, 0xC0: CPY, 0xE0: CPX})
	setOperand(ZeroPage, map[uint8]Op{0x24: BIT, 0x84: STY, 0xA4: LDY, 0xC4: CPY, 0xE4: CPX})
	setOperand(Absolute, map[uint8]Op{0x2C: BIT, 0x8C: STY, 0xAC: LDY, 0xCC: CPY, 0xEC: CPX})
	setOperand(ZeroPageX, map[uint8]Op{0x94: STY, 0xB4: LDY})
	setOperand(AbsoluteX, map[uint8]Op{0xBC: LDY})

	// cc=11 is entirely illegal and is left as the Illegal default set above.
}

func setOneByte(ops map[uint8]Op) {
	for opc, op := range ops {
		opcodeTable[opc] = Instruction{Kind: OneByte, Op: op, Opcode: opc}
	}
}

func setOperand(mode Mode, ops map[uint8]Op) {
	for opc, op := range ops {
		opcodeTable[opc] = Instruction{Kind: Operand, Op: op, Mode: mode, Opcode: opc}
	}
}

// Decode maps a single opcode byte to its Instruction. It never fails or
// panics: any byte with no defined semantics decodes as Illegal. Decoding
// the same byte twice always yields the same Instruction.
func Decode(opcode uint8) Instruction {
	return opcodeTable[opcode]
}
