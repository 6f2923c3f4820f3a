package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the 6-bit operation field of an instruction.
type Opcode int

// Instruction field layout: opcode(6) | R(2) | IX(2) | I(1) | address(5)
const (
	OPCODE_SHIFT  = 10
	OPCODE_MASK   = 0x3f
	R_SHIFT       = 8
	R_MASK        = 0x3
	IX_SHIFT      = 6
	IX_MASK       = 0x3
	I_SHIFT       = 5
	I_MASK        = 0x1
	ADDRESS_SHIFT = 0
	ADDRESS_MASK  = 0x1f
)

// Opcodes executed by the cpu.
const (
	OP_HLT   = Opcode(0x00) // HLT
	OP_LDR   = Opcode(0x01) // LDR
	OP_STR   = Opcode(0x02) // STR
	OP_FADD  = Opcode(0x22) // FADD
	OP_FSUB  = Opcode(0x24) // FSUB
	OP_VADD  = Opcode(0x25) // VADD
	OP_VSUB  = Opcode(0x26) // VSUB
	OP_CNVRT = Opcode(0x27) // CNVRT
	OP_LDFR  = Opcode(0x28) // LDFR
	OP_STFR  = Opcode(0x29) // STFR
)

// Opcodes known to the assembler, but not executed by the cpu.
const (
	OP_LDA  = Opcode(0x03) // LDA
	OP_AMR  = Opcode(0x04) // AMR
	OP_SMR  = Opcode(0x05) // SMR
	OP_AIR  = Opcode(0x06) // AIR
	OP_SIR  = Opcode(0x07) // SIR
	OP_JZ   = Opcode(0x08) // JZ
	OP_JNE  = Opcode(0x09) // JNE
	OP_JCC  = Opcode(0x0a) // JCC
	OP_JMA  = Opcode(0x0b) // JMA
	OP_JSR  = Opcode(0x0c) // JSR
	OP_RFS  = Opcode(0x0d) // RFS
	OP_SOB  = Opcode(0x0e) // SOB
	OP_JGE  = Opcode(0x0f) // JGE
	OP_IN   = Opcode(0x14) // IN
	OP_OUT  = Opcode(0x15) // OUT
	OP_TRAP = Opcode(0x18) // TRAP
	OP_SRC  = Opcode(0x1f) // SRC
	OP_LDX  = Opcode(0x21) // LDX
	OP_STX  = Opcode(0x2a) // STX
	OP_CHK  = Opcode(0x33) // CHK
	OP_MLT  = Opcode(0x38) // MLT
	OP_DVD  = Opcode(0x39) // DVD
	OP_TRR  = Opcode(0x3a) // TRR
	OP_AND  = Opcode(0x3b) // AND
	OP_ORR  = Opcode(0x3c) // ORR
	OP_NOT  = Opcode(0x3d) // NOT
)

// mnemonicMap maps assembler mnemonics to opcodes.
var mnemonicMap = map[string]Opcode{
	"HLT":   OP_HLT,
	"TRAP":  OP_TRAP,
	"LDR":   OP_LDR,
	"LDA":   OP_LDA,
	"STR":   OP_STR,
	"LDX":   OP_LDX,
	"STX":   OP_STX,
	"JZ":    OP_JZ,
	"JNE":   OP_JNE,
	"JCC":   OP_JCC,
	"JMA":   OP_JMA,
	"JSR":   OP_JSR,
	"RFS":   OP_RFS,
	"SOB":   OP_SOB,
	"JGE":   OP_JGE,
	"AMR":   OP_AMR,
	"SMR":   OP_SMR,
	"AIR":   OP_AIR,
	"SIR":   OP_SIR,
	"MLT":   OP_MLT,
	"DVD":   OP_DVD,
	"TRR":   OP_TRR,
	"AND":   OP_AND,
	"ORR":   OP_ORR,
	"NOT":   OP_NOT,
	"SRC":   OP_SRC,
	"RRC":   OP_FADD, // Shares its encoding with FADD.
	"IN":    OP_IN,
	"OUT":   OP_OUT,
	"CHK":   OP_CHK,
	"FADD":  OP_FADD,
	"FSUB":  OP_FSUB,
	"VADD":  OP_VADD,
	"VSUB":  OP_VSUB,
	"CNVRT": OP_CNVRT,
	"LDFR":  OP_LDFR,
	"STFR":  OP_STFR,
}

// opcodeName is the reverse of mnemonicMap.
var opcodeName = func() map[Opcode]string {
	names := make(map[Opcode]string, len(mnemonicMap))
	for name, op := range mnemonicMap {
		if name == "RRC" {
			continue
		}
		names[op] = name
	}
	return names
}()

// LookupOpcode returns the opcode of a mnemonic, case insensitive.
func LookupOpcode(mnemonic string) (op Opcode, ok bool) {
	op, ok = mnemonicMap[strings.ToUpper(mnemonic)]
	return
}

// Executable returns true if the cpu defines semantics for the opcode.
func (op Opcode) Executable() bool {
	switch op {
	case OP_HLT, OP_LDR, OP_STR,
		OP_FADD, OP_FSUB, OP_VADD, OP_VSUB,
		OP_CNVRT, OP_LDFR, OP_STFR:
		return true
	}

	return false
}

func (op Opcode) String() string {
	name, ok := opcodeName[op]
	if !ok {
		return fmt.Sprintf("Opcode(%02o)", int(op))
	}
	return name
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Opcode   Opcode
	R        int  // General register, or FR0/FR1 for floating operations.
	IX       int  // Index register; 0 is none, 1-3 select X1-X3.
	Indirect bool // Indirect addressing.
	Address  int
}

// Decode splits an instruction word into its fields.
func Decode(word uint16) (inst Instruction) {
	inst.Opcode = Opcode((word >> OPCODE_SHIFT) & OPCODE_MASK)
	inst.R = int((word >> R_SHIFT) & R_MASK)
	inst.IX = int((word >> IX_SHIFT) & IX_MASK)
	inst.Indirect = ((word >> I_SHIFT) & I_MASK) != 0
	inst.Address = int((word >> ADDRESS_SHIFT) & ADDRESS_MASK)
	return
}

// Encode packs the instruction into a word. Each field is truncated to
// its width.
func (inst Instruction) Encode() (word uint16) {
	word = (uint16(inst.Opcode) & OPCODE_MASK) << OPCODE_SHIFT
	word |= (uint16(inst.R) & R_MASK) << R_SHIFT
	word |= (uint16(inst.IX) & IX_MASK) << IX_SHIFT
	if inst.Indirect {
		word |= 1 << I_SHIFT
	}
	word |= (uint16(inst.Address) & ADDRESS_MASK) << ADDRESS_SHIFT
	return
}

// String returns the assembly language form of the instruction.
func (inst Instruction) String() (out string) {
	if inst.Opcode == OP_HLT {
		return inst.Opcode.String()
	}

	out = fmt.Sprintf("%v %d,%d,%d", inst.Opcode, inst.R, inst.IX, inst.Address)
	if inst.Indirect {
		out += ",I"
	}

	return
}
