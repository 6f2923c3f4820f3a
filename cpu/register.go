package cpu

import (
	"fmt"
)

// Register widths.
const (
	ADDRESS_WIDTH = 12 // PC, MAR
	WORD_WIDTH    = 16 // MBR, IR, GPR, IXR, FR
)

// Register is a fixed width register. Writes are masked to the width,
// reads return the stored value unmodified. A zero Width is a full word.
type Register struct {
	Width uint
	value uint16
}

// NewRegister creates a zeroed register of the given bit width.
func NewRegister(width uint) Register {
	return Register{Width: width}
}

// Set stores value masked to the register width.
func (reg *Register) Set(value int) {
	width := reg.Width
	if width == 0 {
		width = WORD_WIDTH
	}
	mask := (1 << width) - 1
	reg.value = uint16(value & mask)
}

// Get returns the stored value.
func (reg *Register) Get() uint16 {
	return reg.value
}

func (reg Register) String() string {
	return fmt.Sprintf("%06o", reg.value)
}

// Registers is the complete register file of the machine.
type Registers struct {
	PC  Register    // Program counter.
	MAR Register    // Memory address register.
	MBR Register    // Memory buffer register.
	IR  Register    // Instruction register.
	GPR [4]Register // General purpose registers R0-R3.
	IXR [3]Register // Index registers X1-X3.
	FR  [2]Register // Floating point registers FR0, FR1.
}

// NewRegisters creates a zeroed register file.
func NewRegisters() (regs Registers) {
	regs.PC = NewRegister(ADDRESS_WIDTH)
	regs.MAR = NewRegister(ADDRESS_WIDTH)
	regs.MBR = NewRegister(WORD_WIDTH)
	regs.IR = NewRegister(WORD_WIDTH)
	for n := range regs.GPR {
		regs.GPR[n] = NewRegister(WORD_WIDTH)
	}
	for n := range regs.IXR {
		regs.IXR[n] = NewRegister(WORD_WIDTH)
	}
	for n := range regs.FR {
		regs.FR[n] = NewRegister(WORD_WIDTH)
	}

	return
}
