// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"log"
)

// State is the execution state of the cpu.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
)

// Cpu is the simulation context for the processor.
//
// A Cpu is not safe for concurrent use; callers driving it from more than
// one goroutine must serialize access. Use NewCpu: the zero Cpu runs, but
// its PC and MAR are full words instead of 12 bits.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Registers        // Register file.
	Memory    Memory // Main memory.
	Vector    Vector // Vector unit, attached to Memory.
	State     State  // Running or halted.

	Ticks int // Executed cycle counter.
}

// NewCpu creates a new cpu with zeroed registers and memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Registers: NewRegisters(),
	}
	cpu.Vector.Memory = &cpu.Memory

	return
}

// Halted returns true once the cpu has stopped.
func (cpu *Cpu) Halted() bool {
	return cpu.State == STATE_HALTED
}

// String returns the current register state, in octal.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("PC=%04o  IR=%06o  MAR=%04o  MBR=%06o  %v\n",
		cpu.PC.Get(), cpu.IR.Get(), cpu.MAR.Get(), cpu.MBR.Get(), cpu.State)
	text += fmt.Sprintf("R0=%v  R1=%v  R2=%v  R3=%v\n",
		cpu.GPR[0], cpu.GPR[1], cpu.GPR[2], cpu.GPR[3])
	text += fmt.Sprintf("X1=%v  X2=%v  X3=%v\n",
		cpu.IXR[0], cpu.IXR[1], cpu.IXR[2])
	text += fmt.Sprintf("FR0=%v (%g)  FR1=%v (%g)\n",
		cpu.FR[0], FpToFloat(cpu.FR[0].Get()), cpu.FR[1], FpToFloat(cpu.FR[1].Get()))

	return
}

// Fetch loads the word at PC into IR via MAR and MBR, and advances PC.
func (cpu *Cpu) Fetch() (inst Instruction) {
	pc := int(cpu.PC.Get())
	cpu.MAR.Set(pc)
	cpu.MBR.Set(int(cpu.Memory.Read(int(cpu.MAR.Get()))))
	cpu.IR.Set(int(cpu.MBR.Get()))
	cpu.PC.Set(pc + 1)

	return Decode(cpu.IR.Get())
}

// EffectiveAddress resolves the address of an instruction's operand.
// Indexing is applied first, then at most one level of indirection.
func (cpu *Cpu) EffectiveAddress(inst Instruction) (ea int) {
	ea = inst.Address
	if inst.IX != 0 {
		ea += int(cpu.IXR[inst.IX-1].Get())
	}
	if inst.Indirect {
		ea = int(cpu.Memory.Read(ea))
	}

	return
}

// Tick executes a single fetch, decode, execute cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted() {
		err = ErrHalted
		return
	}

	cpu.Memory.Verbose = cpu.Verbose

	inst := cpu.Fetch()

	err = cpu.Execute(inst)

	cpu.Ticks++

	return
}

// Execute executes a single decoded instruction. An opcode without
// execution semantics halts the cpu and returns ErrOpcode.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	ea := cpu.EffectiveAddress(inst)

	if cpu.Verbose {
		log.Printf("%04o: %v ; ea=%04o", int(cpu.PC.Get())-1, inst, ea)
	}

	mem := &cpu.Memory

	switch inst.Opcode {
	case OP_HLT:
		cpu.State = STATE_HALTED
	case OP_LDR:
		cpu.GPR[inst.R].Set(int(mem.Read(ea)))
	case OP_STR:
		mem.Write(ea, int(cpu.GPR[inst.R].Get()))
	case OP_FADD:
		if fr := cpu.floatRegister(inst); fr != nil {
			fr.Set(int(FpAdd(fr.Get(), mem.Read(ea))))
		}
	case OP_FSUB:
		if fr := cpu.floatRegister(inst); fr != nil {
			fr.Set(int(FpSub(fr.Get(), mem.Read(ea))))
		}
	case OP_VADD:
		cpu.vector().Add(cpu.vectorLength(inst), ea)
	case OP_VSUB:
		cpu.vector().Sub(cpu.vectorLength(inst), ea)
	case OP_CNVRT:
		switch inst.R {
		case 0:
			cpu.FR[0].Set(int(IntToFp(mem.Read(ea))))
		case 1:
			cpu.GPR[inst.IX].Set(int(FpToInt(mem.Read(ea))))
		}
	case OP_LDFR:
		if fr := cpu.floatRegister(inst); fr != nil {
			fr.Set(int(mem.Read(ea)))
		}
	case OP_STFR:
		if fr := cpu.floatRegister(inst); fr != nil {
			mem.Write(ea, int(fr.Get()))
		}
	default:
		err = ErrOpcode(cpu.IR.Get())
		log.Printf("%v", f("%04o: %v, halting", int(cpu.PC.Get())-1, err))
		cpu.State = STATE_HALTED
	}

	return
}

// floatRegister selects FR0 or FR1. Other R values select nothing.
func (cpu *Cpu) floatRegister(inst Instruction) *Register {
	if inst.R >= len(cpu.FR) {
		if cpu.Verbose {
			log.Printf("%v: no floating register %d", inst.Opcode, inst.R)
		}
		return nil
	}

	return &cpu.FR[inst.R]
}

// vector returns the vector unit, attaching it to memory if needed.
func (cpu *Cpu) vector() *Vector {
	if cpu.Vector.Memory == nil {
		cpu.Vector.Memory = &cpu.Memory
	}

	return &cpu.Vector
}

// vectorLength is the element count held in FR0 when R is 0, otherwise FR1,
// taken as an unsigned word.
func (cpu *Cpu) vectorLength(inst Instruction) uint16 {
	if inst.R == 0 {
		return cpu.FR[0].Get()
	}

	return cpu.FR[1].Get()
}
