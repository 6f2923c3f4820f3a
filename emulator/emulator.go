// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/basicmachine/cpu"
	"github.com/ezrec/basicmachine/internal"
)

// START_FIRST_NONZERO selects the first nonzero word as the start address.
const START_FIRST_NONZERO = -1

var _memory_defines = map[string]int{
	"MEMORY_SIZE": cpu.MEMORY_SIZE,
	"WORD_MASK":   cpu.WORD_MASK,
}

var _register_defines = map[string]int{
	"ADDRESS_WIDTH": cpu.ADDRESS_WIDTH,
	"WORD_WIDTH":    cpu.WORD_WIDTH,
}

// Emulator state. CPU + memory image + program listing.
type Emulator struct {
	Verbose   bool         // If set, enables verbose logging.
	StepLimit int          // If nonzero, Run stops after this many cycles.
	*cpu.Cpu               // Reference to the CPU simulation.
	Program   *cpu.Program // Reference to the currently loaded program.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: cpu.NewProgram(),
	}

	return
}

// Defines returns an iterator over the machine constants a caller may
// predefine for the assembler. They are only symbols: a bare Assembler
// without them resolves the same names to 0. Register operands are always
// numeric, so no register names are defined.
func (emu *Emulator) Defines() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(maps.All(_memory_defines), maps.All(_register_defines))
}

// Reset powers on a fresh cpu, loads the program into memory and sets the
// PC to start. Out-of-range words are discarded. START_FIRST_NONZERO starts
// at the first nonzero word.
func (emu *Emulator) Reset(start int) (err error) {
	emu.Cpu = cpu.NewCpu()
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Memory.Verbose = emu.Verbose

	emu.Cpu.Memory.Load(emu.Program.Words)

	if start == START_FIRST_NONZERO {
		start = emu.Cpu.Memory.FirstNonZero()
	}
	emu.Cpu.PC.Set(start)

	if emu.Verbose {
		log.Printf("emulator: %d words loaded, start %04o", len(emu.Program.Words), emu.Cpu.PC.Get())
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() int {
	return int(emu.Cpu.PC.Get())
}

// Line returns the source line of the instruction at the PC.
func (emu *Emulator) Line() string {
	line, _ := emu.Program.Source(emu.Pc())
	return line
}

// Tick performs a single cycle of the emulator. done is set once the cpu
// has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Pc()
	line := emu.Line()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: pc, Line: line, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
	}

	done = emu.Cpu.Halted()

	return
}

// Run ticks the emulator until it halts, the context is cancelled or the
// step limit is reached. Cancellation is checked between cycles.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	steps := 0
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		if emu.StepLimit > 0 && steps >= emu.StepLimit {
			err = &ErrRuntime{Address: emu.Pc(), Line: emu.Line(), Err: ErrStepLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		steps++
		if err != nil || done {
			return
		}
	}
}
