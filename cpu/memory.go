package cpu

import (
	"log"
)

const (
	MEMORY_SIZE = 2048   // Words of memory.
	WORD_MASK   = 0xffff // Mask of a memory word.
)

// Memory is the flat, zero initialized word store of the machine.
//
// Accesses outside of [0, MEMORY_SIZE) are fail-soft: they are counted in
// Faults (and logged when Verbose is set), reads return 0 and writes are
// discarded.
type Memory struct {
	Verbose bool // Set to log each out-of-range access.
	Faults  int  // Count of out-of-range accesses.

	data [MEMORY_SIZE]uint16
}

// Contains returns true if addr is a valid memory address.
func (mem *Memory) Contains(addr int) bool {
	return addr >= 0 && addr < len(mem.data)
}

// Read returns the word at addr.
func (mem *Memory) Read(addr int) (value uint16) {
	if !mem.Contains(addr) {
		mem.Faults++
		if mem.Verbose {
			log.Printf("%v", f("memory read: %v", ErrAddress(addr)))
		}
		return
	}

	return mem.data[addr]
}

// Write stores value, masked to a word, at addr.
func (mem *Memory) Write(addr int, value int) {
	if !mem.Contains(addr) {
		mem.Faults++
		if mem.Verbose {
			log.Printf("%v", f("memory write: %v", ErrAddress(addr)))
		}
		return
	}

	mem.data[addr] = uint16(value & WORD_MASK)
}

// Reset zeros all of memory. Registers are not affected.
func (mem *Memory) Reset() {
	clear(mem.data[:])
	mem.Faults = 0
}

// Load writes every address/word pair of the mapping into memory.
func (mem *Memory) Load(words map[int]uint16) {
	for addr, word := range words {
		mem.Write(addr, int(word))
	}
}

// FirstNonZero returns the address of the first nonzero word, or 0 if
// memory is empty.
func (mem *Memory) FirstNonZero() int {
	for addr, word := range mem.data {
		if word != 0 {
			return addr
		}
	}

	return 0
}
