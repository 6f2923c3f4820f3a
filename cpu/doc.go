// Package cpu implements the processor and the two-pass assembler for the
// basic machine.
//
// The machine has a 16-bit word and 2048 words of memory. The processor
// keeps a 12-bit program counter (PC) and memory address register (MAR),
// 16-bit memory buffer (MBR) and instruction (IR) registers, four general
// purpose registers (R0-R3), three index registers (X1-X3) and two floating
// point registers (FR0, FR1) holding a custom 16-bit floating format.
//
// Every instruction is a single word:
//
//	opcode(6) | R(2) | IX(2) | I(1) | address(5)
//
// The assembler translates symbolic source into that encoding, and produces
// the listing and load file formats consumed by the emulator.
package cpu
