package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstruction_Encode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		inst Instruction
		word uint16
		text string
	}){
		{Instruction{}, 0, "HLT"},
		{Instruction{Opcode: OP_LDR, R: 1, Address: 10}, 0x050a, "LDR 1,0,10"},
		{Instruction{Opcode: OP_STR, R: 3, IX: 2, Indirect: true, Address: 31}, 0x0bbf, "STR 3,2,31,I"},
		{Instruction{Opcode: OP_LDFR, R: 1, Address: 4}, 0xa104, "LDFR 1,0,4"},
		{Instruction{Opcode: OP_VADD, IX: 1, Address: 20}, 0x9454, "VADD 0,1,20"},
	}

	for _, entry := range table {
		assert.Equal(entry.word, entry.inst.Encode(), entry.text)
		assert.Equal(entry.inst, Decode(entry.word), entry.text)
		assert.Equal(entry.text, entry.inst.String())
	}
}

func TestInstruction_Truncate(t *testing.T) {
	assert := assert.New(t)

	inst := Instruction{Opcode: OP_LDR, R: 5, IX: 7, Address: 0x25}
	word := inst.Encode()
	assert.Equal(Instruction{Opcode: OP_LDR, R: 1, IX: 3, Address: 5}, Decode(word))
}

func TestDecode_All(t *testing.T) {
	assert := assert.New(t)

	for word := range 0x10000 {
		assert.Equal(uint16(word), Decode(uint16(word)).Encode())
	}
}

func TestLookupOpcode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		mnemonic string
		op       Opcode
		ok       bool
	}){
		{"HLT", OP_HLT, true},
		{"ldr", OP_LDR, true},
		{"Str", OP_STR, true},
		{"LDFR", OP_LDFR, true},
		{"ldfr", Opcode(0x28), true},
		{"RRC", OP_FADD, true},
		{"CNVRT", OP_CNVRT, true},
		{"NOP", 0, false},
		{"", 0, false},
	}

	for _, entry := range table {
		op, ok := LookupOpcode(entry.mnemonic)
		assert.Equal(entry.ok, ok, entry.mnemonic)
		assert.Equal(entry.op, op, entry.mnemonic)
	}
}

func TestOpcode_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("FADD", OP_FADD.String())
	assert.Equal("LDX", OP_LDX.String())
	assert.Equal("Opcode(77)", Opcode(0x3f).String())

	for name, op := range mnemonicMap {
		if name == "RRC" {
			continue
		}
		assert.Equal(name, op.String())
	}
}

func TestOpcode_Executable(t *testing.T) {
	assert := assert.New(t)

	for _, op := range []Opcode{OP_HLT, OP_LDR, OP_STR, OP_FADD, OP_FSUB,
		OP_VADD, OP_VSUB, OP_CNVRT, OP_LDFR, OP_STFR} {
		assert.True(op.Executable(), op.String())
	}

	for _, op := range []Opcode{OP_LDA, OP_LDX, OP_JZ, OP_TRAP, OP_MLT, Opcode(0x3f)} {
		assert.False(op.Executable(), op.String())
	}
}
