package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name     string
		width    uint
		value    int
		expected uint16
	}){
		{"pc", ADDRESS_WIDTH, 0o1234, 0o1234},
		{"pc_wrap", ADDRESS_WIDTH, 0x1000, 0},
		{"pc_mask", ADDRESS_WIDTH, 0x1fff, 0xfff},
		{"word", WORD_WIDTH, 0xabcd, 0xabcd},
		{"word_mask", WORD_WIDTH, 0x12345, 0x2345},
		{"word_negative", WORD_WIDTH, -1, 0xffff},
	}

	for _, entry := range table {
		reg := NewRegister(entry.width)
		assert.Equal(uint16(0), reg.Get(), entry.name)
		reg.Set(entry.value)
		assert.Equal(entry.expected, reg.Get(), entry.name)
	}
}

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	regs := NewRegisters()

	assert.Equal(uint(ADDRESS_WIDTH), regs.PC.Width)
	assert.Equal(uint(ADDRESS_WIDTH), regs.MAR.Width)
	assert.Equal(uint(WORD_WIDTH), regs.MBR.Width)
	assert.Equal(uint(WORD_WIDTH), regs.IR.Width)
	for n := range regs.GPR {
		assert.Equal(uint(WORD_WIDTH), regs.GPR[n].Width)
	}
	for n := range regs.IXR {
		assert.Equal(uint(WORD_WIDTH), regs.IXR[n].Width)
	}
	for n := range regs.FR {
		assert.Equal(uint(WORD_WIDTH), regs.FR[n].Width)
	}

	regs.GPR[2].Set(0o17)
	assert.Equal("000017", regs.GPR[2].String())
}

func TestRegister_ZeroWidth(t *testing.T) {
	assert := assert.New(t)

	var reg Register
	reg.Set(0x12345)
	assert.Equal(uint16(0x2345), reg.Get())

	reg.Set(-2)
	assert.Equal(uint16(0xfffe), reg.Get())
}
