package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram()
	prog.Words[30] = 3
	prog.Words[10] = 1
	prog.Words[20] = 2

	var addrs []int
	var words []uint16
	for addr, word := range prog.Codes() {
		addrs = append(addrs, addr)
		words = append(words, word)
	}

	assert.Equal([]int{10, 20, 30}, addrs)
	assert.Equal([]uint16{1, 2, 3}, words)
}

func TestProgram_Codes_EarlyReturn(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram()
	for addr := range 10 {
		prog.Words[addr] = uint16(addr)
	}

	count := 0
	for addr := range prog.Codes() {
		count++
		if addr == 2 {
			break
		}
	}

	assert.Equal(3, count)
}

func TestProgram_Codes_Empty(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram()
	for range prog.Codes() {
		assert.Fail("no codes expected")
	}
	assert.Equal("", prog.LoadFile())
}

func TestProgram_WriteLoadFile(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram()
	prog.Words[0o7777] = 0xffff
	prog.Words[1] = 0o1234

	var sb strings.Builder
	assert.NoError(prog.WriteLoadFile(&sb))
	assert.Equal("000001 001234\n007777 177777", sb.String())
	assert.False(strings.HasSuffix(sb.String(), "\n"))
}

func TestProgram_ReadLoadFile(t *testing.T) {
	assert := assert.New(t)

	prog, err := ReadLoadFile(strings.NewReader("000006 002412\n\n000007 000000 extra\n"))
	assert.NoError(err)
	assert.Equal(map[int]uint16{6: 0o2412, 7: 0}, prog.Words)

	line, ok := prog.Source(7)
	assert.True(ok)
	assert.Equal("000007 000000 extra", line)
}

func TestProgram_ReadLoadFile_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog := assemble(t, asm,
		"LOC 6",
		"LDR 1,0,10",
		"HLT",
		"LOC 0",
		"DATA 0xffff",
	)

	text := prog.LoadFile()
	loaded, err := ReadLoadFile(strings.NewReader(text))
	assert.NoError(err)
	assert.Equal(prog.Words, loaded.Words)
	assert.Equal(text, loaded.LoadFile())
}

func TestProgram_ReadLoadFile_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		input  string
		lineno int
		err    error
	}){
		{"one_field", "000001 000002\n000003\n", 2, ErrLoadSyntax},
		{"bad_address", "000009 000001\n", 1, ErrParseNumber("000009")},
		{"bad_word", "000001 1777777\n", 1, ErrParseNumber("1777777")},
		{"not_octal", "\n\nhello world\n", 3, ErrLoadSyntax},
	}

	for _, entry := range table {
		_, err := ReadLoadFile(strings.NewReader(entry.input))
		assert.ErrorIs(err, entry.err, entry.name)

		var serr *ErrSyntax
		if assert.True(errors.As(err, &serr), entry.name) {
			assert.Equal(entry.lineno, serr.LineNo, entry.name)
		}
	}
}
