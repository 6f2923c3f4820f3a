package cpu

import (
	"errors"

	"github.com/ezrec/basicmachine/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted = errors.New(f("cpu halted"))

	// Assembler errors
	ErrLocMissing         = errors.New(f("LOC address missing"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))

	// Load file errors
	ErrLoadSyntax = errors.New(f("load file syntax"))
)

// ErrAddress is an out-of-range memory address.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("invalid address %d", int(ea))
}

// ErrOpcode is an instruction word with an opcode the cpu does not execute.
type ErrOpcode uint16

func (eo ErrOpcode) Error() string {
	inst := Decode(uint16(eo))
	return f("unknown opcode %02o in word %06o", int(inst.Opcode), uint16(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
