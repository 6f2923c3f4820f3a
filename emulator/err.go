package emulator

import (
	"errors"

	"github.com/ezrec/basicmachine/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address int
	Line    string
	Err     error
}

func (err *ErrRuntime) Error() string {
	if len(err.Line) == 0 {
		return f("%04o: %v", err.Address, err.Err)
	}
	return f("%04o '%v' %v", err.Address, err.Line, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
