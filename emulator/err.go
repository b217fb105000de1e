package emulator

import (
	"errors"

	"github.com/ezrec/ctrlunit/translate"
)

var f = translate.From

var (
	ErrScriptCycle = errors.New(f("script has no cycle function"))
	ErrInputResult = errors.New(f("cycle must return a dict or None"))
	ErrInputKey    = errors.New(f("input name must be a string"))
	ErrInputName   = errors.New(f("unknown input"))
	ErrInputType   = errors.New(f("input has wrong type"))
)

// ErrCycle indicates the cycle of a stimulus error.
type ErrCycle struct {
	Cycle int
	Err   error
}

func (err *ErrCycle) Error() string {
	return f("cycle %d %v", err.Cycle, err.Err)
}

func (err *ErrCycle) Unwrap() error {
	return err.Err
}

// ErrInput reports a bad input value returned by a stimulus script.
type ErrInput struct {
	Name string
	Err  error
}

func (err ErrInput) Error() string {
	return f("input %v: %v", err.Name, err.Err)
}

func (err ErrInput) Unwrap() error {
	return err.Err
}
