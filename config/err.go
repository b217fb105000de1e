package config

import (
	"errors"

	"github.com/ezrec/ctrlunit/translate"
)

var f = translate.From

var (
	ErrConfigUnknown = errors.New(f("unknown setting"))
	ErrConfigType    = errors.New(f("setting has wrong type"))
)

// ErrSetting reports a bad setting in a configuration script.
type ErrSetting struct {
	Name string
	Err  error
}

func (err ErrSetting) Error() string {
	return f("setting %v: %v", err.Name, err.Err)
}

func (err ErrSetting) Unwrap() error {
	return err.Err
}
