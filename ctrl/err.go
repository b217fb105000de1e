package ctrl

import (
	"errors"

	"github.com/ezrec/ctrlunit/translate"
)

var f = translate.From

var (
	ErrGroupLocal   = errors.New(f("group is answered by the control unit"))
	ErrGroupAbsent  = errors.New(f("group not configured"))
	ErrCauseUnknown = errors.New(f("cause unknown"))
)

// ErrGroup reports a bad register group attachment.
type ErrGroup struct {
	Group string
	Err   error
}

func (err ErrGroup) Error() string {
	return f("group %v: %v", err.Group, err.Err)
}

func (err ErrGroup) Unwrap() error {
	return err.Err
}
