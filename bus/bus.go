// Package bus provides the SPR bus unit model shared by the control unit
// and the functional units that hang off it.
//
// A unit is offered one access per cycle. The requester keeps presenting
// the same access, once per cycle, until the unit acknowledges it; the
// access takes effect on the acknowledging call.
package bus

// Unit is a functional unit attached to the SPR bus.
type Unit interface {
	// Read returns the register at addr. ack is false while the unit
	// needs more cycles.
	Read(addr uint16) (data uint32, ack bool)
	// Write stores data at addr. The write happens on the call that
	// returns ack true.
	Write(addr uint16, data uint32) (ack bool)
}

// Null is the unit behind an unconfigured register group. Every access
// completes at once; reads return zero and writes are dropped.
type Null struct{}

var _ Unit = Null{}

func (Null) Read(addr uint16) (data uint32, ack bool) {
	return 0, true
}

func (Null) Write(addr uint16, data uint32) (ack bool) {
	return true
}
