package ctrl

// Cause is an exception cause. Causes are numbered in priority order,
// highest first.
type Cause int

//go:generate go tool stringer -linecomment -type=Cause
const (
	CAUSE_ITLB_MISS   = Cause(0)  // itlb-miss
	CAUSE_IPAGE_FAULT = Cause(1)  // ipage-fault
	CAUSE_IBUS_ERR    = Cause(2)  // ibus-err
	CAUSE_ILLEGAL     = Cause(3)  // illegal
	CAUSE_ALIGN       = Cause(4)  // align
	CAUSE_SYSCALL     = Cause(5)  // syscall
	CAUSE_DTLB_MISS   = Cause(6)  // dtlb-miss
	CAUSE_DPAGE_FAULT = Cause(7)  // dpage-fault
	CAUSE_TRAP        = Cause(8)  // trap
	CAUSE_DBUS_ERR    = Cause(9)  // dbus-err
	CAUSE_RANGE       = Cause(10) // range
	CAUSE_FPU         = Cause(11) // fpu
	CAUSE_INT         = Cause(12) // int
	CAUSE_TICK        = Cause(13) // tick
	CAUSE_NONE        = Cause(14) // none
)

// Exception vector offsets, ORed with EVBAR.
const (
	VECTOR_RESET       = uint32(0x100)
	VECTOR_BUS_ERR     = uint32(0x200)
	VECTOR_DPAGE_FAULT = uint32(0x300)
	VECTOR_IPAGE_FAULT = uint32(0x400)
	VECTOR_TICK        = uint32(0x500)
	VECTOR_ALIGN       = uint32(0x600)
	VECTOR_ILLEGAL     = uint32(0x700)
	VECTOR_INT         = uint32(0x800)
	VECTOR_DTLB_MISS   = uint32(0x900)
	VECTOR_ITLB_MISS   = uint32(0xa00)
	VECTOR_RANGE       = uint32(0xb00)
	VECTOR_SYSCALL     = uint32(0xc00)
	VECTOR_FPU         = uint32(0xd00)
	VECTOR_TRAP        = uint32(0xe00)
)

// priority is evaluated top-down; the first asserted cause wins.
// The order is architectural.
var priority = [...]struct {
	cause  Cause
	vector uint32
}{
	{CAUSE_ITLB_MISS, VECTOR_ITLB_MISS},
	{CAUSE_IPAGE_FAULT, VECTOR_IPAGE_FAULT},
	{CAUSE_IBUS_ERR, VECTOR_BUS_ERR},
	{CAUSE_ILLEGAL, VECTOR_ILLEGAL},
	{CAUSE_ALIGN, VECTOR_ALIGN},
	{CAUSE_SYSCALL, VECTOR_SYSCALL},
	{CAUSE_DTLB_MISS, VECTOR_DTLB_MISS},
	{CAUSE_DPAGE_FAULT, VECTOR_DPAGE_FAULT},
	{CAUSE_TRAP, VECTOR_TRAP},
	{CAUSE_DBUS_ERR, VECTOR_BUS_ERR},
	{CAUSE_RANGE, VECTOR_RANGE},
	{CAUSE_FPU, VECTOR_FPU},
	{CAUSE_INT, VECTOR_INT},
}

// Causes is the set of exception causes asserted in a cycle.
type Causes uint16

// ARCH_CAUSES are the causes reported by the pipeline. Interrupt and
// tick causes come from the collaborators.
const ARCH_CAUSES = Causes(1<<CAUSE_INT - 1)

// MakeCauses builds a cause set.
func MakeCauses(causes ...Cause) (cs Causes) {
	for _, cause := range causes {
		cs = cs.With(cause)
	}
	return
}

// With adds a cause to the set.
func (cs Causes) With(cause Cause) Causes {
	return cs | Causes(1<<cause)
}

// Has reports if cause is in the set.
func (cs Causes) Has(cause Cause) bool {
	return cs&Causes(1<<cause) != 0
}

// Prioritize selects the highest priority cause in the set and its vector
// offset. With nothing else asserted the tick timer is selected.
func Prioritize(cs Causes) (cause Cause, vector uint32) {
	for _, entry := range priority {
		if cs.Has(entry.cause) {
			return entry.cause, entry.vector
		}
	}

	return CAUSE_TICK, VECTOR_TICK
}

// FetchCause is true for causes raised by instruction fetch. Their
// effective address is the faulting PC.
func (cause Cause) FetchCause() bool {
	switch cause {
	case CAUSE_ITLB_MISS, CAUSE_IPAGE_FAULT, CAUSE_IBUS_ERR:
		return true
	}
	return false
}

// ParseCause returns the cause with the given name.
func ParseCause(name string) (cause Cause, err error) {
	for cause = CAUSE_ITLB_MISS; cause < CAUSE_NONE; cause++ {
		if cause.String() == name {
			return
		}
	}

	return CAUSE_NONE, ErrCauseUnknown
}
