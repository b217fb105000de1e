package ctrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrioritize(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		causes Causes
		cause  Cause
		vector uint32
	}){
		{0, CAUSE_TICK, VECTOR_TICK},
		{MakeCauses(CAUSE_INT), CAUSE_INT, VECTOR_INT},
		{MakeCauses(CAUSE_INT, CAUSE_FPU), CAUSE_FPU, VECTOR_FPU},
		{MakeCauses(CAUSE_DBUS_ERR, CAUSE_RANGE), CAUSE_DBUS_ERR, VECTOR_BUS_ERR},
		{MakeCauses(CAUSE_IBUS_ERR, CAUSE_DBUS_ERR), CAUSE_IBUS_ERR, VECTOR_BUS_ERR},
		{MakeCauses(CAUSE_TRAP, CAUSE_DPAGE_FAULT), CAUSE_DPAGE_FAULT, VECTOR_DPAGE_FAULT},
		{MakeCauses(CAUSE_SYSCALL, CAUSE_DTLB_MISS), CAUSE_SYSCALL, VECTOR_SYSCALL},
		{MakeCauses(CAUSE_ALIGN, CAUSE_ILLEGAL), CAUSE_ILLEGAL, VECTOR_ILLEGAL},
		{MakeCauses(CAUSE_IPAGE_FAULT, CAUSE_ITLB_MISS, CAUSE_INT), CAUSE_ITLB_MISS, VECTOR_ITLB_MISS},
		{MakeCauses(CAUSE_TICK), CAUSE_TICK, VECTOR_TICK},
		{MakeCauses(CAUSE_TICK, CAUSE_INT), CAUSE_INT, VECTOR_INT},
	}

	for _, entry := range table {
		cause, vector := Prioritize(entry.causes)
		assert.Equal(entry.cause, cause, "%013b", entry.causes)
		assert.Equal(entry.vector, vector, "%013b", entry.causes)
	}
}

func TestPrioritizeAll(t *testing.T) {
	assert := assert.New(t)

	// Every combination of causes selects the lowest numbered one.
	for cs := Causes(0); cs < 1<<CAUSE_TICK; cs++ {
		cause, vector := Prioritize(cs)

		want := CAUSE_TICK
		for c := CAUSE_ITLB_MISS; c < CAUSE_TICK; c++ {
			if cs.Has(c) {
				want = c
				break
			}
		}

		if !assert.Equal(want, cause, "%013b", cs) {
			return
		}
		if want != CAUSE_TICK {
			assert.Equal(priority[want].vector, vector)
		}
	}
}

func TestCauses(t *testing.T) {
	assert := assert.New(t)

	cs := MakeCauses(CAUSE_TRAP, CAUSE_ALIGN)
	assert.True(cs.Has(CAUSE_TRAP))
	assert.True(cs.Has(CAUSE_ALIGN))
	assert.False(cs.Has(CAUSE_INT))
	assert.Equal(cs, cs&ARCH_CAUSES)
	assert.False(MakeCauses(CAUSE_INT).Has(CAUSE_TICK))
	assert.Equal(Causes(0), MakeCauses(CAUSE_INT)&ARCH_CAUSES)
}

func TestFetchCause(t *testing.T) {
	assert := assert.New(t)

	for cause := CAUSE_ITLB_MISS; cause < CAUSE_NONE; cause++ {
		switch cause {
		case CAUSE_ITLB_MISS, CAUSE_IPAGE_FAULT, CAUSE_IBUS_ERR:
			assert.True(cause.FetchCause(), cause)
		default:
			assert.False(cause.FetchCause(), cause)
		}
	}
}

func TestParseCause(t *testing.T) {
	assert := assert.New(t)

	for cause := CAUSE_ITLB_MISS; cause < CAUSE_NONE; cause++ {
		parsed, err := ParseCause(cause.String())
		assert.NoError(err)
		assert.Equal(cause, parsed)
	}

	cause, err := ParseCause("reset")
	assert.ErrorIs(err, ErrCauseUnknown)
	assert.Equal(CAUSE_NONE, cause)
}
