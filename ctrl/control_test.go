package ctrl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ctrlunit/bus"
	"github.com/ezrec/ctrlunit/config"
	"github.com/ezrec/ctrlunit/spr"
)

// debugWrite performs a debugger port write, and the cycle that reports
// its acknowledge.
func debugWrite(c *Control, addr uint16, data uint32, stall bool) (out Outputs) {
	c.Tick(Inputs{Debug: DebugIn{Stb: true, We: true, Addr: addr, Data: data, Stall: stall}})
	return c.Tick(Inputs{Debug: DebugIn{Stall: stall}})
}

// debugRead performs a debugger port read.
func debugRead(c *Control, addr uint16, stall bool) (data uint32) {
	c.Tick(Inputs{Debug: DebugIn{Stb: true, Addr: addr, Stall: stall}})
	out := c.Tick(Inputs{Debug: DebugIn{Stall: stall}})
	return out.DebugData
}

// toWriteback moves one instruction through decode and execute. The
// following Tick sees it committing at writeback.
func toWriteback(c *Control) {
	c.Tick(Inputs{FetchValid: true, ExecuteValid: true})
	c.Tick(Inputs{})
}

func TestNewControl(t *testing.T) {
	assert := assert.New(t)

	c := NewControl(config.Default())

	assert.False(c.Verbose)
	assert.Equal(spr.SR_RESET, c.SR)
	assert.Equal(spr.SR_RESET, c.ESR)
	assert.Equal(VECTOR_RESET, c.NPC)
	assert.Equal(PHASE_IDLE, c.Phase)
	assert.False(c.ExceptionPending)
	assert.Equal(0, c.Ticks)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	c := NewControl(config.Default())

	debugWrite(c, spr.EVBAR, 0x4000_0000, false)
	c.Tick(Inputs{Causes: MakeCauses(CAUSE_ALIGN)})
	assert.True(c.ExceptionPending)
	assert.Equal(uint32(0x4000_0000), c.EVBAR)

	out := c.Tick(Inputs{Reset: true, Causes: MakeCauses(CAUSE_ALIGN)})
	assert.False(out.Exception)
	assert.False(c.ExceptionPending)
	assert.Equal(uint32(0), c.EVBAR)
	assert.Equal(spr.SR_RESET, c.SR)
	assert.Equal(VECTOR_RESET, c.NPC)
	assert.Equal(4, c.Ticks)
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	c := NewControl(config.Default())

	defines := map[string]string{}
	for name, value := range c.Defines() {
		defines[name] = value
	}

	assert.Equal("0x0011", defines["SPR_SR"])
	assert.Equal("0x100", defines["VECTOR_RESET"])
	assert.Equal("0xe00", defines["VECTOR_TRAP"])
}

func TestSetUnit(t *testing.T) {
	assert := assert.New(t)

	cfg := config.Default()
	cfg.MAC = true
	c := NewControl(cfg)

	table := [](struct {
		group spr.Group
		err   error
	}){
		{spr.GROUP_SYS, ErrGroupLocal},
		{spr.GROUP_DEBUG, ErrGroupLocal},
		{spr.GROUP_PIC, ErrGroupLocal},
		{spr.GROUP_TIMER, ErrGroupLocal},
		{spr.GROUP_DMMU, ErrGroupAbsent},
		{spr.GROUP_NONE, ErrGroupAbsent},
		{spr.GROUP_MAC, nil},
	}

	for _, entry := range table {
		err := c.SetUnit(entry.group, &bus.Memory{})
		if entry.err == nil {
			assert.NoError(err, entry.group)
			continue
		}
		assert.True(errors.Is(err, entry.err), entry.group)
		var group_err ErrGroup
		assert.True(errors.As(err, &group_err))
		assert.Equal(entry.group.String(), group_err.Group)
	}
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	c := NewControl(config.Default())

	text := c.String()
	assert.Contains(text, "npc: 0000_0100")
	assert.Contains(text, "phase: idle")
}
