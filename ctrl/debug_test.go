package ctrl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ctrlunit/config"
	"github.com/ezrec/ctrlunit/spr"
)

// enableStep turns on single-step trace from a stalled core.
func enableStep(c *Control) {
	debugWrite(c, spr.DMR1, spr.DMR1_ST, true)
	debugWrite(c, spr.DSR, spr.DSR_TE, true)
}

// step releases the stall, runs one instruction through the pipeline,
// and stalls again once the core asks for it. wb is the instruction at
// writeback.
func step(c *Control, wb Inputs) (phases []Phase) {
	cycles := []Inputs{
		{},
		{FetchValid: true},
		{FetchValid: true, ExecuteValid: true},
		{},
		wb,
		{},
	}

	for _, in := range cycles {
		c.Tick(in)
		phases = append(phases, c.Phase)
	}

	out := c.Tick(Inputs{Debug: DebugIn{Stall: true}})
	if out.StallRequest {
		c.Tick(Inputs{Debug: DebugIn{Stall: true}})
	}

	return
}

func TestStep(t *testing.T) {
	assert := assert.New(t)

	visits := []Phase{
		PHASE_WAIT_FETCH,
		PHASE_DECODE,
		PHASE_EXECUTE,
		PHASE_COMMIT,
		PHASE_SETTLE,
		PHASE_IDLE,
	}

	table := [](struct {
		name string
		wb   Inputs
		npc  uint32
	}){
		{"next", Inputs{PcWriteback: 0x3000}, 0x3004},
		{"rfe", Inputs{PcWriteback: 0x3000, Rfe: true}, 0x5000},
		{"exception", Inputs{PcWriteback: 0x3000, Causes: MakeCauses(CAUSE_ILLEGAL)}, VECTOR_ILLEGAL},
		{"branch", Inputs{PcWriteback: 0x3000, BranchTaken: true, BranchTarget: 0x8000}, 0x3004},
	}

	for _, entry := range table {
		c := NewControl(config.Default())
		c.Tick(Inputs{Debug: DebugIn{Stall: true}})
		debugWrite(c, spr.EPCR0, 0x5000, true)
		enableStep(c)

		assert.True(c.stepping(), entry.name)

		phases := step(c, entry.wb)
		assert.Equal(visits, phases, entry.name)
		assert.Equal(entry.npc, c.NPC, entry.name)
		assert.True(c.CpuStalled, entry.name)
		assert.True(c.stepDone, entry.name)
	}
}

func TestStepDelaySlot(t *testing.T) {
	assert := assert.New(t)

	c := NewControl(config.Default())
	c.Tick(Inputs{Debug: DebugIn{Stall: true}})
	enableStep(c)

	step(c, Inputs{PcWriteback: 0x1000, BranchTaken: true, BranchTarget: 0x8000})
	assert.Equal(uint32(0x1004), c.NPC)

	// The delay slot instruction resumes at the branch target.
	step(c, Inputs{PcWriteback: 0x1004})
	assert.Equal(uint32(0x8000), c.NPC)

	step(c, Inputs{PcWriteback: 0x8000})
	assert.Equal(uint32(0x8004), c.NPC)
}

func TestStepRestart(t *testing.T) {
	assert := assert.New(t)

	c := NewControl(config.Default())
	c.Tick(Inputs{Debug: DebugIn{Stall: true}})
	enableStep(c)

	step(c, Inputs{PcWriteback: 0x3000, Causes: MakeCauses(CAUSE_ILLEGAL)})
	assert.True(c.ExceptionPending)
	assert.True(c.steppedIntoException)

	out := c.Tick(Inputs{})
	assert.True(out.Restart)
	assert.Equal(VECTOR_ILLEGAL, out.RestartPC)
	assert.False(c.ExceptionPending)
	assert.False(c.steppedIntoException)
	assert.False(c.stepDone)
	assert.Equal(PHASE_WAIT_FETCH, c.Phase)

	// While a step is in flight, fetch only advances while waiting for it.
	out = c.Tick(Inputs{FetchValid: true, ExecuteValid: true})
	assert.True(out.FetchAdvance)
	out = c.Tick(Inputs{FetchValid: true, ExecuteValid: true})
	assert.False(out.FetchAdvance)
	assert.True(out.DecodeAdvance)
}

func TestStepDisabled(t *testing.T) {
	assert := assert.New(t)

	// Step trace needs both DMR1[ST] and DSR[TE].
	c := NewControl(config.Default())
	c.Tick(Inputs{Debug: DebugIn{Stall: true}})
	debugWrite(c, spr.DMR1, spr.DMR1_ST, true)
	assert.False(c.stepping())

	out := c.Tick(Inputs{})
	assert.True(out.Restart)
	assert.Equal(PHASE_IDLE, c.Phase)

	// Without a debug unit nothing steps.
	cfg := config.Default()
	cfg.Debug = false
	c = NewControl(cfg)
	c.DMR1 = spr.DMR1_ST
	c.DSR = spr.DSR_TE
	assert.False(c.stepping())
}

func TestTrapStall(t *testing.T) {
	assert := assert.New(t)

	c := NewControl(config.Default())
	debugWrite(c, spr.DSR, spr.DSR_TE, false)
	debugWrite(c, spr.EPCR0, 0x5000, false)

	toWriteback(c)
	out := c.Tick(Inputs{PcWriteback: 0x4000, Causes: MakeCauses(CAUSE_TRAP)})
	assert.False(out.Exception)
	assert.True(out.PipelineFlush)
	assert.False(c.ExceptionPending)
	assert.Equal(uint32(0x5000), c.EPCR)
	assert.Equal(uint32(0x4000), c.NPC)
	assert.Equal(spr.DRR_TE, c.DRR)
	assert.Equal(spr.SR_RESET, c.SR)

	// The core asks for a stall, and holds NPC.
	out = c.Tick(Inputs{PcExecute: 0x4008})
	assert.True(out.StallRequest)
	assert.False(out.FetchAdvance)
	assert.Equal(uint32(0x4000), c.NPC)

	out = c.Tick(Inputs{PcExecute: 0x4008, Debug: DebugIn{Stall: true}})
	assert.True(out.StallRequest)
	assert.True(c.CpuStalled)

	assert.Equal(spr.DRR_TE, debugRead(c, spr.DRR, true))

	out = c.Tick(Inputs{PcExecute: 0x4008})
	assert.True(out.Restart)
	assert.Equal(uint32(0x4000), out.RestartPC)

	out = c.Tick(Inputs{PcExecute: 0x4008})
	assert.False(out.StallRequest)
	assert.False(out.Restart)
	assert.Equal(spr.DRR_TE, c.DRR)

	// Without DSR[TE] a trap vectors.
	c = NewControl(config.Default())
	out = c.Tick(Inputs{PcWriteback: 0x4000, Causes: MakeCauses(CAUSE_TRAP)})
	assert.True(out.Exception)
	assert.Equal(VECTOR_TRAP, out.Vector)
	assert.Zero(c.DRR)
}

func TestStallLatch(t *testing.T) {
	assert := assert.New(t)

	c := NewControl(config.Default())

	// The stall takes hold at a committing result.
	stall := Inputs{Debug: DebugIn{Stall: true}}
	c.Tick(stall)
	c.Tick(stall)
	assert.False(c.CpuStalled)

	c.Tick(Inputs{FetchValid: true, ExecuteValid: true, Debug: DebugIn{Stall: true}})
	c.Tick(stall)
	assert.False(c.CpuStalled)
	out := c.Tick(stall)
	assert.False(out.Stalled)
	assert.True(c.CpuStalled)
	out = c.Tick(stall)
	assert.True(out.Stalled)

	// Stalled cores still answer the debugger, and see no exceptions.
	assert.Equal(spr.SR_RESET, debugRead(c, spr.SR, true))
	out = c.Tick(Inputs{Causes: MakeCauses(CAUSE_ALIGN), Debug: DebugIn{Stall: true}})
	assert.False(out.Exception)
	assert.False(c.ExceptionPending)

	c.Tick(Inputs{})
	assert.False(c.CpuStalled)
}

func TestDebugNpc(t *testing.T) {
	assert := assert.New(t)

	c := NewControl(config.Default())
	c.Tick(Inputs{Debug: DebugIn{Stall: true}})

	debugWrite(c, spr.NPC, 0x9000, true)
	assert.Equal(uint32(0x9000), c.NPC)
	c.Tick(Inputs{PcExecute: 0x44, Debug: DebugIn{Stall: true}})
	assert.Equal(uint32(0x9000), debugRead(c, spr.NPC, true))

	out := c.Tick(Inputs{PcExecute: 0x44})
	assert.True(out.Restart)
	assert.Equal(uint32(0x9000), out.RestartPC)

	c.Tick(Inputs{PcExecute: 0x44})
	assert.Equal(uint32(0x44), c.NPC)
}

func TestDebugNpcRunning(t *testing.T) {
	assert := assert.New(t)

	c := NewControl(config.Default())

	// Written while running, NPC holds one cycle and then follows execute.
	debugWrite(c, spr.NPC, 0x9000, false)
	assert.Equal(uint32(0x9000), c.NPC)
	assert.False(c.npcWritten)

	for n := range 8 {
		pc := uint32(0x200 + n*4)
		c.Tick(Inputs{PcExecute: pc})
		assert.Equal(pc, c.NPC)
	}
	assert.Equal(uint32(0x21c), debugRead(c, spr.NPC, false))
}
