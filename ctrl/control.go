// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ctrl

import (
	"fmt"
	"iter"
	"log"

	"github.com/ezrec/ctrlunit/bus"
	"github.com/ezrec/ctrlunit/config"
	"github.com/ezrec/ctrlunit/internal"
	"github.com/ezrec/ctrlunit/pic"
	"github.com/ezrec/ctrlunit/spr"
	"github.com/ezrec/ctrlunit/ticktimer"
)

var _ctrl_defines = map[string]string{
	"VECTOR_RESET":       fmt.Sprintf("0x%03x", VECTOR_RESET),
	"VECTOR_BUS_ERR":     fmt.Sprintf("0x%03x", VECTOR_BUS_ERR),
	"VECTOR_DPAGE_FAULT": fmt.Sprintf("0x%03x", VECTOR_DPAGE_FAULT),
	"VECTOR_IPAGE_FAULT": fmt.Sprintf("0x%03x", VECTOR_IPAGE_FAULT),
	"VECTOR_TICK":        fmt.Sprintf("0x%03x", VECTOR_TICK),
	"VECTOR_ALIGN":       fmt.Sprintf("0x%03x", VECTOR_ALIGN),
	"VECTOR_ILLEGAL":     fmt.Sprintf("0x%03x", VECTOR_ILLEGAL),
	"VECTOR_INT":         fmt.Sprintf("0x%03x", VECTOR_INT),
	"VECTOR_DTLB_MISS":   fmt.Sprintf("0x%03x", VECTOR_DTLB_MISS),
	"VECTOR_ITLB_MISS":   fmt.Sprintf("0x%03x", VECTOR_ITLB_MISS),
	"VECTOR_RANGE":       fmt.Sprintf("0x%03x", VECTOR_RANGE),
	"VECTOR_SYSCALL":     fmt.Sprintf("0x%03x", VECTOR_SYSCALL),
	"VECTOR_FPU":         fmt.Sprintf("0x%03x", VECTOR_FPU),
	"VECTOR_TRAP":        fmt.Sprintf("0x%03x", VECTOR_TRAP),
}

// DebugIn is the debugger port.
type DebugIn struct {
	Stb   bool   // SPR access strobe
	We    bool   // SPR access is a write
	Addr  uint16 // SPR address
	Data  uint32 // SPR write data
	Stall bool   // Stall request
}

// Inputs are the signals presented to the control unit in one cycle.
type Inputs struct {
	Reset bool

	// Stage handshakes.
	FetchValid    bool
	ExecuteValid  bool
	DecodeBubble  bool
	ExecuteBubble bool

	// Fetch consumed the exception or RFE redirect.
	FetchRedirectTaken bool

	PcExecute   uint32 // PC of the instruction in execute
	PcWriteback uint32 // PC of the instruction at writeback

	// The instruction at writeback.
	Rfe          bool
	DelaySlot    bool
	BranchTaken  bool
	BranchTarget uint32
	Flag         bool
	Carry        bool
	Overflow     bool
	FPFlags      uint32 // FPCSR flag bits raised
	DataAddr     uint32 // Load/store effective address

	Causes         Causes // Pipeline exception causes, ARCH_CAUSES only
	StoreBufferErr bool
	StoreBufferPC  uint32

	Irq uint32 // Interrupt lines to the interrupt controller

	// In-pipeline SPR access.
	Mfspr   bool
	Mtspr   bool
	SprAddr uint16
	SprData uint32

	Debug DebugIn
}

// Outputs are the signals driven by the control unit in one cycle.
type Outputs struct {
	FetchAdvance       bool
	DecodeAdvance      bool
	WritebackAdvance   bool
	ExecuteNewInput    bool
	WritebackNewResult bool
	PipelineFlush      bool

	// Fetch redirect, held until FetchRedirectTaken.
	Redirect   bool
	RedirectPC uint32

	// mfspr/mtspr completion.
	SprDone bool
	SprData uint32

	// Debugger port.
	DebugAck     bool
	DebugData    uint32
	StallRequest bool // Core asks to be stalled (step done, trap)
	Stalled      bool
	Restart      bool
	RestartPC    uint32

	// Exception entry this cycle.
	Exception bool
	Cause     Cause
	Vector    uint32
}

// Control is the simulation context of the control unit.
type Control struct {
	Verbose bool // Set to enable verbose logging.

	State

	Config *config.Config
	Pic    *pic.Pic
	Timer  *ticktimer.Timer
	Gpr    bus.Unit // General register file, aliased on the system group

	Ticks int // Cycle counter.

	units [spr.GROUP_NONE]bus.Unit // External units, by group.
	route [spr.GROUP_NONE + 1]bus.Unit

	access sprAccess // SPR access of the current cycle.
	write  busWrite  // Local register write of the current cycle.
}

// NewControl creates a control unit for a configuration.
func NewControl(cfg *config.Config) (c *Control) {
	c = &Control{
		Config: cfg,
		Pic:    pic.NewPic(),
		Timer:  &ticktimer.Timer{},
		Gpr:    bus.Null{},
	}

	c.reroute()
	c.Reset()

	return
}

// Defines for the control unit.
func (c *Control) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(spr.Defines(), internal.SortedDefines(_ctrl_defines))
}

// SetUnit attaches an external unit to a register group. A nil unit
// detaches it.
func (c *Control) SetUnit(group spr.Group, unit bus.Unit) (err error) {
	switch group {
	case spr.GROUP_SYS, spr.GROUP_DEBUG, spr.GROUP_PIC, spr.GROUP_TIMER:
		return ErrGroup{Group: group.String(), Err: ErrGroupLocal}
	}
	if group < 0 || group >= spr.GROUP_NONE || !c.Config.Present(group) {
		return ErrGroup{Group: group.String(), Err: ErrGroupAbsent}
	}

	c.units[group] = unit
	c.reroute()

	return
}

// reroute rebuilds the group dispatch table.
func (c *Control) reroute() {
	for group := range c.route {
		c.route[group] = bus.Null{}
	}

	for group := spr.GROUP_SYS; group < spr.GROUP_NONE; group++ {
		if !c.Config.Present(group) {
			continue
		}
		switch group {
		case spr.GROUP_SYS:
			c.route[group] = sysGroup{c}
		case spr.GROUP_DEBUG:
			c.route[group] = debugGroup{c}
		case spr.GROUP_PIC:
			c.route[group] = c.Pic
		case spr.GROUP_TIMER:
			c.route[group] = c.Timer
		default:
			if c.units[group] != nil {
				c.route[group] = c.units[group]
			}
		}
	}
}

// Reset the control unit and its local collaborators.
func (c *Control) Reset() {
	if c.Verbose {
		log.Printf("ctrl: reset")
	}

	c.State = State{
		SR:  spr.SR_RESET,
		ESR: spr.SR_RESET,
		NPC: VECTOR_RESET,
	}
	c.Pic.Reset()
	c.Timer.Reset()
}

// cycle holds the combinational signals of one Tick.
type cycle struct {
	in *Inputs

	stepping bool
	restart  bool
	halted   bool // internal stall request

	commit bool // fresh result at writeback
	retire bool // fresh, non-bubble result
	rfe    bool // RFE retiring

	causes    Causes
	pending   bool // composite exception condition
	cause     Cause
	vector    uint32
	fresh     bool // rising edge of pending
	trapStall bool // trap redirected to the debugger
	entry     bool // exception entry

	flush bool
	adv   advance
}

// Tick evaluates one clock cycle.
func (c *Control) Tick(in Inputs) (out Outputs) {
	c.Ticks++

	if in.Reset {
		c.Reset()
		return
	}

	cur := &c.State
	next := c.State

	cy := &cycle{in: &in}

	// Debugger handshake.
	cy.stepping = c.stepping()
	cy.restart = cur.stallLast && !in.Debug.Stall
	cy.halted = cur.trapStalled || cur.stepDone

	// Results arriving at writeback.
	cy.commit = cur.writebackNewResult
	cy.retire = cy.commit && !cur.resultBubble
	cy.rfe = cy.retire && in.Rfe

	c.prioritize(cy)

	cy.flush = cur.CpuStalled || cy.fresh || cy.rfe
	cy.adv = sequence(&in, cy.flush || cy.halted)
	if cy.stepping && cur.Phase != PHASE_WAIT_FETCH {
		cy.adv.fetch = false
	}

	// SPR bus, against the register values of the start of the cycle.
	done, data := c.routeSpr(cy)
	next.sprAck = done
	next.sprDebug = c.access.debug
	next.sprData = data

	c.updateRegisters(cy, &next)
	c.updateException(cy, &next)
	c.updateDebug(cy, &next)

	// Delayed strobes.
	next.executeNewInput = cy.adv.decode
	next.inputBubble = in.ExecuteBubble
	next.writebackNewResult = cur.executeNewInput && !cy.flush
	next.resultBubble = cur.inputBubble

	if cy.retire && in.BranchTaken {
		next.lastBranchPC = in.PcWriteback
		next.lastBranchTarget = in.BranchTarget
	}

	// Collaborators sample this cycle's inputs after the bus access.
	if c.Config.PIC {
		c.Pic.Tick(in.Irq)
	}
	if c.Config.TickTimer {
		c.Timer.Tick()
	}

	out = Outputs{
		FetchAdvance:       cy.adv.fetch,
		DecodeAdvance:      cy.adv.decode,
		WritebackAdvance:   cy.adv.writeback,
		ExecuteNewInput:    cur.executeNewInput,
		WritebackNewResult: cur.writebackNewResult,
		PipelineFlush:      cy.flush,

		Redirect:   cur.ExceptionPending || cur.RfeInProgress,
		RedirectPC: cur.EPCR,

		SprDone: cur.sprAck && !cur.sprDebug,
		SprData: cur.sprData,

		DebugAck:     cur.sprAck && cur.sprDebug,
		DebugData:    cur.sprData,
		StallRequest: cy.halted,
		Stalled:      cur.CpuStalled,
		Restart:      cy.restart,
		RestartPC:    cur.NPC,

		Exception: cy.entry,
		Cause:     cy.cause,
		Vector:    cy.vector,
	}
	if cur.ExceptionPending {
		out.RedirectPC = cur.ExceptionVector
	}

	if c.Verbose {
		c.logCycle(cy, &next)
	}

	c.State = next

	return
}

// logCycle reports the events of a cycle.
func (c *Control) logCycle(cy *cycle, next *State) {
	switch {
	case cy.entry:
		log.Printf("ctrl: exception %v vector 0x%08x epcr 0x%08x", cy.cause, cy.vector, next.EPCR)
	case cy.trapStall:
		log.Printf("ctrl: trap at 0x%08x, stall", cy.in.PcWriteback)
	}
	if cy.rfe {
		log.Printf("ctrl: rfe to 0x%08x", c.EPCR)
	}
	if cy.restart {
		log.Printf("ctrl: restart at 0x%08x", c.NPC)
	}
	if next.CpuStalled && !c.CpuStalled {
		log.Printf("ctrl: stalled, npc 0x%08x", next.NPC)
	}
}

// String returns the architectural register state as a string.
func (c *Control) String() (text string) {
	regs := []struct {
		name  string
		value uint32
	}{
		{"sr", c.SR},
		{"esr", c.ESR},
		{"epcr", c.EPCR},
		{"eear", c.EEAR},
		{"ppc", c.PPC},
		{"npc", c.NPC},
		{"evbar", c.EVBAR},
		{"fpcsr", c.FPCSR},
		{"dmr1", c.DMR1},
		{"dsr", c.DSR},
		{"drr", c.DRR},
	}
	for _, reg := range regs {
		text += fmt.Sprintf("% 6s: %04X_%04X\n", reg.name, reg.value>>16, reg.value&0xffff)
	}
	text += fmt.Sprintf("% 6s: %v\n", "phase", c.Phase)
	text += fmt.Sprintf("% 6s: %v\n", "stall", c.CpuStalled)

	return
}
