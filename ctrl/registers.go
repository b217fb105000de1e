package ctrl

import (
	"github.com/ezrec/ctrlunit/spr"
)

// State is the register state of the control unit.
type State struct {
	SR    uint32 // Supervision register
	ESR   uint32 // Exception SR
	EPCR  uint32 // Exception PC
	EEAR  uint32 // Exception effective address
	PPC   uint32 // Previous PC
	NPC   uint32 // Next PC
	EVBAR uint32 // Exception vector base
	FPCSR uint32 // FPU control/status

	DMR1 uint32 // Debug mode 1
	DMR2 uint32 // Debug mode 2
	DSR  uint32 // Debug stop
	DRR  uint32 // Debug reason

	ExceptionPending bool   // Exception redirect not yet taken by fetch
	ExceptionVector  uint32 // Redirect target of the pending exception
	ExceptionCause   Cause  // Cause of the pending exception
	RfeInProgress    bool   // RFE redirect not yet taken by fetch

	Phase      Phase // Single-step phase
	CpuStalled bool  // Core stopped for the debugger

	// Delayed advance strobes.
	executeNewInput    bool
	writebackNewResult bool
	inputBubble        bool
	resultBubble       bool

	exceptionLevel bool // composite exception condition, last cycle

	lastBranchPC     uint32
	lastBranchTarget uint32

	// Registered SPR bus completion.
	sprAck   bool
	sprDebug bool
	sprData  uint32

	stallLast   bool
	npcWritten  bool
	trapStalled bool
	stepDone    bool

	branchStep           uint8 // taken-branch history of stepped instructions
	steppedIntoException bool
	steppedIntoRfe       bool
}

// written returns the data of this cycle's local write to addr.
func (c *Control) written(addr uint16) (data uint32, ok bool) {
	if !c.write.valid || c.write.addr != addr {
		return
	}
	return c.write.data, true
}

// srWritable is the part of SR implemented by the configuration.
func (c *Control) srWritable() (mask uint32) {
	cfg := c.Config

	mask = spr.SR_SM | spr.SR_F | spr.SR_EPH | spr.SR_SUMRA
	for _, field := range []struct {
		present bool
		bits    uint32
	}{
		{cfg.TickTimer, spr.SR_TEE},
		{cfg.PIC, spr.SR_IEE},
		{cfg.DataCache, spr.SR_DCE},
		{cfg.InstructionCache, spr.SR_ICE},
		{cfg.DataMMU, spr.SR_DME},
		{cfg.InstructionMMU, spr.SR_IME},
		{cfg.Carry, spr.SR_CY},
		{cfg.Overflow, spr.SR_OV | spr.SR_OVE},
		{cfg.DelaySlot, spr.SR_DSX},
	} {
		if field.present {
			mask |= field.bits
		}
	}

	return
}

// updateRegisters evaluates the update rule of every architectural
// register. Each rule is a single priority chain; reset is handled by
// Tick before any chain runs.
func (c *Control) updateRegisters(cy *cycle, next *State) {
	in := cy.in
	cfg := c.Config

	// SR
	if data, ok := c.written(spr.SR); cy.entry {
		sr := c.SR | spr.SR_SM
		sr &^= spr.SR_TEE | spr.SR_IEE | spr.SR_DME | spr.SR_IME | spr.SR_OVE
		if cfg.DelaySlot {
			sr &^= spr.SR_DSX
			if in.DelaySlot {
				sr |= spr.SR_DSX
			}
		}
		next.SR = sr
	} else if ok {
		next.SR = (data & c.srWritable()) | spr.SR_FO
	} else if cy.retire {
		if cy.rfe {
			next.SR = (c.SR &^ spr.SR_RESTORE) | (c.ESR & spr.SR_RESTORE)
		} else {
			next.SR = setBit(next.SR, spr.SR_F, in.Flag)
			if cfg.Carry {
				next.SR = setBit(next.SR, spr.SR_CY, in.Carry)
			}
			if cfg.Overflow {
				next.SR = setBit(next.SR, spr.SR_OV, in.Overflow)
			}
		}
	}

	// ESR
	if data, ok := c.written(spr.ESR0); cy.entry {
		next.ESR = c.SR
	} else if ok {
		next.ESR = data
	}

	// EPCR
	if data, ok := c.written(spr.EPCR0); cy.fresh {
		switch {
		case cy.cause == CAUSE_IBUS_ERR:
			next.EPCR = c.lastBranchPC
		case cy.cause == CAUSE_SYSCALL && in.DelaySlot:
			next.EPCR = in.PcWriteback - 4
		case cy.cause == CAUSE_SYSCALL:
			next.EPCR = in.PcWriteback + 4
		case in.StoreBufferErr:
			next.EPCR = in.StoreBufferPC
		case cy.trapStall:
		case in.DelaySlot:
			next.EPCR = in.PcWriteback - 4
		default:
			next.EPCR = in.PcWriteback
		}
	} else if ok {
		next.EPCR = data
	}

	// EEAR
	if data, ok := c.written(spr.EEAR0); cy.entry {
		if cy.cause.FetchCause() {
			next.EEAR = in.PcWriteback
		} else {
			next.EEAR = in.DataAddr
		}
	} else if ok {
		next.EEAR = data
	}

	// PPC
	if cy.retire {
		next.PPC = in.PcWriteback
	}

	// NPC
	// A debugger write is held only while the core stays stalled.
	next.npcWritten = c.npcWritten && in.Debug.Stall
	npc, npcWrite := c.written(spr.NPC)
	switch {
	case npcWrite && c.write.debug:
		next.NPC = npc
		next.npcWritten = true
	case c.npcWritten:
	case cy.stepping:
		switch {
		case c.steppedIntoRfe:
			next.NPC = c.EPCR
		case c.branchStep&2 != 0:
			next.NPC = c.lastBranchTarget
		case c.steppedIntoException:
			next.NPC = c.ExceptionVector
		default:
			next.NPC = c.PPC + 4
		}
	case cy.trapStall:
		next.NPC = in.PcWriteback
	case in.Debug.Stall && cy.rfe:
		next.NPC = c.EPCR
	case c.CpuStalled, c.trapStalled:
	default:
		next.NPC = in.PcExecute
	}

	// EVBAR
	if data, ok := c.written(spr.EVBAR); ok {
		next.EVBAR = data & spr.EVBAR_MASK
	}

	// FPCSR
	if cfg.FPU {
		if data, ok := c.written(spr.FPCSR); ok {
			next.FPCSR = data & spr.FPCSR_MASK
		} else if cy.retire && in.FPFlags != 0 {
			next.FPCSR |= in.FPFlags & cfg.FPUFlagMask & spr.FPCSR_FLAGS
		}
	}

	// Debug unit
	if data, ok := c.written(spr.DMR1); ok {
		next.DMR1 = data
	}
	if data, ok := c.written(spr.DMR2); ok {
		next.DMR2 = data
	}
	if data, ok := c.written(spr.DSR); ok {
		next.DSR = data
	}
	if data, ok := c.written(spr.DRR); ok {
		next.DRR = data
	} else if cy.trapStall {
		next.DRR |= spr.DRR_TE
	}
}

func setBit(value uint32, bit uint32, on bool) uint32 {
	if on {
		return value | bit
	}
	return value &^ bit
}
