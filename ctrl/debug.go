package ctrl

import (
	"github.com/ezrec/ctrlunit/spr"
)

// Phase is the progress of a single-stepped instruction.
type Phase int

//go:generate go tool stringer -linecomment -type=Phase
const (
	PHASE_IDLE       = Phase(0) // idle
	PHASE_WAIT_FETCH = Phase(1) // wait-fetch
	PHASE_DECODE     = Phase(2) // decode
	PHASE_EXECUTE    = Phase(3) // execute
	PHASE_COMMIT     = Phase(4) // commit
	PHASE_SETTLE     = Phase(5) // settle
)

// stepping is true when the debugger has enabled single-step trace.
func (c *Control) stepping() bool {
	return c.Config.Debug && (c.DMR1&spr.DMR1_ST) != 0 && (c.DSR&spr.DSR_TE) != 0
}

// updateDebug advances the stall latch and the single-step machine.
func (c *Control) updateDebug(cy *cycle, next *State) {
	in := cy.in

	next.stallLast = in.Debug.Stall

	switch {
	case !in.Debug.Stall:
		next.CpuStalled = false
	case cy.retire, cy.halted:
		next.CpuStalled = true
	}

	if cy.trapStall {
		next.trapStalled = true
	}

	if cy.restart {
		next.steppedIntoException = false
		next.steppedIntoRfe = false
		next.trapStalled = false
		next.stepDone = false
		next.Phase = PHASE_IDLE
		if cy.stepping {
			next.Phase = PHASE_WAIT_FETCH
		}
		return
	}

	if _, ok := c.written(spr.NPC); ok && c.write.debug {
		next.branchStep = 0
	}

	if !cy.stepping {
		return
	}

	switch c.Phase {
	case PHASE_WAIT_FETCH:
		if in.FetchValid {
			next.Phase = PHASE_DECODE
		}
	case PHASE_DECODE:
		if cy.adv.decode {
			next.Phase = PHASE_EXECUTE
		}
	case PHASE_EXECUTE:
		if c.executeNewInput {
			next.Phase = PHASE_COMMIT
		}
	case PHASE_COMMIT:
		if cy.commit {
			next.Phase = PHASE_SETTLE
		}
	case PHASE_SETTLE:
		next.Phase = PHASE_IDLE
		next.stepDone = true
	}

	if cy.rfe {
		next.steppedIntoRfe = true
	}
	if cy.entry {
		next.steppedIntoException = true
	}
	if cy.retire {
		next.branchStep = (c.branchStep<<1 | b2u8(in.BranchTaken)) & 3
	}
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
