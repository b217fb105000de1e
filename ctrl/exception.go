package ctrl

import (
	"github.com/ezrec/ctrlunit/spr"
)

// prioritize gathers this cycle's exception causes, selects the winning
// vector, and detects the rising edge of the composite exception
// condition.
func (c *Control) prioritize(cy *cycle) {
	in := cy.in

	arch := in.Causes & ARCH_CAUSES
	if in.StoreBufferErr {
		arch = arch.With(CAUSE_DBUS_ERR)
	}

	cy.causes = arch
	interrupt := c.Config.PIC && c.Pic.Pending() && (c.SR&spr.SR_IEE) != 0
	if interrupt {
		cy.causes = cy.causes.With(CAUSE_INT)
	}
	tick := c.Config.TickTimer && c.Timer.Interrupt() && (c.SR&spr.SR_TEE) != 0
	if tick {
		cy.causes = cy.causes.With(CAUSE_TICK)
	}

	// Delivery is held off while the debugger has the core stalled;
	// causes are still reported, they just do not arm.
	enabled := !c.CpuStalled

	cy.pending = enabled && (arch != 0 || ((interrupt || tick) && cy.commit))

	var offset uint32
	cy.cause, offset = Prioritize(cy.causes)
	cy.vector = c.EVBAR | offset

	cy.fresh = cy.pending && !c.exceptionLevel
	cy.trapStall = cy.fresh && cy.cause == CAUSE_TRAP && c.trapsStall()
	cy.entry = cy.fresh && !cy.trapStall
}

// trapsStall is true when the debugger has asked for traps to stall the
// core instead of vectoring.
func (c *Control) trapsStall() bool {
	return c.Config.Debug && (c.DSR&spr.DSR_TE) != 0
}

// updateException advances the pending-exception and RFE latches.
func (c *Control) updateException(cy *cycle, next *State) {
	in := cy.in

	next.exceptionLevel = cy.pending

	switch {
	case cy.restart:
		next.ExceptionPending = false
	case c.ExceptionPending && in.FetchRedirectTaken:
		next.ExceptionPending = false
	case cy.entry && !c.ExceptionPending:
		next.ExceptionPending = true
		next.ExceptionVector = cy.vector
		next.ExceptionCause = cy.cause
	}

	switch {
	case cy.rfe:
		next.RfeInProgress = true
	case c.RfeInProgress && in.FetchRedirectTaken:
		next.RfeInProgress = false
	}
}
