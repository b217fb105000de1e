package ctrl

import (
	"log"

	"github.com/ezrec/ctrlunit/bus"
	"github.com/ezrec/ctrlunit/spr"
)

// sprAccess is the SPR bus access presented in a cycle.
type sprAccess struct {
	request bool
	debug   bool // from the debugger port
	write   bool
	allowed bool // privilege check passed
	addr    uint16
	data    uint32
}

// busWrite is a write to a register owned by the control unit. The
// register rules consume it in the same cycle.
type busWrite struct {
	valid bool
	debug bool
	addr  uint16
	data  uint32
}

// Decode returns the register group that answers addr. Groups absent
// from the configuration decode to GROUP_NONE.
func (c *Control) Decode(addr uint16) (group spr.Group) {
	group = spr.GroupOf(addr)
	if group == spr.GROUP_NONE || !c.Config.Present(group) {
		return spr.GROUP_NONE
	}
	return
}

// arbitrate selects the access of this cycle. The debugger port wins over
// the pipeline.
func (c *Control) arbitrate(in *Inputs) (access sprAccess) {
	switch {
	case in.Debug.Stb:
		access = sprAccess{
			request: true,
			debug:   true,
			write:   in.Debug.We,
			addr:    in.Debug.Addr,
			data:    in.Debug.Data,
		}
	case in.Mfspr || in.Mtspr:
		access = sprAccess{
			request: true,
			write:   in.Mtspr,
			addr:    in.SprAddr,
			data:    in.SprData,
		}
	default:
		return
	}

	switch {
	case access.debug, (c.SR & spr.SR_SM) != 0:
		access.allowed = true
	case !access.write && (c.SR&spr.SR_SUMRA) != 0:
		access.allowed = true
	}

	return
}

// routeSpr dispatches this cycle's SPR access to the owning group.
// done is the unified acknowledge; data is the read data, zero for
// writes. No new access starts while the previous completion is being
// reported.
func (c *Control) routeSpr(cy *cycle) (done bool, data uint32) {
	c.write = busWrite{}
	c.access = sprAccess{}

	if c.sprAck {
		return
	}

	c.access = c.arbitrate(cy.in)
	access := &c.access
	if !access.request {
		return
	}

	group := c.Decode(access.addr)
	unit := c.route[group]

	switch {
	case !access.allowed:
		// Completes, without effect.
		done = true
	case access.write:
		done = unit.Write(access.addr, access.data)
	default:
		data, done = unit.Read(access.addr)
		if !done {
			data = 0
		}
	}

	if group == spr.GROUP_NONE {
		done = true
		data = 0
	}

	if c.Verbose && done {
		op := "read"
		if access.write {
			op = "write"
		}
		log.Printf("ctrl: spr %v 0x%04x (%v) 0x%08x", op, access.addr, group, access.data|data)
	}

	return
}

// sysGroup answers the system group.
type sysGroup struct {
	c *Control
}

var _ bus.Unit = sysGroup{}

func (sys sysGroup) Read(addr uint16) (data uint32, ack bool) {
	c := sys.c

	if spr.IsGpr(addr) {
		return c.Gpr.Read(addr - spr.GPR0)
	}

	if data, ok := c.Config.Read(addr); ok {
		return data, true
	}

	switch addr {
	case spr.EVBAR:
		data = c.EVBAR
	case spr.NPC:
		data = c.NPC
	case spr.SR:
		data = c.SR
	case spr.PPC:
		data = c.PPC
	case spr.FPCSR:
		if c.Config.FPU {
			data = c.FPCSR
		}
	case spr.EPCR0:
		data = c.EPCR
	case spr.EEAR0:
		data = c.EEAR
	case spr.ESR0:
		data = c.ESR
	}

	return data, true
}

func (sys sysGroup) Write(addr uint16, data uint32) (ack bool) {
	c := sys.c

	if spr.IsGpr(addr) {
		return c.Gpr.Write(addr-spr.GPR0, data)
	}

	c.write = busWrite{valid: true, debug: c.access.debug, addr: addr, data: data}

	return true
}

// debugGroup answers the debug unit group.
type debugGroup struct {
	c *Control
}

var _ bus.Unit = debugGroup{}

func (dbg debugGroup) Read(addr uint16) (data uint32, ack bool) {
	c := dbg.c

	switch addr {
	case spr.DMR1:
		data = c.DMR1
	case spr.DMR2:
		data = c.DMR2
	case spr.DSR:
		data = c.DSR
	case spr.DRR:
		data = c.DRR
	}

	return data, true
}

func (dbg debugGroup) Write(addr uint16, data uint32) (ack bool) {
	c := dbg.c

	c.write = busWrite{valid: true, debug: c.access.debug, addr: addr, data: data}

	return true
}
