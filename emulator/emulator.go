// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/ctrlunit/bus"
	"github.com/ezrec/ctrlunit/config"
	"github.com/ezrec/ctrlunit/ctrl"
	"github.com/ezrec/ctrlunit/internal"
	"github.com/ezrec/ctrlunit/spr"
)

var _emulator_defines = map[string]string{}

func init() {
	for cause := ctrl.CAUSE_ITLB_MISS; cause < ctrl.CAUSE_NONE; cause++ {
		name := "CAUSE_" + strings.ToUpper(strings.ReplaceAll(cause.String(), "-", "_"))
		_emulator_defines[name] = fmt.Sprintf("%d", cause)
	}
}

// Emulator state. Control unit, register file, and the external units.
type Emulator struct {
	Verbose       bool // If set, enables verbose logging.
	*ctrl.Control      // Reference to the control unit simulation.

	Gpr   bus.Memory                // General register file.
	Units map[spr.Group]*bus.Latent // External units, by group.

	Trace *logrus.Logger // Per-cycle trace, at debug level.

	Cycle int          // Cycles since reset.
	Last  ctrl.Outputs // Outputs of the last cycle.
}

// NewEmulator creates a new emulator. Every configured external group is
// backed by a word store.
func NewEmulator(cfg *config.Config) (emu *Emulator) {
	emu = &Emulator{
		Control: ctrl.NewControl(cfg),
		Units:   map[spr.Group]*bus.Latent{},
		Trace:   logrus.New(),
	}

	emu.Control.Gpr = &emu.Gpr

	for group := spr.GROUP_SYS; group < spr.GROUP_NONE; group++ {
		unit := &bus.Latent{Unit: &bus.Memory{}}
		if emu.Control.SetUnit(group, unit) != nil {
			continue
		}
		emu.Units[group] = unit
	}

	return
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(emu.Control.Defines(), internal.SortedDefines(_emulator_defines))
}

// SetLatency sets the acknowledge delay of an external unit.
func (emu *Emulator) SetLatency(group spr.Group, delay int) (err error) {
	unit, ok := emu.Units[group]
	if !ok {
		return ctrl.ErrGroup{Group: group.String(), Err: ctrl.ErrGroupAbsent}
	}
	unit.Delay = delay
	return
}

// Reset the emulator state.
func (emu *Emulator) Reset() {
	emu.Control.Verbose = emu.Verbose

	emu.Control.Tick(ctrl.Inputs{Reset: true})
	emu.Gpr.Reset()
	for _, unit := range emu.Units {
		unit.Reset()
		unit.Unit.(*bus.Memory).Reset()
	}

	emu.Cycle = 0
	emu.Last = ctrl.Outputs{}
}

// Tick performs a single cycle of the emulator.
func (emu *Emulator) Tick(in ctrl.Inputs) (out ctrl.Outputs) {
	emu.Control.Verbose = emu.Verbose

	out = emu.Control.Tick(in)

	if emu.Trace.IsLevelEnabled(logrus.DebugLevel) {
		fields := logrus.Fields{
			"cycle": emu.Cycle,
			"npc":   fmt.Sprintf("%08x", emu.NPC),
			"sr":    fmt.Sprintf("%08x", emu.SR),
			"phase": emu.Phase.String(),
			"flush": out.PipelineFlush,
		}
		if out.Exception {
			fields["cause"] = out.Cause.String()
			fields["vector"] = fmt.Sprintf("%08x", out.Vector)
		}
		if out.SprDone || out.DebugAck {
			fields["spr"] = fmt.Sprintf("%08x", out.SprData)
		}
		emu.Trace.WithFields(fields).Debug("ctrl tick")
	}

	emu.Cycle++
	emu.Last = out

	return
}

// Run drives the emulator from a stimulus script, until the script stops
// or the cycle limit is reached.
func (emu *Emulator) Run(script *Script, cycles int) (err error) {
	for emu.Cycle < cycles {
		in, done, err := script.Next(emu.Cycle, emu.Last, &emu.State)
		if err != nil {
			return &ErrCycle{Cycle: emu.Cycle, Err: err}
		}
		if done {
			break
		}
		emu.Tick(in)
	}

	if emu.Verbose {
		log.Printf("emulator: stopped at cycle %d", emu.Cycle)
	}

	return
}
