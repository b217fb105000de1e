// Package ticktimer models the tick timer that feeds the tick-timer
// exception cause.
package ticktimer

import (
	"log"

	"github.com/ezrec/ctrlunit/bus"
	"github.com/ezrec/ctrlunit/spr"
)

// TTMR fields.
const (
	TTMR_TP = uint32(0x0fff_ffff) // Time period
	TTMR_IP = uint32(1 << 28)     // Interrupt pending
	TTMR_IE = uint32(1 << 29)     // Interrupt enable
	TTMR_M  = uint32(3 << 30)     // Mode
)

// Timer modes.
const (
	MODE_DISABLED   = uint32(0 << 30) // Counter halted
	MODE_RESTART    = uint32(1 << 30) // Restart from zero on match
	MODE_STOP       = uint32(2 << 30) // Stop on match
	MODE_CONTINUOUS = uint32(3 << 30) // Keep counting past match
)

// Timer is the tick timer.
type Timer struct {
	Verbose bool

	Mode  uint32 // TTMR
	Count uint32 // TTCR
}

var _ bus.Unit = (*Timer)(nil)

// Reset the timer.
func (tt *Timer) Reset() {
	tt.Mode = 0
	tt.Count = 0
}

// Tick advances the counter by one cycle.
func (tt *Timer) Tick() {
	mode := tt.Mode & TTMR_M
	if mode == MODE_DISABLED {
		return
	}

	match := (tt.Count & TTMR_TP) == (tt.Mode & TTMR_TP)
	if match && (tt.Mode&TTMR_IE) != 0 {
		if tt.Verbose && (tt.Mode&TTMR_IP) == 0 {
			log.Printf("ticktimer: match 0x%07x", tt.Count&TTMR_TP)
		}
		tt.Mode |= TTMR_IP
	}

	switch mode {
	case MODE_RESTART:
		if match {
			tt.Count = 0
		} else {
			tt.Count++
		}
	case MODE_STOP:
		if !match {
			tt.Count++
		}
	case MODE_CONTINUOUS:
		tt.Count++
	}
}

// Interrupt is true while the interrupt-pending bit is set.
func (tt *Timer) Interrupt() bool {
	return (tt.Mode & TTMR_IP) != 0
}

func (tt *Timer) Read(addr uint16) (data uint32, ack bool) {
	switch addr {
	case spr.TTMR:
		data = tt.Mode
	case spr.TTCR:
		data = tt.Count
	}
	return data, true
}

func (tt *Timer) Write(addr uint16, data uint32) (ack bool) {
	switch addr {
	case spr.TTMR:
		tt.Mode = data
	case spr.TTCR:
		tt.Count = data
	}
	return true
}
