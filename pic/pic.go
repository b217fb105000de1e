// Package pic models the programmable interrupt controller that feeds the
// external-interrupt exception cause.
package pic

import (
	"log"

	"github.com/ezrec/ctrlunit/bus"
	"github.com/ezrec/ctrlunit/spr"
)

// NON_MASKABLE are the interrupt lines that PICMR cannot mask.
const NON_MASKABLE = uint32(0b11)

// Pic is the interrupt controller. In level mode PICSR mirrors the masked
// lines every cycle. In edge mode PICSR latches rising edges until
// software clears them by writing zeros.
type Pic struct {
	Verbose bool

	EdgeTriggered bool
	NonMaskable   uint32

	Mask   uint32 // PICMR
	Status uint32 // PICSR

	lines uint32 // lines seen in the prior cycle
}

var _ bus.Unit = (*Pic)(nil)

// NewPic creates an interrupt controller with the low two lines non-maskable.
func NewPic() (pic *Pic) {
	pic = &Pic{
		NonMaskable: NON_MASKABLE,
	}
	pic.Reset()
	return
}

// Reset the controller state.
func (pic *Pic) Reset() {
	pic.Mask = pic.NonMaskable
	pic.Status = 0
	pic.lines = 0
}

// Tick samples the interrupt lines.
func (pic *Pic) Tick(lines uint32) {
	enabled := lines & (pic.Mask | pic.NonMaskable)
	if pic.EdgeTriggered {
		pic.Status |= enabled &^ pic.lines
	} else {
		pic.Status = enabled
	}
	pic.lines = lines
}

// Pending is true when any unmasked interrupt is raised.
func (pic *Pic) Pending() bool {
	return pic.Status != 0
}

func (pic *Pic) Read(addr uint16) (data uint32, ack bool) {
	switch addr {
	case spr.PICMR:
		data = pic.Mask
	case spr.PICSR:
		data = pic.Status
	}
	return data, true
}

func (pic *Pic) Write(addr uint16, data uint32) (ack bool) {
	switch addr {
	case spr.PICMR:
		pic.Mask = data | pic.NonMaskable
		if pic.Verbose {
			log.Printf("pic: mask 0x%08x", pic.Mask)
		}
	case spr.PICSR:
		if pic.EdgeTriggered {
			pic.Status &= data
		}
	}
	return true
}
