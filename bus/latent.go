package bus

// Latent delays the acknowledge of another unit by a fixed number of
// cycles. The wrapped unit only sees the access on the acknowledging
// cycle. Changing the access mid-flight restarts the wait.
type Latent struct {
	Unit  Unit
	Delay int // Cycles of wait before the acknowledge.

	busy  bool
	wait  int
	addr  uint16
	write bool
	data  uint32
}

var _ Unit = (*Latent)(nil)

func (lt *Latent) Read(addr uint16) (data uint32, ack bool) {
	if !lt.step(addr, false, 0) {
		return
	}
	return lt.Unit.Read(addr)
}

func (lt *Latent) Write(addr uint16, data uint32) (ack bool) {
	if !lt.step(addr, true, data) {
		return
	}
	return lt.Unit.Write(addr, data)
}

// Busy is true while an access is waiting.
func (lt *Latent) Busy() bool {
	return lt.busy
}

// Reset drops any waiting access.
func (lt *Latent) Reset() {
	lt.busy = false
	lt.wait = 0
}

// step counts down the wait for the access, and reports when it is due.
func (lt *Latent) step(addr uint16, write bool, data uint32) (due bool) {
	if !lt.busy || lt.addr != addr || lt.write != write || lt.data != data {
		lt.busy = true
		lt.wait = lt.Delay
		lt.addr = addr
		lt.write = write
		lt.data = data
	}

	if lt.wait > 0 {
		lt.wait--
		return
	}

	lt.busy = false
	due = true
	return
}
