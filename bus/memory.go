package bus

// Memory is a unit backed by a sparse word store. Unwritten registers
// read as zero. Every access completes in the cycle it is offered.
type Memory struct {
	Data map[uint16]uint32

	Reads  int // Completed read count.
	Writes int // Completed write count.
}

var _ Unit = (*Memory)(nil)

func (mem *Memory) Read(addr uint16) (data uint32, ack bool) {
	mem.Reads++
	return mem.Data[addr], true
}

func (mem *Memory) Write(addr uint16, data uint32) (ack bool) {
	if mem.Data == nil {
		mem.Data = make(map[uint16]uint32)
	}
	mem.Data[addr] = data
	mem.Writes++
	return true
}

// Reset clears the store and counters.
func (mem *Memory) Reset() {
	clear(mem.Data)
	mem.Reads = 0
	mem.Writes = 0
}
