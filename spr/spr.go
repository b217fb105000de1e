package spr

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/ctrlunit/internal"
)

// Group is an SPR register group.
type Group int

//go:generate go tool stringer -linecomment -type=Group
const (
	GROUP_SYS    = Group(0)  // sys
	GROUP_DMMU   = Group(1)  // dmmu
	GROUP_IMMU   = Group(2)  // immu
	GROUP_DCACHE = Group(3)  // dcache
	GROUP_ICACHE = Group(4)  // icache
	GROUP_MAC    = Group(5)  // mac
	GROUP_DEBUG  = Group(6)  // debug
	GROUP_PERF   = Group(7)  // perf
	GROUP_POWER  = Group(8)  // power
	GROUP_PIC    = Group(9)  // pic
	GROUP_TIMER  = Group(10) // timer
	GROUP_FPU    = Group(11) // fpu
	GROUP_NONE   = Group(12) // none
)

const (
	GROUP_SHIFT = 11
	OFFSET_MASK = uint16(1<<GROUP_SHIFT) - 1
)

// Address builds an SPR address from a group and register offset.
func Address(group Group, offset uint16) uint16 {
	return uint16(group)<<GROUP_SHIFT | (offset & OFFSET_MASK)
}

// GroupOf returns the group field of an address. Group numbers beyond
// the architected set decode to GROUP_NONE.
func GroupOf(addr uint16) Group {
	group := Group(addr >> GROUP_SHIFT)
	if group >= GROUP_NONE {
		return GROUP_NONE
	}
	return group
}

// Offset returns the register offset within the group.
func Offset(addr uint16) uint16 {
	return addr & OFFSET_MASK
}

// System group registers.
const (
	VR       = uint16(0x000) // Version
	UPR      = uint16(0x001) // Unit present
	CPUCFGR  = uint16(0x002) // CPU configuration
	DMMUCFGR = uint16(0x003) // Data MMU configuration
	IMMUCFGR = uint16(0x004) // Instruction MMU configuration
	DCCFGR   = uint16(0x005) // Data cache configuration
	ICCFGR   = uint16(0x006) // Instruction cache configuration
	DCFGR    = uint16(0x007) // Debug configuration
	PCCFGR   = uint16(0x008) // Performance counter configuration
	VR2      = uint16(0x009) // Version 2
	AVR      = uint16(0x00a) // Architecture version
	EVBAR    = uint16(0x00b) // Exception vector base
	AECR     = uint16(0x00c) // Arithmetic exception control
	AESR     = uint16(0x00d) // Arithmetic exception status
	NPC      = uint16(0x010) // Next PC
	SR       = uint16(0x011) // Supervision register
	PPC      = uint16(0x012) // Previous PC
	FPCSR    = uint16(0x014) // FPU control/status
	EPCR0    = uint16(0x020) // Exception PC
	EEAR0    = uint16(0x030) // Exception effective address
	ESR0     = uint16(0x040) // Exception SR
	GPR0     = uint16(0x400) // General register file alias, first
	GPR_LAST = uint16(0x5ff) // General register file alias, last
)

// IsGpr is true for the system group window aliasing the register file.
func IsGpr(addr uint16) bool {
	return addr >= GPR0 && addr <= GPR_LAST
}

// Debug group registers.
const (
	DMR1 = uint16(GROUP_DEBUG)<<GROUP_SHIFT | 0x10 // Debug mode 1
	DMR2 = uint16(GROUP_DEBUG)<<GROUP_SHIFT | 0x11 // Debug mode 2
	DSR  = uint16(GROUP_DEBUG)<<GROUP_SHIFT | 0x14 // Debug stop
	DRR  = uint16(GROUP_DEBUG)<<GROUP_SHIFT | 0x15 // Debug reason
)

// Interrupt controller registers.
const (
	PICMR = uint16(GROUP_PIC)<<GROUP_SHIFT | 0x0 // Mask
	PICSR = uint16(GROUP_PIC)<<GROUP_SHIFT | 0x2 // Status
)

// Tick timer registers.
const (
	TTMR = uint16(GROUP_TIMER)<<GROUP_SHIFT | 0x0 // Mode
	TTCR = uint16(GROUP_TIMER)<<GROUP_SHIFT | 0x1 // Count
)

// Supervision register (SR) bits.
const (
	SR_SM    = uint32(1 << 0)  // Supervisor mode
	SR_TEE   = uint32(1 << 1)  // Tick timer exception enable
	SR_IEE   = uint32(1 << 2)  // Interrupt exception enable
	SR_DCE   = uint32(1 << 3)  // Data cache enable
	SR_ICE   = uint32(1 << 4)  // Instruction cache enable
	SR_DME   = uint32(1 << 5)  // Data MMU enable
	SR_IME   = uint32(1 << 6)  // Instruction MMU enable
	SR_LEE   = uint32(1 << 7)  // Little endian enable
	SR_CE    = uint32(1 << 8)  // CID enable
	SR_F     = uint32(1 << 9)  // Flag
	SR_CY    = uint32(1 << 10) // Carry
	SR_OV    = uint32(1 << 11) // Overflow
	SR_OVE   = uint32(1 << 12) // Overflow exception enable
	SR_DSX   = uint32(1 << 13) // Delay slot exception
	SR_EPH   = uint32(1 << 14) // Exception prefix high
	SR_FO    = uint32(1 << 15) // Fixed one
	SR_SUMRA = uint32(1 << 16) // SPR user mode read access
	SR_CID   = uint32(0xf << 28)

	// SR_RESTORE is the part of SR restored from ESR by a return from exception.
	SR_RESTORE = uint32(0x7fff)

	SR_RESET = SR_FO | SR_SM
)

// FPU control/status register bits.
const (
	FPCSR_FPEE  = uint32(1 << 0)  // FP exception enable
	FPCSR_RM    = uint32(3 << 1)  // Rounding mode
	FPCSR_OVF   = uint32(1 << 3)  // Overflow
	FPCSR_UNF   = uint32(1 << 4)  // Underflow
	FPCSR_SNF   = uint32(1 << 5)  // Signaling NaN
	FPCSR_QNF   = uint32(1 << 6)  // Quiet NaN
	FPCSR_ZF    = uint32(1 << 7)  // Zero
	FPCSR_IXF   = uint32(1 << 8)  // Inexact
	FPCSR_IVF   = uint32(1 << 9)  // Invalid
	FPCSR_INF   = uint32(1 << 10) // Infinity
	FPCSR_DZF   = uint32(1 << 11) // Divide by zero
	FPCSR_FLAGS = uint32(0x1ff << 3)
	FPCSR_MASK  = uint32(0xfff)
)

// Debug register bits.
const (
	DMR1_ST = uint32(1 << 22) // Single step trace
	DMR1_BT = uint32(1 << 23) // Branch trace
	DSR_TE  = uint32(1 << 13) // Trap causes stall
	DRR_TE  = uint32(1 << 13) // Trap occurred
)

// Unit present register bits.
const (
	UPR_UP   = uint32(1 << 0)
	UPR_DCP  = uint32(1 << 1)
	UPR_ICP  = uint32(1 << 2)
	UPR_DMP  = uint32(1 << 3)
	UPR_IMP  = uint32(1 << 4)
	UPR_MP   = uint32(1 << 5)
	UPR_DUP  = uint32(1 << 6)
	UPR_PCUP = uint32(1 << 7)
	UPR_PICP = uint32(1 << 8)
	UPR_PMP  = uint32(1 << 9)
	UPR_TTP  = uint32(1 << 10)
)

// CPU configuration register bits.
const (
	CPUCFGR_OB32S  = uint32(1 << 5)
	CPUCFGR_OF32S  = uint32(1 << 7)
	CPUCFGR_AVRP   = uint32(1 << 11)
	CPUCFGR_EVBARP = uint32(1 << 12)
)

// EVBAR_MASK is the writable part of the exception vector base.
const EVBAR_MASK = ^uint32(0x1fff)

var _spr_defines = map[string]string{}

func init() {
	for name, addr := range map[string]uint16{
		"SPR_VR": VR, "SPR_UPR": UPR, "SPR_CPUCFGR": CPUCFGR,
		"SPR_DMMUCFGR": DMMUCFGR, "SPR_IMMUCFGR": IMMUCFGR,
		"SPR_DCCFGR": DCCFGR, "SPR_ICCFGR": ICCFGR, "SPR_DCFGR": DCFGR,
		"SPR_PCCFGR": PCCFGR, "SPR_VR2": VR2, "SPR_AVR": AVR,
		"SPR_EVBAR": EVBAR, "SPR_AECR": AECR, "SPR_AESR": AESR,
		"SPR_NPC": NPC, "SPR_SR": SR, "SPR_PPC": PPC, "SPR_FPCSR": FPCSR,
		"SPR_EPCR0": EPCR0, "SPR_EEAR0": EEAR0, "SPR_ESR0": ESR0,
		"SPR_GPR0": GPR0,
		"SPR_DMR1": DMR1, "SPR_DMR2": DMR2, "SPR_DSR": DSR, "SPR_DRR": DRR,
		"SPR_PICMR": PICMR, "SPR_PICSR": PICSR,
		"SPR_TTMR": TTMR, "SPR_TTCR": TTCR,
	} {
		_spr_defines[name] = fmt.Sprintf("0x%04x", addr)
	}

	for name, bit := range map[string]uint32{
		"SR_SM": SR_SM, "SR_TEE": SR_TEE, "SR_IEE": SR_IEE, "SR_DCE": SR_DCE,
		"SR_ICE": SR_ICE, "SR_DME": SR_DME, "SR_IME": SR_IME, "SR_LEE": SR_LEE,
		"SR_CE": SR_CE, "SR_F": SR_F, "SR_CY": SR_CY, "SR_OV": SR_OV,
		"SR_OVE": SR_OVE, "SR_DSX": SR_DSX, "SR_EPH": SR_EPH, "SR_FO": SR_FO,
		"SR_SUMRA":   SR_SUMRA,
		"FPCSR_FPEE": FPCSR_FPEE, "FPCSR_FLAGS": FPCSR_FLAGS,
		"DMR1_ST": DMR1_ST, "DMR1_BT": DMR1_BT, "DSR_TE": DSR_TE, "DRR_TE": DRR_TE,
	} {
		_spr_defines[name] = fmt.Sprintf("0x%x", bit)
	}

	for group := GROUP_SYS; group < GROUP_NONE; group++ {
		_spr_defines["GROUP_"+strings.ToUpper(group.String())] = fmt.Sprintf("%d", group)
	}
}

// Defines returns the symbolic names of SPR addresses and bits.
func Defines() iter.Seq2[string, string] {
	return internal.SortedDefines(_spr_defines)
}
