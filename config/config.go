// Package config holds the feature-presence configuration of the core and
// the read-only identification registers derived from it.
package config

import (
	"github.com/ezrec/ctrlunit/spr"
)

// Features selects the optional parts of the core.
type Features struct {
	DataMMU          bool
	InstructionMMU   bool
	DataCache        bool
	InstructionCache bool
	MAC              bool
	Debug            bool
	PerfCounters     bool
	PowerManagement  bool
	PIC              bool
	TickTimer        bool
	FPU              bool

	DelaySlot bool // SR[DSX] tracks exceptions taken in a delay slot.
	Carry     bool // SR[CY] is implemented.
	Overflow  bool // SR[OV] and SR[OVE] are implemented.

	FPUFlagMask uint32 // FPCSR sticky flags that committing instructions may raise.
}

// Config is the configuration collaborator: feature flags plus the
// identification words reported on the system group.
type Config struct {
	Features

	Version      uint32 // VR
	Version2     uint32 // VR2
	ArchVersion  uint32 // AVR
	DMMUConfig   uint32 // DMMUCFGR
	IMMUConfig   uint32 // IMMUCFGR
	DCacheConfig uint32 // DCCFGR
	ICacheConfig uint32 // ICCFGR
	DebugConfig  uint32 // DCFGR
	PerfConfig   uint32 // PCCFGR
}

// Default returns the configuration of a core with the debug unit,
// interrupt controller and tick timer, and the full status register.
func Default() (cfg *Config) {
	cfg = &Config{
		Features: Features{
			Debug:       true,
			PIC:         true,
			TickTimer:   true,
			DelaySlot:   true,
			Carry:       true,
			Overflow:    true,
			FPUFlagMask: spr.FPCSR_FLAGS,
		},
		Version:     0x12000001,
		Version2:    0x01050000,
		ArchVersion: 0x01010000,
	}

	return
}

// Present reports if a register group is implemented.
func (cfg *Config) Present(group spr.Group) bool {
	switch group {
	case spr.GROUP_SYS:
		return true
	case spr.GROUP_DMMU:
		return cfg.DataMMU
	case spr.GROUP_IMMU:
		return cfg.InstructionMMU
	case spr.GROUP_DCACHE:
		return cfg.DataCache
	case spr.GROUP_ICACHE:
		return cfg.InstructionCache
	case spr.GROUP_MAC:
		return cfg.MAC
	case spr.GROUP_DEBUG:
		return cfg.Debug
	case spr.GROUP_PERF:
		return cfg.PerfCounters
	case spr.GROUP_POWER:
		return cfg.PowerManagement
	case spr.GROUP_PIC:
		return cfg.PIC
	case spr.GROUP_TIMER:
		return cfg.TickTimer
	case spr.GROUP_FPU:
		return cfg.FPU
	}

	return false
}

// UnitPresent computes UPR from the feature flags.
func (cfg *Config) UnitPresent() (upr uint32) {
	upr = spr.UPR_UP
	for _, unit := range []struct {
		group spr.Group
		bit   uint32
	}{
		{spr.GROUP_DCACHE, spr.UPR_DCP},
		{spr.GROUP_ICACHE, spr.UPR_ICP},
		{spr.GROUP_DMMU, spr.UPR_DMP},
		{spr.GROUP_IMMU, spr.UPR_IMP},
		{spr.GROUP_MAC, spr.UPR_MP},
		{spr.GROUP_DEBUG, spr.UPR_DUP},
		{spr.GROUP_PERF, spr.UPR_PCUP},
		{spr.GROUP_PIC, spr.UPR_PICP},
		{spr.GROUP_POWER, spr.UPR_PMP},
		{spr.GROUP_TIMER, spr.UPR_TTP},
	} {
		if cfg.Present(unit.group) {
			upr |= unit.bit
		}
	}

	return
}

// CpuConfig computes CPUCFGR.
func (cfg *Config) CpuConfig() (cpucfgr uint32) {
	cpucfgr = spr.CPUCFGR_OB32S | spr.CPUCFGR_AVRP | spr.CPUCFGR_EVBARP
	if cfg.FPU {
		cpucfgr |= spr.CPUCFGR_OF32S
	}
	return
}

// Read returns a configuration register of the system group. ok is false
// for registers the configuration collaborator does not own.
func (cfg *Config) Read(addr uint16) (data uint32, ok bool) {
	ok = true
	switch addr {
	case spr.VR:
		data = cfg.Version
	case spr.UPR:
		data = cfg.UnitPresent()
	case spr.CPUCFGR:
		data = cfg.CpuConfig()
	case spr.DMMUCFGR:
		data = cfg.DMMUConfig
	case spr.IMMUCFGR:
		data = cfg.IMMUConfig
	case spr.DCCFGR:
		data = cfg.DCacheConfig
	case spr.ICCFGR:
		data = cfg.ICacheConfig
	case spr.DCFGR:
		data = cfg.DebugConfig
	case spr.PCCFGR:
		data = cfg.PerfConfig
	case spr.VR2:
		data = cfg.Version2
	case spr.AVR:
		data = cfg.ArchVersion
	default:
		ok = false
	}

	return
}
