// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package config

import (
	"iter"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ctrlunit/spr"
)

// settings maps script globals onto configuration fields.
func (cfg *Config) settings() (flags map[string]*bool, words map[string]*uint32) {
	flags = map[string]*bool{
		"FEATURE_DMMU":     &cfg.DataMMU,
		"FEATURE_IMMU":     &cfg.InstructionMMU,
		"FEATURE_DCACHE":   &cfg.DataCache,
		"FEATURE_ICACHE":   &cfg.InstructionCache,
		"FEATURE_MAC":      &cfg.MAC,
		"FEATURE_DEBUG":    &cfg.Debug,
		"FEATURE_PERF":     &cfg.PerfCounters,
		"FEATURE_PM":       &cfg.PowerManagement,
		"FEATURE_PIC":      &cfg.PIC,
		"FEATURE_TIMER":    &cfg.TickTimer,
		"FEATURE_FPU":      &cfg.FPU,
		"FEATURE_DSX":      &cfg.DelaySlot,
		"FEATURE_CARRY":    &cfg.Carry,
		"FEATURE_OVERFLOW": &cfg.Overflow,
	}
	words = map[string]*uint32{
		"FPU_FLAG_MASK": &cfg.FPUFlagMask,
		"VERSION":       &cfg.Version,
		"VERSION2":      &cfg.Version2,
		"ARCH_VERSION":  &cfg.ArchVersion,
		"DMMUCFGR":      &cfg.DMMUConfig,
		"IMMUCFGR":      &cfg.IMMUConfig,
		"DCCFGR":        &cfg.DCacheConfig,
		"ICCFGR":        &cfg.ICacheConfig,
		"DCFGR":         &cfg.DebugConfig,
		"PCCFGR":        &cfg.PerfConfig,
	}

	return
}

// Predeclared converts defines to Starlark integers. Defines that are
// not integers are skipped.
func Predeclared(defines iter.Seq2[string, string]) (pred starlark.StringDict) {
	pred = starlark.StringDict{}
	for key, str := range defines {
		value, err := strconv.ParseUint(str, 0, 32)
		if err != nil {
			continue
		}
		pred[key] = starlark.MakeUint64(value)
	}

	return
}

// Load runs a Starlark configuration script on top of the defaults.
//
// The script assigns upper-case globals, for example:
//
//	FEATURE_FPU = True
//	VERSION = 0x12000002
//	FPU_FLAG_MASK = FPCSR_FLAGS
//
// Lower-case globals are helpers and are ignored.
func Load(filename string, src any) (cfg *Config, err error) {
	cfg = Default()

	thread := &starlark.Thread{Name: "config"}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, Predeclared(spr.Defines()))
	if err != nil {
		cfg = nil
		return
	}

	err = cfg.Apply(globals)
	if err != nil {
		cfg = nil
	}
	return
}

// Apply copies settings from Starlark globals into the configuration.
func (cfg *Config) Apply(globals starlark.StringDict) (err error) {
	flags, words := cfg.settings()

	for _, name := range globals.Keys() {
		if name != strings.ToUpper(name) {
			continue
		}
		value := globals[name]
		if flag, ok := flags[name]; ok {
			b, ok := value.(starlark.Bool)
			if !ok {
				return ErrSetting{Name: name, Err: ErrConfigType}
			}
			*flag = bool(b)
			continue
		}
		if word, ok := words[name]; ok {
			i, ok := value.(starlark.Int)
			if !ok {
				return ErrSetting{Name: name, Err: ErrConfigType}
			}
			u, ok := i.Uint64()
			if !ok || u > 0xffffffff {
				return ErrSetting{Name: name, Err: ErrConfigType}
			}
			*word = uint32(u)
			continue
		}
		return ErrSetting{Name: name, Err: ErrConfigUnknown}
	}

	return
}
