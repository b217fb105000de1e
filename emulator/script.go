package emulator

import (
	"iter"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ctrlunit/config"
	"github.com/ezrec/ctrlunit/ctrl"
)

// Script is a Starlark stimulus script. It defines a function
//
//	def cycle(n, out):
//	    return {"fetch_valid": True, "execute_valid": True}
//
// called once per cycle with the cycle number and a dict of the prior
// cycle's outputs and registers. The returned dict names the inputs that
// are asserted in the cycle; returning None stops the run.
type Script struct {
	thread *starlark.Thread
	cycle  starlark.Callable
}

// LoadScript compiles a stimulus script, with the defines predeclared.
func LoadScript(filename string, src any, defines iter.Seq2[string, string]) (script *Script, err error) {
	thread := &starlark.Thread{Name: "stimulus"}
	opts := syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
	}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, config.Predeclared(defines))
	if err != nil {
		return
	}

	cycle, ok := globals["cycle"].(starlark.Callable)
	if !ok {
		err = ErrScriptCycle
		return
	}

	script = &Script{
		thread: thread,
		cycle:  cycle,
	}

	return
}

// Next calls the script for the inputs of cycle n.
func (script *Script) Next(n int, out ctrl.Outputs, state *ctrl.State) (in ctrl.Inputs, done bool, err error) {
	args := starlark.Tuple{starlark.MakeInt(n), outputDict(out, state)}

	result, err := starlark.Call(script.thread, script.cycle, args, nil)
	if err != nil {
		return
	}

	switch result := result.(type) {
	case starlark.NoneType:
		done = true
	case *starlark.Dict:
		in, err = parseInputs(result)
	default:
		err = ErrInputResult
	}

	return
}

// inputFields maps script input names onto the input fields.
func inputFields(in *ctrl.Inputs) (flags map[string]*bool, words map[string]*uint32, addrs map[string]*uint16) {
	flags = map[string]*bool{
		"reset":            &in.Reset,
		"fetch_valid":      &in.FetchValid,
		"execute_valid":    &in.ExecuteValid,
		"decode_bubble":    &in.DecodeBubble,
		"execute_bubble":   &in.ExecuteBubble,
		"redirect_taken":   &in.FetchRedirectTaken,
		"rfe":              &in.Rfe,
		"delay_slot":       &in.DelaySlot,
		"branch_taken":     &in.BranchTaken,
		"flag":             &in.Flag,
		"carry":            &in.Carry,
		"overflow":         &in.Overflow,
		"store_buffer_err": &in.StoreBufferErr,
		"mfspr":            &in.Mfspr,
		"mtspr":            &in.Mtspr,
		"dbg_stb":          &in.Debug.Stb,
		"dbg_we":           &in.Debug.We,
		"dbg_stall":        &in.Debug.Stall,
	}
	words = map[string]*uint32{
		"pc_execute":      &in.PcExecute,
		"pc_writeback":    &in.PcWriteback,
		"branch_target":   &in.BranchTarget,
		"fp_flags":        &in.FPFlags,
		"data_addr":       &in.DataAddr,
		"store_buffer_pc": &in.StoreBufferPC,
		"irq":             &in.Irq,
		"spr_data":        &in.SprData,
		"dbg_data":        &in.Debug.Data,
	}
	addrs = map[string]*uint16{
		"spr_addr": &in.SprAddr,
		"dbg_addr": &in.Debug.Addr,
	}

	return
}

// word converts a Starlark integer that fits in limit.
func word(value starlark.Value, limit uint64) (u uint64, ok bool) {
	i, ok := value.(starlark.Int)
	if !ok {
		return
	}
	u, ok = i.Uint64()
	if !ok || u > limit {
		return 0, false
	}
	return
}

// parseCauses accepts a cause bit mask, or a list of cause names.
func parseCauses(value starlark.Value) (causes ctrl.Causes, err error) {
	if u, ok := word(value, uint64(ctrl.ARCH_CAUSES)); ok {
		causes = ctrl.Causes(u)
		return
	}

	iterable, ok := value.(starlark.Iterable)
	if !ok {
		err = ErrInputType
		return
	}

	it := iterable.Iterate()
	defer it.Done()

	var item starlark.Value
	for it.Next(&item) {
		name, ok := starlark.AsString(item)
		if !ok {
			err = ErrInputType
			return
		}
		var cause ctrl.Cause
		cause, err = ctrl.ParseCause(name)
		if err != nil {
			return
		}
		causes = causes.With(cause)
	}

	causes &= ctrl.ARCH_CAUSES
	return
}

// parseInputs converts a script result into cycle inputs.
func parseInputs(dict *starlark.Dict) (in ctrl.Inputs, err error) {
	flags, words, addrs := inputFields(&in)

	for _, item := range dict.Items() {
		name, ok := starlark.AsString(item[0])
		if !ok {
			err = ErrInputKey
			return
		}
		value := item[1]

		if flag, ok := flags[name]; ok {
			*flag = bool(value.Truth())
			continue
		}
		if field, ok := words[name]; ok {
			u, ok := word(value, 0xffff_ffff)
			if !ok {
				err = ErrInput{Name: name, Err: ErrInputType}
				return
			}
			*field = uint32(u)
			continue
		}
		if field, ok := addrs[name]; ok {
			u, ok := word(value, 0xffff)
			if !ok {
				err = ErrInput{Name: name, Err: ErrInputType}
				return
			}
			*field = uint16(u)
			continue
		}
		if name == "causes" {
			in.Causes, err = parseCauses(value)
			if err != nil {
				err = ErrInput{Name: name, Err: err}
				return
			}
			continue
		}

		err = ErrInput{Name: name, Err: ErrInputName}
		return
	}

	return
}

// outputDict presents the outputs of a cycle, and the register state, to
// the script.
func outputDict(out ctrl.Outputs, state *ctrl.State) (dict *starlark.Dict) {
	dict = starlark.NewDict(32)

	set := func(key string, value starlark.Value) {
		_ = dict.SetKey(starlark.String(key), value)
	}
	u32 := func(value uint32) starlark.Value {
		return starlark.MakeUint64(uint64(value))
	}

	for key, value := range map[string]bool{
		"fetch_advance":        out.FetchAdvance,
		"decode_advance":       out.DecodeAdvance,
		"writeback_advance":    out.WritebackAdvance,
		"execute_new_input":    out.ExecuteNewInput,
		"writeback_new_result": out.WritebackNewResult,
		"flush":                out.PipelineFlush,
		"redirect":             out.Redirect,
		"spr_done":             out.SprDone,
		"dbg_ack":              out.DebugAck,
		"stall_request":        out.StallRequest,
		"stalled":              out.Stalled,
		"restart":              out.Restart,
		"exception":            out.Exception,
	} {
		set(key, starlark.Bool(value))
	}

	for key, value := range map[string]uint32{
		"redirect_pc": out.RedirectPC,
		"spr_data":    out.SprData,
		"dbg_data":    out.DebugData,
		"restart_pc":  out.RestartPC,
		"vector":      out.Vector,
		"sr":          state.SR,
		"esr":         state.ESR,
		"epcr":        state.EPCR,
		"eear":        state.EEAR,
		"ppc":         state.PPC,
		"npc":         state.NPC,
		"evbar":       state.EVBAR,
		"fpcsr":       state.FPCSR,
		"dmr1":        state.DMR1,
		"dsr":         state.DSR,
		"drr":         state.DRR,
	} {
		set(key, u32(value))
	}

	set("cause", starlark.String(out.Cause.String()))
	set("phase", starlark.String(state.Phase.String()))

	dict.Freeze()

	return
}
