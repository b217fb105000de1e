// Package ctrl implements the control unit of a pipelined CPU core.
//
// The control unit performs no arithmetic. Once per cycle it turns the
// pipeline's stage handshakes into advance pulses, prioritizes pending
// exception causes, updates the architectural status registers, routes
// SPR bus accesses from the pipeline or the debugger to the owning
// register group, and runs the debugger's single-step protocol.
//
// All state lives in State and is replaced as a whole at the end of
// Control.Tick, so every rule sees the register values of the start of
// the cycle.
package ctrl
