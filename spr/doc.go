// Package spr describes the special-purpose register (SPR) address space.
//
// An SPR address is 16 bits wide. The upper five bits select a register
// group (system, MMUs, caches, debug, interrupt controller, tick timer, ...),
// the lower eleven bits select a register within the group.
package spr
