package disasm

import "golang.org/x/arch/x86/x86asm"

// RegState tracks the last value written to each register by straight-line
// mov instructions, in program order.
//
// This is deliberately shallow: values are never invalidated by jumps, calls
// or returns, and there is no branch-merge logic. It exists to recover the
// selector a DOS syscall dispatch depends on in idiomatic hand-written
// assembly, where AH is loaded immediately before int 21h. On code that sets
// registers across branches the tracked value can be stale; consumers must
// treat it as a heuristic, not data flow.
type RegState struct {
	vals map[x86asm.Reg]uint16
}

// NewRegState creates an empty tracker.
func NewRegState() *RegState {
	return &RegState{vals: make(map[x86asm.Reg]uint16)}
}

// Set records a write of v to reg.
func (r *RegState) Set(reg x86asm.Reg, v uint16) {
	r.vals[reg] = v
}

// Get returns the last tracked value for reg.
func (r *RegState) Get(reg x86asm.Reg) (uint16, bool) {
	v, ok := r.vals[reg]
	return v, ok
}

// GetDefault returns the last tracked value for reg, or 0 if it was never
// written.
func (r *RegState) GetDefault(reg x86asm.Reg) uint16 {
	return r.vals[reg]
}
