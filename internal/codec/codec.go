// Package codec is the instruction-set boundary for 16-bit x86 code images.
//
// It walks a flat buffer from a load origin, producing one Inst per decoded
// instruction, and renders instructions back to Intel-syntax text or to their
// byte encoding. Decoding always makes forward progress: bytes that do not
// decode are consumed one at a time as db pseudo-instructions, so a pass over
// any finite buffer terminates.
package codec

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"

	"uncom/internal/comfile"
)

// Shape classifies an instruction into the closed set of shapes the analysis
// passes care about. Classification happens once, at decode time; everything
// downstream branches on it instead of re-inspecting operands.
type Shape int

const (
	ShapeOther Shape = iota
	ShapeRegMove
	ShapeInterrupt
	ShapeShortJump
	ShapeNearCall
	ShapeReturn
)

// Inst is one decoded instruction: its address, the bytes it was decoded
// from, and the underlying codec record.
type Inst struct {
	Addr  comfile.Address
	Raw   []byte
	Shape Shape
	X     x86asm.Inst // zero when the bytes did not decode (db pseudo-instruction)
}

// Len returns the instruction length in bytes.
func (i Inst) Len() int { return len(i.Raw) }

// IsData reports whether this record is a db pseudo-instruction standing in
// for an undecodable byte.
func (i Inst) IsData() bool { return i.X.Op == 0 }

// MoveSource is where a register move takes its value from.
type MoveSource int

const (
	MoveImmediate MoveSource = iota
	MoveRegister
	MoveOther // memory or segment-offset source; not tracked
)

// Move describes a mov into a register.
type Move struct {
	Dst    x86asm.Reg
	Source MoveSource
	Imm    uint16     // MoveImmediate only, zero-extended to 16 bits
	Src    x86asm.Reg // MoveRegister only
}

// MoveOperands returns the move description for a ShapeRegMove instruction.
// Immediates into 8-bit registers are masked to 8 bits before zero-extension
// so decoder sign handling can never widen them.
func (i Inst) MoveOperands() (Move, bool) {
	if i.Shape != ShapeRegMove {
		return Move{}, false
	}
	dst := i.X.Args[0].(x86asm.Reg)
	switch src := i.X.Args[1].(type) {
	case x86asm.Imm:
		v := uint16(src)
		if is8Bit(dst) {
			v &= 0xFF
		}
		return Move{Dst: dst, Source: MoveImmediate, Imm: v}, true
	case x86asm.Reg:
		return Move{Dst: dst, Source: MoveRegister, Src: src}, true
	default:
		return Move{Dst: dst, Source: MoveOther}, true
	}
}

// InterruptVector returns the interrupt number of a ShapeInterrupt
// instruction.
func (i Inst) InterruptVector() (uint8, bool) {
	if i.Shape != ShapeInterrupt {
		return 0, false
	}
	imm, ok := i.X.Args[0].(x86asm.Imm)
	if !ok {
		return 0, false
	}
	return uint8(imm), true
}

// BranchTarget returns the absolute target of a short jump or near call,
// wrapped into the 16-bit address space.
func (i Inst) BranchTarget() (comfile.Address, bool) {
	if i.Shape != ShapeShortJump && i.Shape != ShapeNearCall {
		return 0, false
	}
	rel, ok := i.X.Args[0].(x86asm.Rel)
	if !ok {
		return 0, false
	}
	return i.Addr + comfile.Address(i.X.Len) + comfile.Address(rel), true
}

func is8Bit(r x86asm.Reg) bool {
	return r >= x86asm.AL && r <= x86asm.BH
}

func opcodeByte(x x86asm.Inst) byte {
	return byte(x.Opcode >> 24)
}

func classify(x x86asm.Inst) Shape {
	switch x.Op {
	case x86asm.MOV:
		if _, ok := x.Args[0].(x86asm.Reg); ok {
			return ShapeRegMove
		}
	case x86asm.INT:
		if _, ok := x.Args[0].(x86asm.Imm); ok {
			return ShapeInterrupt
		}
	case x86asm.JMP:
		// Only the two-byte short form. Near (0xE9) and indirect jumps
		// carry no label semantics here.
		if opcodeByte(x) == 0xEB {
			if _, ok := x.Args[0].(x86asm.Rel); ok {
				return ShapeShortJump
			}
		}
	case x86asm.CALL:
		if opcodeByte(x) == 0xE8 {
			if _, ok := x.Args[0].(x86asm.Rel); ok {
				return ShapeNearCall
			}
		}
	case x86asm.RET:
		return ShapeReturn
	}
	return ShapeOther
}

// Decoder walks a code image instruction by instruction.
type Decoder struct {
	data []byte
	pos  int
	ip   comfile.Address
}

// NewDecoder creates a decoder over data laid out at origin.
func NewDecoder(data []byte, origin comfile.Address) *Decoder {
	return &Decoder{data: data, ip: origin}
}

// CanDecode reports whether undecoded bytes remain.
func (d *Decoder) CanDecode() bool { return d.pos < len(d.data) }

// Next decodes the next instruction. The second return is false only when
// the buffer is exhausted; the read position strictly advances otherwise.
func (d *Decoder) Next() (Inst, bool) {
	if !d.CanDecode() {
		return Inst{}, false
	}
	x, err := x86asm.Decode(d.data[d.pos:], 16)
	if err != nil || x.Len <= 0 {
		inst := Inst{Addr: d.ip, Raw: d.data[d.pos : d.pos+1], Shape: ShapeOther}
		d.pos++
		d.ip++
		return inst, true
	}
	inst := Inst{
		Addr:  d.ip,
		Raw:   d.data[d.pos : d.pos+x.Len],
		Shape: classify(x),
		X:     x,
	}
	d.pos += x.Len
	d.ip += comfile.Address(x.Len)
	return inst, true
}

// Format renders an instruction in Intel syntax with 0x-prefixed lowercase
// hex numbers. Relative branch operands render as absolute addresses.
func Format(i Inst) string {
	if i.IsData() {
		return fmt.Sprintf("db 0x%02x", i.Raw[0])
	}
	return x86asm.IntelSyntax(i.X, uint64(uint16(i.Addr)), nil)
}

// Encode returns the byte encoding of an instruction laid out at origin.
// Every Inst carries the encoding it was decoded from and encodings are
// position-dependent only through relative displacements, so encoding at the
// image origin reproduces the original bytes.
func Encode(i Inst, origin comfile.Address) []byte {
	out := make([]byte, len(i.Raw))
	copy(out, i.Raw)
	return out
}
