// Package disasm analyzes flat DOS .COM images and renders labeled,
// annotated assembly listings.
//
// Construction is two sequential passes over the image. The decode pass
// drives the instruction codec from the load origin, tracking register
// writes, recognizing INT 21h call sites and extracting display strings as
// it goes. The label pass then scans the finished instruction sequence for
// short jumps and near calls and names their targets. The resulting
// Disassembly is immutable; rendering is a read-only traversal and can run
// any number of times, with any option combination, against the same
// instance.
package disasm

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"

	"uncom/internal/codec"
	"uncom/internal/comfile"
	"uncom/internal/dos"
)

// Disassembly holds the analyzed instruction sequence and every annotation
// collection discovered over it. All collections are append-only during
// construction and read-only afterwards.
type Disassembly struct {
	Insts    []codec.Inst
	Labels   []Label
	Syscalls []dos.Syscall
	Comments []Comment
	Strings  []StringConstant

	// Regs holds the final register-tracker state. See RegState for how
	// little this promises.
	Regs *RegState

	img *comfile.Image
}

// New analyzes a raw .COM byte buffer.
func New(data []byte) *Disassembly {
	return NewImage(comfile.New(data))
}

// NewImage analyzes a loaded .COM image.
func NewImage(img *comfile.Image) *Disassembly {
	d := &Disassembly{
		Regs: NewRegState(),
		img:  img,
	}
	d.decodePass()
	d.labelPass()
	return d
}

// Image returns the analyzed image.
func (d *Disassembly) Image() *comfile.Image { return d.img }

// SyscallAt returns the first syscall record at an address.
func (d *Disassembly) SyscallAt(addr comfile.Address) (dos.Syscall, bool) {
	for _, s := range d.Syscalls {
		if s.Addr == addr {
			return s, true
		}
	}
	return dos.Syscall{}, false
}

// decodePass decodes the whole image in one forward scan, updating the
// register tracker on mov shapes and recording syscall annotations as each
// INT 21h is reached. Every decoded instruction is appended, annotated or
// not.
func (d *Disassembly) decodePass() {
	dec := codec.NewDecoder(d.img.Data, comfile.Origin)
	for dec.CanDecode() {
		inst, ok := dec.Next()
		if !ok {
			break
		}

		switch inst.Shape {
		case codec.ShapeRegMove:
			d.trackMove(inst)
		case codec.ShapeInterrupt:
			d.noteInterrupt(inst)
		}

		d.Insts = append(d.Insts, inst)
	}
}

// trackMove feeds a register move into the tracker. Moves from memory or
// other operand kinds leave the destination's tracked value stale on
// purpose; see RegState.
func (d *Disassembly) trackMove(inst codec.Inst) {
	mv, ok := inst.MoveOperands()
	if !ok {
		return
	}
	switch mv.Source {
	case codec.MoveImmediate:
		d.Regs.Set(mv.Dst, mv.Imm)
	case codec.MoveRegister:
		// Copy the source's tracked value; an untracked source counts
		// as zero, the same default the syscall lookup uses.
		d.Regs.Set(mv.Dst, d.Regs.GetDefault(mv.Src))
	}
}

// noteInterrupt classifies an INT 21h against the tracked AH value. An
// unrecognized selector produces no record; the instruction itself stays in
// the sequence either way.
func (d *Disassembly) noteInterrupt(inst codec.Inst) {
	vector, ok := inst.InterruptVector()
	if !ok || vector != 0x21 {
		return
	}

	fn, ok := dos.Lookup(d.Regs.GetDefault(x86asm.AH))
	if !ok {
		return
	}

	d.Syscalls = append(d.Syscalls, dos.Syscall{Func: fn, Addr: inst.Addr})

	if fn == dos.DisplayString {
		// DS:DX points at the string. Only a tracked DX is usable;
		// without one there is nothing to scan.
		dx, ok := d.Regs.Get(x86asm.DX)
		if !ok {
			return
		}
		addr := comfile.Address(dx)
		if d.findStringConstant(addr) {
			d.Comments = append(d.Comments, Comment{
				Kind: Pre,
				Text: "Start of string data",
				Addr: addr,
			})
		}
	}
}

// labelPass names branch targets over the finished instruction sequence.
// Label discovery has to run after decoding because targets may point
// forward past instructions the decode pass had not reached yet.
//
// Duplicate branches to one target produce duplicate records; lookups return
// the first, so the extras never affect output.
func (d *Disassembly) labelPass() {
	for _, inst := range d.Insts {
		target, ok := inst.BranchTarget()
		if !ok {
			continue
		}

		switch inst.Shape {
		case codec.ShapeShortJump:
			if inst.Addr == comfile.Origin {
				// The conventional COM entry idiom: an initial
				// jump over embedded data to the real start.
				d.Labels = append(d.Labels, Label{
					Addr: target,
					Kind: LabelJump,
					Name: "_start",
				})
				d.Comments = append(d.Comments, Comment{
					Kind: Pre,
					Text: "Start of program",
					Addr: target,
				})
			} else {
				d.Labels = append(d.Labels, Label{
					Addr: target,
					Kind: LabelJump,
					Name: fmt.Sprintf("LABEL_0x%04x", uint16(target)),
				})
			}
		case codec.ShapeNearCall:
			d.Labels = append(d.Labels, Label{
				Addr: target,
				Kind: LabelFunction,
				Name: fmt.Sprintf("FUNC_0x%x", uint16(target)),
			})
		}
	}
}
