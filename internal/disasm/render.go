package disasm

import (
	"fmt"
	"io"
	"strings"

	"uncom/internal/codec"
	"uncom/internal/comfile"
)

// Options are the listing toggles. Each is independent.
type Options struct {
	WriteLabels     bool // label declaration lines
	WriteIndent     bool // indent instructions inside labeled blocks
	OffsetComments  bool // append "; 0x01xx" address comments
	SyscallComments bool // annotate recognized int 21h lines
	WriteBytes      bool // append the instruction's byte encoding
	MiscComments    bool // PRE/INLINE/POST comment emission
}

// DefaultOptions enables labels, indentation and misc comments.
func DefaultOptions() Options {
	return Options{WriteLabels: true, WriteIndent: true, MiscComments: true}
}

const indent = "    "

// printer is a sticky-error writer; after the first failed write every call
// is a no-op and the render loop bails out.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Render writes the listing to w. The traversal is a single forward pass
// with one piece of local state: the indentation flag, raised by a label
// line and dropped again by ret. The flag toggles even when WriteLabels or
// WriteIndent are off, so option combinations stay consistent with each
// other. The first write error aborts the pass and is returned.
func (d *Disassembly) Render(w io.Writer, opts Options) error {
	p := &printer{w: w}
	indented := false

	for _, inst := range d.Insts {
		if p.err != nil {
			return p.err
		}
		comments := d.CommentsAt(inst.Addr)

		if opts.MiscComments {
			for _, c := range comments {
				if c.Kind != Pre {
					continue
				}
				if indented {
					p.printf(indent)
				}
				p.printf("; %s\n", c.Text)
			}
		}

		if label, ok := d.LabelAt(inst.Addr); ok && opts.WriteLabels {
			p.printf("%s\n", label)
			indented = true
		}

		if indented && opts.WriteIndent {
			p.printf(indent)
		}
		// ret closes the block opened by the last label, whether or not
		// indentation is being written.
		if inst.Shape == codec.ShapeReturn {
			indented = false
		}

		if sc, ok := d.StringAt(inst.Addr); ok && sc.Start == inst.Addr {
			p.printf("; %s\n", sc.DBStatement())
		}

		d.renderBody(p, inst, opts)

		if opts.OffsetComments {
			p.printf(" ; 0x%04x", uint16(inst.Addr))
		}
		if opts.WriteBytes {
			p.printf(" ; bytes: %x", codec.Encode(inst, comfile.Origin))
		}
		if opts.MiscComments {
			for _, c := range comments {
				if c.Kind == Inline {
					p.printf(" ; %s", c.Text)
				}
			}
		}
		p.printf("\n")

		if opts.MiscComments {
			for _, c := range comments {
				if c.Kind == Post {
					if indented {
						p.printf(indent)
					}
					p.printf("; %s\n", c.Text)
				}
			}
		}
	}
	return p.err
}

// renderBody emits the instruction text itself: labeled branches are
// rewritten symbolically, recognized syscalls get their annotation, and
// everything else passes through the codec formatter untouched.
func (d *Disassembly) renderBody(p *printer, inst codec.Inst, opts Options) {
	switch inst.Shape {
	case codec.ShapeShortJump, codec.ShapeNearCall:
		if target, ok := inst.BranchTarget(); ok {
			if label, ok := d.LabelAt(target); ok {
				if inst.Shape == codec.ShapeShortJump {
					p.printf("jmp %s ; label", label.Name)
				} else {
					p.printf("call %s ; function", label.Name)
				}
				return
			}
		}
	case codec.ShapeInterrupt:
		if v, ok := inst.InterruptVector(); ok && v == 0x21 && opts.SyscallComments {
			if sc, ok := d.SyscallAt(inst.Addr); ok {
				p.printf("%s ; %s", codec.Format(inst), sc.Func.Annotation())
				return
			}
		}
	}
	p.printf("%s", codec.Format(inst))
}

// String renders with default options.
func (d *Disassembly) String() string {
	var b strings.Builder
	d.Render(&b, DefaultOptions())
	return b.String()
}
