package disasm

import "uncom/internal/comfile"

// CommentKind places a comment relative to the instruction at its address.
type CommentKind int

const (
	// Pre comments render on their own line before the instruction.
	Pre CommentKind = iota
	// Post comments render on their own line after the instruction.
	Post
	// Inline comments render at the end of the instruction's line.
	Inline
)

// Comment is one annotation attached to an address. Several comments may
// share an address; they keep insertion order.
type Comment struct {
	Kind CommentKind
	Text string
	Addr comfile.Address
}

// CommentsAt returns every comment at an address, in insertion order.
func (d *Disassembly) CommentsAt(addr comfile.Address) []Comment {
	var out []Comment
	for _, c := range d.Comments {
		if c.Addr == addr {
			out = append(out, c)
		}
	}
	return out
}
