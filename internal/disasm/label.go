package disasm

import (
	"fmt"

	"uncom/internal/comfile"
)

// LabelKind records how a label was discovered.
type LabelKind int

const (
	// LabelJump marks a short-jump target.
	LabelJump LabelKind = iota
	// LabelFunction marks a near-call target.
	LabelFunction
	// LabelData marks a data location. No discovery rule currently emits
	// these; string constants are tracked separately.
	LabelData
)

// Label names an address in the listing.
type Label struct {
	Addr comfile.Address
	Kind LabelKind
	Name string
}

// String renders the label's declaration line.
func (l Label) String() string {
	switch l.Kind {
	case LabelFunction:
		return fmt.Sprintf("%s: ; function", l.Name)
	case LabelData:
		return fmt.Sprintf("%s: ; data", l.Name)
	default:
		return fmt.Sprintf("%s: ; label", l.Name)
	}
}

// LabelAt returns the first label recorded at an address. Duplicate labels
// at one address are kept in the collection but never win a lookup.
func (d *Disassembly) LabelAt(addr comfile.Address) (Label, bool) {
	for _, l := range d.Labels {
		if l.Addr == addr {
			return l, true
		}
	}
	return Label{}, false
}
