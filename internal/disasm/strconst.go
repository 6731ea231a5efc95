package disasm

import (
	"fmt"
	"strings"

	"uncom/internal/comfile"
)

// StringConstant is a run of image bytes recognized as a DOS display string.
// Value holds the raw scanned bytes; End - Start equals len(Value), so the
// constant spans [Start, End) in the image.
type StringConstant struct {
	Start comfile.Address
	End   comfile.Address
	Value string
}

// DBStatement renders the constant as a NASM db directive, quoting printable
// runs and emitting other bytes as hex.
func (s StringConstant) DBStatement() string {
	var b strings.Builder
	b.WriteString("db ")
	inQuotes := false
	first := true

	for i := 0; i < len(s.Value); i++ {
		c := s.Value[i]
		printable := c == ' ' || (c > 0x20 && c < 0x7F)

		if printable {
			if !inQuotes {
				if !first {
					b.WriteString(", ")
				}
				b.WriteByte('"')
				inQuotes = true
			}
			if c == '"' {
				b.WriteString(`\"`)
			} else {
				b.WriteByte(c)
			}
		} else {
			if inQuotes {
				b.WriteByte('"')
				inQuotes = false
			}
			if !first {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "0x%02X", c)
		}
		first = false
	}

	if inQuotes {
		b.WriteByte('"')
	}
	return b.String()
}

// StringAt returns the first string constant whose span contains addr. The
// End address is accepted as well, so a probe one past the data still
// resolves.
func (d *Disassembly) StringAt(addr comfile.Address) (StringConstant, bool) {
	for _, s := range d.Strings {
		if s.Start <= addr && addr <= s.End {
			return s, true
		}
	}
	return StringConstant{}, false
}

// findStringConstant scans the image for a DOS string starting at addr and
// records it if non-empty. The terminating '$' (0x24) is included; a NUL
// stops the scan without being included; otherwise the scan runs to the end
// of the image.
//
// When addr lies below the load origin or past the image, extraction is
// skipped entirely and false is returned: the tracked pointer is a heuristic
// and an out-of-image value means it was not the string pointer this call
// used. An in-image address returns true even when the scan comes up empty.
func (d *Disassembly) findStringConstant(addr comfile.Address) bool {
	start, ok := d.img.Index(addr)
	if !ok {
		return false
	}

	data := d.img.Data
	end := start
	for end < len(data) {
		if data[end] == 0x24 {
			end++ // '$' terminator belongs to the string
			break
		}
		if data[end] == 0x00 {
			break
		}
		end++
	}

	if end == start {
		return true
	}
	d.Strings = append(d.Strings, StringConstant{
		Start: addr,
		End:   addr + comfile.Address(end-start),
		Value: string(data[start:end]),
	})
	return true
}
