// Package output writes uncom analysis artifacts to files.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"uncom/internal/disasm"
)

// LabelRecord is one entry in labels.json.
type LabelRecord struct {
	Addr string `json:"addr"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// SyscallRecord is one entry in syscalls.json.
type SyscallRecord struct {
	Addr   string `json:"addr"`
	Func   string `json:"func"`
	Number string `json:"number"`
}

// StringRecord is one entry in strings.json.
type StringRecord struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Value string `json:"value"`
}

// WriteListing renders the listing to listing.asm in dir.
func WriteListing(dir string, d *disasm.Disassembly, opts disasm.Options) error {
	path := filepath.Join(dir, "listing.asm")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	if err := d.Render(f, opts); err != nil {
		return fmt.Errorf("output: render %s: %w", path, err)
	}
	return nil
}

// WriteLabelsJSON writes the discovered labels to labels.json.
func WriteLabelsJSON(dir string, d *disasm.Disassembly) error {
	records := make([]LabelRecord, 0, len(d.Labels))
	for _, l := range d.Labels {
		records = append(records, LabelRecord{
			Addr: l.Addr.String(),
			Kind: labelKindName(l.Kind),
			Name: l.Name,
		})
	}
	return writeJSON(filepath.Join(dir, "labels.json"), records)
}

// WriteSyscallsJSON writes the recognized syscall sites to syscalls.json.
func WriteSyscallsJSON(dir string, d *disasm.Disassembly) error {
	records := make([]SyscallRecord, 0, len(d.Syscalls))
	for _, s := range d.Syscalls {
		records = append(records, SyscallRecord{
			Addr:   s.Addr.String(),
			Func:   s.Func.String(),
			Number: fmt.Sprintf("0x%02x", uint8(s.Func)),
		})
	}
	return writeJSON(filepath.Join(dir, "syscalls.json"), records)
}

// WriteStringsJSON writes the extracted string constants to strings.json.
func WriteStringsJSON(dir string, d *disasm.Disassembly) error {
	records := make([]StringRecord, 0, len(d.Strings))
	for _, s := range d.Strings {
		records = append(records, StringRecord{
			Start: s.Start.String(),
			End:   s.End.String(),
			Value: s.Value,
		})
	}
	return writeJSON(filepath.Join(dir, "strings.json"), records)
}

func labelKindName(k disasm.LabelKind) string {
	switch k {
	case disasm.LabelFunction:
		return "function"
	case disasm.LabelData:
		return "data"
	default:
		return "label"
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	return nil
}
