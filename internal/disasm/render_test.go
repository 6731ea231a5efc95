package disasm

import (
	"errors"
	"strings"
	"testing"
)

func render(t *testing.T, d *Disassembly, opts Options) string {
	t.Helper()
	var b strings.Builder
	if err := d.Render(&b, opts); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return b.String()
}

func TestRenderEndToEnd(t *testing.T) {
	d := New(entryProgram)
	opts := DefaultOptions()
	opts.SyscallComments = true
	opts.OffsetComments = true

	out := render(t, d, opts)

	if !strings.Contains(out, "_start: ; label\n") {
		t.Errorf("missing _start declaration:\n%s", out)
	}
	if !strings.Contains(out, "jmp _start ; label ; 0x0100") {
		t.Errorf("missing rewritten entry jump with offset:\n%s", out)
	}
	if !strings.Contains(out, "int 0x21 ; DisplayString 0x09") {
		t.Errorf("missing annotated syscall:\n%s", out)
	}
	if !strings.Contains(out, "; Start of program\n") {
		t.Errorf("missing entry comment:\n%s", out)
	}
	// Instructions inside the _start block are indented.
	if !strings.Contains(out, "    int 0x21") {
		t.Errorf("missing indentation inside labeled block:\n%s", out)
	}
}

func TestRenderDefaultsOmitOffsetsAndSyscalls(t *testing.T) {
	d := New(entryProgram)
	out := render(t, d, DefaultOptions())

	if strings.Contains(out, "; 0x0100") {
		t.Error("offset comments should be off by default")
	}
	if strings.Contains(out, "DisplayString") {
		t.Error("syscall comments should be off by default")
	}
	if !strings.Contains(out, "_start: ; label") {
		t.Error("labels should be on by default")
	}
}

func TestRenderWriteBytes(t *testing.T) {
	d := New(entryProgram)
	opts := DefaultOptions()
	opts.WriteBytes = true

	out := render(t, d, opts)
	if !strings.Contains(out, "; bytes: eb04") {
		t.Errorf("missing byte dump for the entry jump:\n%s", out)
	}
	if !strings.Contains(out, "; bytes: cd21") {
		t.Errorf("missing byte dump for int 21h:\n%s", out)
	}
}

func TestRenderLabelsOff(t *testing.T) {
	d := New(entryProgram)
	opts := DefaultOptions()
	opts.WriteLabels = false

	out := render(t, d, opts)
	if strings.Contains(out, "_start: ; label") {
		t.Error("label declaration rendered with labels off")
	}
	// Branch rewriting is driven by discovery, not by the label option.
	if !strings.Contains(out, "jmp _start ; label") {
		t.Error("branch rewriting should not depend on WriteLabels")
	}
}

func TestRenderMiscCommentsOff(t *testing.T) {
	d := New(entryProgram)
	opts := DefaultOptions()
	opts.MiscComments = false

	out := render(t, d, opts)
	if strings.Contains(out, "Start of program") {
		t.Error("PRE comment rendered with misc comments off")
	}
}

func TestRenderStringConstantLine(t *testing.T) {
	d := New(helloProgram)
	out := render(t, d, DefaultOptions())

	if !strings.Contains(out, `; db "HI$"`) {
		t.Errorf("missing db line for string constant:\n%s", out)
	}
	if !strings.Contains(out, "; Start of string data") {
		t.Errorf("missing string data comment:\n%s", out)
	}
}

func TestRenderIndentDropsAfterRet(t *testing.T) {
	// Entry program followed by a trailing nop after the ret.
	prog := append(append([]byte{}, entryProgram...), 0x90)
	d := New(prog)
	out := render(t, d, DefaultOptions())

	lines := strings.Split(out, "\n")
	last := ""
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] != "" {
			last = lines[i]
			break
		}
	}
	if last != "nop" {
		t.Errorf("trailing instruction = %q, want unindented %q", last, "nop")
	}
}

func TestRenderIdempotent(t *testing.T) {
	d := New(entryProgram)
	opts := DefaultOptions()
	opts.SyscallComments = true
	opts.WriteBytes = true
	opts.OffsetComments = true

	if a, b := render(t, d, opts), render(t, d, opts); a != b {
		t.Error("rendering twice produced different output")
	}
}

type failWriter struct{ err error }

func (w *failWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestRenderPropagatesWriteError(t *testing.T) {
	d := New(entryProgram)
	sinkErr := errors.New("sink closed")

	err := d.Render(&failWriter{err: sinkErr}, DefaultOptions())
	if !errors.Is(err, sinkErr) {
		t.Errorf("Render error = %v, want %v", err, sinkErr)
	}
}

func TestRenderPostCommentsOwnLines(t *testing.T) {
	d := New([]byte{0x90, 0x90})
	d.Comments = append(d.Comments,
		Comment{Kind: Post, Text: "first", Addr: 0x100},
		Comment{Kind: Post, Text: "second", Addr: 0x100},
		Comment{Kind: Inline, Text: "same line", Addr: 0x101},
	)

	out := render(t, d, DefaultOptions())
	if !strings.Contains(out, "nop\n; first\n; second\n") {
		t.Errorf("POST comments not on their own lines:\n%s", out)
	}
	if !strings.Contains(out, "nop ; same line\n") {
		t.Errorf("INLINE comment not appended to its line:\n%s", out)
	}
}
