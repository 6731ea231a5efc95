package codec

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/arch/x86/x86asm"

	"uncom/internal/comfile"
)

// jmp over four nops to mov ah,9 / int 21h / ret.
var sample = []byte{
	0xEB, 0x04, // jmp short 0x106
	0x90, 0x90, 0x90, 0x90,
	0xB4, 0x09, // mov ah, 0x9
	0xCD, 0x21, // int 0x21
	0xC3, // ret
}

func decodeAll(t *testing.T, data []byte) []Inst {
	t.Helper()
	d := NewDecoder(data, comfile.Origin)
	var insts []Inst
	for d.CanDecode() {
		inst, ok := d.Next()
		if !ok {
			t.Fatal("Next() = false while CanDecode() = true")
		}
		insts = append(insts, inst)
	}
	return insts
}

func TestDecodeSample(t *testing.T) {
	insts := decodeAll(t, sample)
	if len(insts) != 8 {
		t.Fatalf("got %d instructions, want 8", len(insts))
	}

	wantAddrs := []comfile.Address{0x100, 0x102, 0x103, 0x104, 0x105, 0x106, 0x108, 0x10A}
	for i, inst := range insts {
		if inst.Addr != wantAddrs[i] {
			t.Errorf("inst[%d].Addr = %s, want %s", i, inst.Addr, wantAddrs[i])
		}
	}

	wantShapes := []Shape{
		ShapeShortJump,
		ShapeOther, ShapeOther, ShapeOther, ShapeOther,
		ShapeRegMove,
		ShapeInterrupt,
		ShapeReturn,
	}
	for i, inst := range insts {
		if inst.Shape != wantShapes[i] {
			t.Errorf("inst[%d].Shape = %d, want %d", i, inst.Shape, wantShapes[i])
		}
	}
}

func TestBranchTarget(t *testing.T) {
	insts := decodeAll(t, sample)

	target, ok := insts[0].BranchTarget()
	if !ok {
		t.Fatal("short jump has no branch target")
	}
	if target != 0x106 {
		t.Errorf("target = %s, want 0x0106", target)
	}

	if _, ok := insts[7].BranchTarget(); ok {
		t.Error("ret should have no branch target")
	}
}

func TestBranchTargetWraps(t *testing.T) {
	// jmp short -4 decoded at an address near the bottom of the space.
	d := NewDecoder([]byte{0xEB, 0xFA}, 0x0002)
	inst, ok := d.Next()
	if !ok {
		t.Fatal("decode failed")
	}
	target, ok := inst.BranchTarget()
	if !ok {
		t.Fatal("no branch target")
	}
	// 0x0002 + 2 - 6 wraps below zero.
	if target != 0xFFFE {
		t.Errorf("target = %s, want 0xfffe", target)
	}
}

func TestMoveOperands(t *testing.T) {
	insts := decodeAll(t, sample)
	mv, ok := insts[5].MoveOperands()
	if !ok {
		t.Fatal("mov ah, 0x9 not recognized as register move")
	}
	if mv.Dst != x86asm.AH || mv.Source != MoveImmediate || mv.Imm != 0x09 {
		t.Errorf("got dst=%v source=%d imm=0x%02x, want AH immediate 0x09", mv.Dst, mv.Source, mv.Imm)
	}
}

func TestMoveOperandsImm16(t *testing.T) {
	insts := decodeAll(t, []byte{0xBA, 0x08, 0x01}) // mov dx, 0x108
	if len(insts) != 1 {
		t.Fatalf("got %d instructions, want 1", len(insts))
	}
	mv, ok := insts[0].MoveOperands()
	if !ok {
		t.Fatal("mov dx, imm16 not recognized as register move")
	}
	if mv.Dst != x86asm.DX || mv.Imm != 0x0108 {
		t.Errorf("got dst=%v imm=0x%04x, want DX 0x0108", mv.Dst, mv.Imm)
	}
}

func TestMoveOperandsRegister(t *testing.T) {
	insts := decodeAll(t, []byte{0x88, 0xE7}) // mov bh, ah
	mv, ok := insts[0].MoveOperands()
	if !ok {
		t.Fatal("mov bh, ah not recognized as register move")
	}
	if mv.Dst != x86asm.BH || mv.Source != MoveRegister || mv.Src != x86asm.AH {
		t.Errorf("got dst=%v source=%d src=%v, want BH from AH", mv.Dst, mv.Source, mv.Src)
	}
}

func TestInterruptVector(t *testing.T) {
	insts := decodeAll(t, sample)
	v, ok := insts[6].InterruptVector()
	if !ok || v != 0x21 {
		t.Errorf("InterruptVector() = 0x%02x, %v, want 0x21, true", v, ok)
	}
}

func TestUndecodableByteIsDB(t *testing.T) {
	// A lone 0xCD is a truncated int: the codec must still make progress.
	insts := decodeAll(t, []byte{0xCD})
	if len(insts) != 1 {
		t.Fatalf("got %d instructions, want 1", len(insts))
	}
	if !insts[0].IsData() {
		t.Error("truncated instruction should decode as data")
	}
	if got := Format(insts[0]); got != "db 0xcd" {
		t.Errorf("Format() = %q, want %q", got, "db 0xcd")
	}
}

func TestDecodeTerminates(t *testing.T) {
	// Every iteration consumes at least one byte.
	data := make([]byte, 64)
	insts := decodeAll(t, data)
	if len(insts) == 0 || len(insts) > len(data) {
		t.Fatalf("got %d instructions for %d bytes", len(insts), len(data))
	}
	total := 0
	for _, inst := range insts {
		if inst.Len() < 1 {
			t.Fatalf("instruction at %s has length %d", inst.Addr, inst.Len())
		}
		total += inst.Len()
	}
	if total != len(data) {
		t.Errorf("consumed %d bytes, want %d", total, len(data))
	}
}

func TestFormat(t *testing.T) {
	insts := decodeAll(t, sample)

	if got := strings.ToLower(Format(insts[6])); !strings.Contains(got, "int 0x21") {
		t.Errorf("int formatting = %q, want it to contain %q", got, "int 0x21")
	}
	if got := strings.ToLower(Format(insts[5])); !strings.Contains(got, "mov") || !strings.Contains(got, "0x9") {
		t.Errorf("mov formatting = %q, want mov with 0x9 immediate", got)
	}
	if got := strings.ToLower(Format(insts[1])); !strings.Contains(got, "nop") {
		t.Errorf("nop formatting = %q", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	insts := decodeAll(t, sample)
	var out []byte
	for _, inst := range insts {
		out = append(out, Encode(inst, comfile.Origin)...)
	}
	if !bytes.Equal(out, sample) {
		t.Errorf("re-encoded image differs:\n got %x\nwant %x", out, sample)
	}
}
