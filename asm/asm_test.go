// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func assemble(code string) (*ObjectProgram, *SymbolTable, error) {
	r := bytes.NewReader([]byte(code))
	return Assemble(r, "test", io.Discard, 0)
}

func checkASM(t *testing.T, asm string, expected ...string) {
	t.Helper()

	prog, _, err := assemble(asm)
	if err != nil {
		t.Error(err)
		for _, e := range prog.Errors {
			t.Error(e)
		}
		return
	}

	var b strings.Builder
	prog.WriteTo(&b)
	got := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")

	if len(got) != len(expected) {
		t.Errorf("got %d records, expected %d", len(got), len(expected))
	}
	for i := 0; i < len(got) && i < len(expected); i++ {
		if got[i] != expected[i] {
			t.Errorf("record %d doesn't match expected", i)
			t.Errorf("got: %s", got[i])
			t.Errorf("exp: %s", expected[i])
		}
	}
}

func TestImmediate(t *testing.T) {
	asm := `
PROG    START   1000
LABEL1  LDA     #5
        END     PROG`

	checkASM(t, asm,
		"HPROG  0003E8000003",
		"T0003E803010005",
		"E0003E8")
}

func TestPCRelative(t *testing.T) {
	asm := `
COPY    START   0
FIRST   STL     RETADR
        LDA     LENGTH
RETADR  RESW    1
LENGTH  RESW    1
        END     FIRST`

	checkASM(t, asm,
		"HCOPY  00000000000C",
		"T00000006172003032003",
		"E000000")
}

func TestPCRelativeBoundary(t *testing.T) {
	// FAR sits exactly 2047 bytes past the next instruction's address,
	// the largest displacement still encodable pc-relative.
	asm := `
PROG    START   0
ORIGIN  LDA     FAR
        RESB    2047
FAR     WORD    9
        END`

	checkASM(t, asm,
		"HPROG  000000000805",
		"T000000060327FF000009",
		"E000000")
}

func TestBaseRelativeBoundary(t *testing.T) {
	// FAR sits 2048 bytes past the next instruction's address, one too
	// far for pc-relative, forcing the base-relative fallback.
	asm := `
PROG    START   0
        BASE    FAR
        LDA     FAR
        RESB    2048
FAR     WORD    9
        END`

	checkASM(t, asm,
		"HPROG  000000000806",
		"T00000006034000000009",
		"E000000")
}

func TestFormat1(t *testing.T) {
	asm := `
PROG    START   0
        FIX
        NORM
        SIO
        END`

	checkASM(t, asm,
		"HPROG  000000000003",
		"T00000003C4C8F0",
		"E000000")
}

func TestFormat2(t *testing.T) {
	asm := `
PROG    START   0
        CLEAR   X
        COMPR   A,S
        TIXR    T
        END`

	checkASM(t, asm,
		"HPROG  000000000006",
		"T00000006B410A004B850",
		"E000000")
}

func TestFormat4Relocation(t *testing.T) {
	asm := `
COPY    START   0
FIRST   +JSUB   SUB
        RSUB
SUB     +LDA    #9
        END     FIRST`

	checkASM(t, asm,
		"HCOPY  00000000000B",
		"T0000000B4B1000074F000001100009",
		"M00000105",
		"E000000")
}

func TestByteConstants(t *testing.T) {
	asm := `
PROG    START   0
EOF     BYTE    C'EOF'
MASK    BYTE    X'1F'
        END`

	checkASM(t, asm,
		"HPROG  000000000004",
		"T00000004454F461F",
		"E000000")
}

func TestIndexedAddressing(t *testing.T) {
	asm := `
PROG    START   0
        STCH    BUFFER,X
BUFFER  RESB    1
        END`

	// STCH opcode 54, n=i=1, x=1, pc disp 0
	checkASM(t, asm,
		"HPROG  000000000004",
		"T0000000357A000",
		"E000000")
}

func TestIndirectAddressing(t *testing.T) {
	asm := `
PROG    START   0
        J       @RETADR
RETADR  RESW    1
        END`

	// J opcode 3C, n=1 i=0, pc disp 0
	checkASM(t, asm,
		"HPROG  000000000006",
		"T000000033E2000",
		"E000000")
}

func TestTextRecordCapacity(t *testing.T) {
	var lines []string
	lines = append(lines, "PROG    START   0")
	for i := 1; i <= 11; i++ {
		lines = append(lines, "        WORD    "+string(rune('0'+i/10))+string(rune('0'+i%10)))
	}
	lines = append(lines, "        END")

	// 33 bytes of words: the first record fills to its 30-byte
	// capacity, the eleventh word opens a second record.
	checkASM(t, strings.Join(lines, "\n"),
		"HPROG  000000000021",
		"T0000001E000001000002000003000004000005000006000007000008000009"+
			"00000A",
		"T00001E0300000B",
		"E000000")
}

func TestTextRecordGap(t *testing.T) {
	// NEXT lies exactly 0x1000 bytes past the last emitted byte, so a
	// new text record starts at its location.
	asm := `
PROG    START   0
        LDA     #1
        RESB    4095
NEXT    LDA     #2
        END`

	checkASM(t, asm,
		"HPROG  000000001005",
		"T00000003010001",
		"T00100203010002",
		"E000000")
}

func TestTextRecordSmallGap(t *testing.T) {
	// A gap below 0x1000 does not close the open record.
	asm := `
PROG    START   0
        LDA     #1
        RESB    4094
NEXT    LDA     #2
        END`

	checkASM(t, asm,
		"HPROG  000000001004",
		"T00000006010001010002",
		"E000000")
}

func TestEndStopsScan(t *testing.T) {
	asm := `
PROG    START   0
        LDA     #1
        END
        LDA     #2`

	checkASM(t, asm,
		"HPROG  000000000006",
		"T00000003010001",
		"E000000")
}

func TestNoStartDirective(t *testing.T) {
	asm := `
        LDA     #7
        END`

	prog, _, err := assemble(asm)
	if err != nil {
		t.Fatal(err)
	}
	if prog.Start != 0 || prog.Length != 3 {
		t.Errorf("got start %d length %d, expected 0 and 3", prog.Start, prog.Length)
	}
}

func TestDuplicateSymbol(t *testing.T) {
	asm := `
PROG    START   0
X       WORD    1
X       WORD    2
Y       WORD    3
        END`

	prog, symtab, err := assemble(asm)
	if err == nil {
		t.Error("expected a parse error, didn't get one")
	}
	if len(prog.Errors) != 1 || !strings.Contains(prog.Errors[0], "duplicate symbol 'X'") {
		t.Errorf("unexpected diagnostics: %v", prog.Errors)
	}

	// The first definition stays authoritative and the duplicate
	// statement contributes nothing, so Y lands right after X.
	if addr, ok := symtab.Lookup("X"); !ok || addr != 0 {
		t.Errorf("X resolved to %d, expected 0", addr)
	}
	if addr, ok := symtab.Lookup("Y"); !ok || addr != 3 {
		t.Errorf("Y resolved to %d, expected 3", addr)
	}
	if prog.Length != 6 {
		t.Errorf("got length %d, expected 6", prog.Length)
	}
}

func TestUnknownOperation(t *testing.T) {
	asm := `
PROG    START   0
        FROB    1
        LDA     #1
        END`

	prog, _, err := assemble(asm)
	if err == nil {
		t.Error("expected a parse error, didn't get one")
	}
	if len(prog.Errors) != 1 || !strings.Contains(prog.Errors[0], "unknown operation 'FROB'") {
		t.Errorf("unexpected diagnostics: %v", prog.Errors)
	}

	// The unknown statement is skipped without advancing the location
	// counter.
	if prog.Length != 3 {
		t.Errorf("got length %d, expected 3", prog.Length)
	}
}

func TestUnknownRegister(t *testing.T) {
	asm := `
PROG    START   0
        CLEAR   Q
        END`

	prog, _, err := assemble(asm)
	if err == nil {
		t.Error("expected a parse error, didn't get one")
	}
	if len(prog.Errors) != 1 || !strings.Contains(prog.Errors[0], "unknown register 'Q'") {
		t.Errorf("unexpected diagnostics: %v", prog.Errors)
	}
}

func TestUnresolvedSymbol(t *testing.T) {
	asm := `
PROG    START   0
        LDA     MISSING
        END`

	prog, _, err := assemble(asm)
	if err == nil {
		t.Error("expected a parse error, didn't get one")
	}
	if len(prog.Errors) != 1 || !strings.Contains(prog.Errors[0], "unresolved symbol 'MISSING'") {
		t.Errorf("unexpected diagnostics: %v", prog.Errors)
	}
}

func TestComments(t *testing.T) {
	asm := `
. header comment
PROG    START   0
. another comment
        LDA     #5
        END`

	checkASM(t, asm,
		"HPROG  000000000003",
		"T00000003010005",
		"E000000")
}

func TestLabelOnlyLine(t *testing.T) {
	asm := `
PROG    START   0
HERE
        LDA     HERE
        END`

	// HERE binds to the current location and contributes no code.
	checkASM(t, asm,
		"HPROG  000000000003",
		"T00000003032FFD",
		"E000000")

	_, symtab, err := assemble(asm)
	if err != nil {
		t.Fatal(err)
	}
	if addr, ok := symtab.Lookup("HERE"); !ok || addr != 0 {
		t.Errorf("HERE resolved to %d, expected 0", addr)
	}
}

func TestProgramLengthProperty(t *testing.T) {
	asm := `
PROG    START   100
        LDA     #1
        RESW    10
B       BYTE    C'HELLO'
        +STA    B
        END`

	prog, _, err := assemble(asm)
	if err != nil {
		t.Fatal(err)
	}
	// 3 + 30 + 5 + 4 bytes
	if prog.Length != 42 {
		t.Errorf("got length %d, expected 42", prog.Length)
	}
}

func TestSymbolRoundTrip(t *testing.T) {
	asm := `
PROG    START   0
A1      LDA     B1
A2      RESW    2
B1      WORD    5
        END`

	prog, symtab, err := assemble(asm)
	if err != nil {
		t.Fatal(err)
		return
	}

	want := map[string]int{"PROG": 0, "A1": 0, "A2": 3, "B1": 9}
	for label, addr := range want {
		got, ok := symtab.Lookup(label)
		if !ok || got != addr {
			t.Errorf("%s resolved to %d, expected %d", label, got, addr)
		}
	}
	if prog.Length != 12 {
		t.Errorf("got length %d, expected 12", prog.Length)
	}
}

func TestEmptyLabelNeverResolves(t *testing.T) {
	_, symtab, err := assemble("PROG    START   0\n        END")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := symtab.Lookup(""); ok {
		t.Error("empty label lookup succeeded")
	}
}
