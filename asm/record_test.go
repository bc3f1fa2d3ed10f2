// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func TestRecordRendering(t *testing.T) {
	cases := []struct {
		rec      Record
		expected string
	}{
		{HeaderRecord{Name: "COPY", Start: 0x1000, Length: 0x107A}, "HCOPY  00100000107A"},
		{TextRecord{Start: 0x1000, Code: "0327FF"}, "T001000030327FF"},
		{ModRecord{Addr: 0x1001, HalfBytes: 5}, "M00100105"},
		{EndRecord{FirstExec: 0x1000}, "E001000"},
	}

	for _, c := range cases {
		if got := c.rec.Render(); got != c.expected {
			t.Errorf("got %s, expected %s", got, c.expected)
		}
	}
}

func TestLongByteConstant(t *testing.T) {
	// A 35-byte character constant spans two text records; the second
	// record starts where the first one's capacity ran out.
	asm := `
PROG    START   0
MSG     BYTE    C'AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA'
        END`

	checkASM(t, asm,
		"HPROG  000000000023",
		"T0000001E414141414141414141414141414141414141414141414141414141414141",
		"T00001E054141414141",
		"E000000")
}

func TestModRecordsFollowTextRecords(t *testing.T) {
	asm := `
PROG    START   0
        +LDA    W1
        +LDA    W2
W1      WORD    1
W2      WORD    2
        END`

	checkASM(t, asm,
		"HPROG  00000000000E",
		"T0000000E031000080310000B000001000002",
		"M00000105",
		"M00000505",
		"E000000")
}
