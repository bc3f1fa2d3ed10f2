// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sic holds the static data tables describing the SIC/XE
// architecture: the operation catalog mapping mnemonics to opcodes and
// instruction formats, and the register catalog mapping register names
// to their numeric identifiers.
package sic

import "strings"

// Format describes a SIC/XE instruction encoding format.
type Format byte

// All SIC/XE instruction formats
const (
	Fmt1  Format = iota // 1 byte, no operand
	Fmt2                // 2 bytes, register operands
	Fmt34               // 3 bytes, or 4 when the extended flag is set
)

// Size returns the size in bytes of an instruction using the format.
// Format 3/4 instructions occupy one additional byte when extended.
func (f Format) Size(extended bool) int {
	switch f {
	case Fmt1:
		return 1
	case Fmt2:
		return 2
	default:
		if extended {
			return 4
		}
		return 3
	}
}

// String returns the format's conventional name.
func (f Format) String() string {
	switch f {
	case Fmt1:
		return "1"
	case Fmt2:
		return "2"
	default:
		return "3/4"
	}
}

// An Operation describes a single SIC/XE machine operation: its mnemonic,
// its opcode value, and its encoding format.
type Operation struct {
	Name   string // all-caps mnemonic
	Opcode byte   // hexadecimal opcode value
	Format Format // encoding format
}

// Opcode data for every SIC/XE machine operation.
var operations = []Operation{
	{"ADD", 0x18, Fmt34},
	{"ADDF", 0x58, Fmt34},
	{"ADDR", 0x90, Fmt2},
	{"AND", 0x40, Fmt34},
	{"CLEAR", 0xB4, Fmt2},
	{"COMP", 0x28, Fmt34},
	{"COMPF", 0x88, Fmt34},
	{"COMPR", 0xA0, Fmt2},
	{"DIV", 0x24, Fmt34},
	{"DIVF", 0x64, Fmt34},
	{"DIVR", 0x9C, Fmt2},
	{"FIX", 0xC4, Fmt1},
	{"FLOAT", 0xC0, Fmt1},
	{"HIO", 0xF4, Fmt1},
	{"J", 0x3C, Fmt34},
	{"JEQ", 0x30, Fmt34},
	{"JGT", 0x34, Fmt34},
	{"JLT", 0x38, Fmt34},
	{"JSUB", 0x48, Fmt34},
	{"LDA", 0x00, Fmt34},
	{"LDB", 0x68, Fmt34},
	{"LDCH", 0x50, Fmt34},
	{"LDF", 0x70, Fmt34},
	{"LDL", 0x08, Fmt34},
	{"LDS", 0x6C, Fmt34},
	{"LDT", 0x74, Fmt34},
	{"LDX", 0x04, Fmt34},
	{"LPS", 0xD0, Fmt34},
	{"MUL", 0x20, Fmt34},
	{"MULF", 0x60, Fmt34},
	{"MULR", 0x98, Fmt2},
	{"NORM", 0xC8, Fmt1},
	{"OR", 0x44, Fmt34},
	{"RD", 0xD8, Fmt34},
	{"RMO", 0xAC, Fmt2},
	{"RSUB", 0x4C, Fmt34},
	{"SHIFTL", 0xA4, Fmt2},
	{"SHIFTR", 0xA8, Fmt2},
	{"SIO", 0xF0, Fmt1},
	{"SSK", 0xEC, Fmt34},
	{"STA", 0x0C, Fmt34},
	{"STB", 0x78, Fmt34},
	{"STCH", 0x54, Fmt34},
	{"STF", 0x80, Fmt34},
	{"STI", 0xD4, Fmt34},
	{"STL", 0x14, Fmt34},
	{"STS", 0x7C, Fmt34},
	{"STSW", 0xE8, Fmt34},
	{"STT", 0x84, Fmt34},
	{"STX", 0x10, Fmt34},
	{"SUB", 0x1C, Fmt34},
	{"SUBF", 0x5C, Fmt34},
	{"SUBR", 0x94, Fmt2},
	{"SVC", 0xB0, Fmt2},
	{"TD", 0xE0, Fmt34},
	{"TIO", 0xF8, Fmt1},
	{"TIX", 0x2C, Fmt34},
	{"TIXR", 0xB8, Fmt2},
	{"WD", 0xDC, Fmt34},
}

var opsByName map[string]*Operation

func init() {
	opsByName = make(map[string]*Operation, len(operations))
	for i := range operations {
		opsByName[operations[i].Name] = &operations[i]
	}
}

// GetOperation retrieves the operation matching the provided mnemonic,
// or nil if the mnemonic names no machine operation.
func GetOperation(name string) *Operation {
	return opsByName[strings.ToUpper(name)]
}

// Operations returns the full operation catalog in mnemonic order.
func Operations() []Operation {
	return operations
}
