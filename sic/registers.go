// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sic

import "strings"

// A Register describes a SIC/XE register and its numeric identifier as
// encoded in format-2 instructions.
type Register struct {
	Name string
	Num  byte
}

// All addressable SIC/XE registers
var registers = []Register{
	{"A", 0},
	{"X", 1},
	{"L", 2},
	{"B", 3},
	{"S", 4},
	{"T", 5},
	{"F", 6},
	{"PC", 8},
	{"SW", 9},
}

var regsByName map[string]*Register

func init() {
	regsByName = make(map[string]*Register, len(registers))
	for i := range registers {
		regsByName[registers[i].Name] = &registers[i]
	}
}

// GetRegister retrieves the register matching the provided mnemonic, or
// nil if the mnemonic names no register.
func GetRegister(name string) *Register {
	return regsByName[strings.ToUpper(name)]
}

// Registers returns the full register catalog.
func Registers() []Register {
	return registers
}
