// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strconv"

	"github.com/safatoum/sic-xe-assembler/sic"
)

// Signed range of a format-3 pc-relative displacement.
const (
	pcDispMin = -2048
	pcDispMax = 2047
)

// Pass 2 walks the located statements against the frozen symbol table,
// resolving addressing modes and displacements and packing the resulting
// object code into records. Statements that fail to encode are reported
// and contribute no object code; the rest of the program still
// assembles.
func (a *assembler) runPass2() error {
	a.logSection("Pass 2")

	a.base = 0
	for i := range a.statements {
		s := &a.statements[i]
		if s.Operation == dirEnd {
			break
		}
		a.encodeStatement(s)
	}

	a.records.finish(a.endAddr())
	return nil
}

// The address stored in the end record: the first executable address,
// or the program start when the program contains no machine
// instructions.
func (a *assembler) endAddr() int {
	if a.firstExec >= 0 {
		return a.firstExec
	}
	return a.startAddr
}

// Encode one statement, updating engine state for directives and
// emitting object code for everything else.
func (a *assembler) encodeStatement(s *Statement) {
	switch s.Operation {
	case "":
		return

	case dirStart:
		a.records.addHeader(a.progName, a.startAddr, a.progLen)
		return

	case dirResw, dirResb:
		return

	case dirByte:
		text, kind, _ := byteConstText(s.Operand1)
		var code string
		if kind == 'C' {
			code = byteString(text)
		} else {
			code = text
		}
		a.emit(s, code)
		return

	case dirWord:
		v, err := strconv.Atoi(s.Operand1)
		if err != nil {
			a.addError(s.line, "invalid word constant '%s'", s.Operand1)
			return
		}
		a.emit(s, hexString(v, 6))
		return

	case dirBase:
		addr, ok := a.symtab.Lookup(s.Operand1)
		if !ok {
			a.addError(s.line, "unresolved symbol '%s'", s.Operand1)
			return
		}
		a.base = addr
		a.logLine(s.line, "base=%06X", a.base)
		return

	case dirNobase:
		a.base = 0
		return
	}

	op := sic.GetOperation(s.Operation)

	var code string
	var ok bool
	switch op.Format {
	case sic.Fmt1:
		code, ok = hexString(int(op.Opcode), 2), true
	case sic.Fmt2:
		code, ok = a.encodeFmt2(s, op)
	default:
		code, ok = a.encodeFmt34(s, op)
	}
	if !ok {
		return
	}

	a.emit(s, code)
}

// Append object code to the record assembler and log it.
func (a *assembler) emit(s *Statement, code string) {
	a.records.add(s.Loc, code)
	a.log("%06X  %-8s %s", s.Loc, s.Operation, code)
}

// Encode a format-2 instruction: the opcode byte followed by one nibble
// per register operand. Single-register forms encode the unused second
// nibble as zero.
func (a *assembler) encodeFmt2(s *Statement, op *sic.Operation) (string, bool) {
	r1 := sic.GetRegister(s.Operand1)
	if r1 == nil {
		a.addError(s.line, "unknown register '%s'", s.Operand1)
		return "", false
	}

	var r2 byte
	if s.Operand2 != "" {
		reg := sic.GetRegister(s.Operand2)
		if reg == nil {
			a.addError(s.line, "unknown register '%s'", s.Operand2)
			return "", false
		}
		r2 = reg.Num
	}

	return hexString(int(op.Opcode), 2) + hexString(int(r1.Num), 1) + hexString(int(r2), 1), true
}

// Encode a format-3 or format-4 instruction: resolve the addressing
// flags from the operand's leading character, then resolve the operand
// to a displacement, preferring pc-relative and falling back to
// base-relative for format 3, or using the full 20-bit address for
// format 4.
func (a *assembler) encodeFmt34(s *Statement, op *sic.Operation) (string, bool) {
	var n, i, x, b, p, e int

	operand := s.Operand1
	switch {
	case operand == "":
		n, i = 1, 1
	case operand[0] == '#':
		i = 1
		operand = operand[1:]
	case operand[0] == '@':
		n = 1
		operand = operand[1:]
	default:
		n, i = 1, 1
		if s.Operand2 != "" {
			x = 1
		}
	}
	if s.Extended {
		e = 1
	}

	var disp int
	var isSymbol bool
	if operand != "" {
		if target, found := a.symtab.Lookup(operand); found {
			isSymbol = true
			switch {
			case s.Extended:
				disp = target
			default:
				disp = target - (s.Loc + 3)
				if disp >= pcDispMin && disp <= pcDispMax {
					p = 1
				} else {
					// No range check here: an out-of-range
					// base-relative displacement truncates to 12 bits.
					disp = target - a.base
					b = 1
				}
			}
		} else {
			v, err := strconv.Atoi(operand)
			if err != nil {
				a.addError(s.line, "unresolved symbol '%s'", operand)
				return "", false
			}
			disp = v
		}
	}

	first := int(op.Opcode) | n<<1 | i
	flags := x<<3 | b<<2 | p<<1 | e

	if s.Extended {
		// A format-4 reference to a symbol is an absolute address
		// needing relocation, so it gets a modification record covering
		// the low 5 nibbles of the instruction word.
		if isSymbol {
			a.records.addMod(s.Loc + 1)
		}
		return hexString(first<<24|flags<<20|disp&0xFFFFF, 8), true
	}
	return hexString(first<<16|flags<<12|disp&0xFFF, 6), true
}
