// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strconv"
	"strings"

	"github.com/safatoum/sic-xe-assembler/sic"
)

// Pass 1 walks the statement stream in source order, assigning each
// non-comment statement the current value of the location counter and
// binding labels to those locations. A statement whose label is already
// defined or whose mnemonic is unknown is skipped in its entirety: it
// neither advances the location counter nor survives into pass 2.
func (a *assembler) runPass1() error {
	a.logSection("Pass 1")

	for _, s := range a.parsed {
		if s.Comment {
			continue
		}

		// The start directive resets the location counter before taking
		// its own location from it.
		if s.Operation == dirStart {
			start, err := strconv.Atoi(s.Operand1)
			if err != nil {
				a.addError(s.line, "invalid start address '%s'", s.Operand1)
				continue
			}
			a.locctr = start
			a.startAddr = start
			a.progName = s.Label
		}

		size, ok := a.statementSize(&s)
		if !ok {
			continue
		}

		s.Loc = a.locctr

		if s.Label != "" && !a.symtab.define(s.Label, s.Loc) {
			a.addError(s.line, "duplicate symbol '%s'", s.Label)
			continue
		}

		if s.Operation != "" && !s.isDirective() && a.firstExec < 0 {
			a.firstExec = s.Loc
		}

		a.log("%06X  %-6s %-8s %s,%s", s.Loc, s.Label, s.Operation, s.Operand1, s.Operand2)

		a.statements = append(a.statements, s)
		a.locctr += size
	}

	a.progLen = a.locctr - a.startAddr
	a.log("program length = %06X", a.progLen)
	return nil
}

// Compute the size in bytes a statement contributes to the location
// counter. Reports false if the statement cannot be sized and must be
// skipped.
func (a *assembler) statementSize(s *Statement) (size int, ok bool) {
	switch s.Operation {
	// A label-only statement has an empty operation field and occupies
	// no space.
	case "", dirStart, dirEnd, dirBase, dirNobase:
		return 0, true

	case dirWord:
		return 3, true

	case dirResw:
		n, err := strconv.Atoi(s.Operand1)
		if err != nil {
			a.addError(s.line, "invalid word count '%s'", s.Operand1)
			return 0, false
		}
		return 3 * n, true

	case dirResb:
		n, err := strconv.Atoi(s.Operand1)
		if err != nil {
			a.addError(s.line, "invalid byte count '%s'", s.Operand1)
			return 0, false
		}
		return n, true

	case dirByte:
		return a.byteConstSize(s)

	default:
		op := sic.GetOperation(s.Operation)
		if op == nil {
			a.addError(s.line, "unknown operation '%s'", s.Operation)
			return 0, false
		}
		return op.Format.Size(s.Extended), true
	}
}

// Compute the size of a BYTE constant. The operand is a quoted literal
// of the form C'...' (one byte per character) or X'...' (one byte per
// hex digit pair).
func (a *assembler) byteConstSize(s *Statement) (size int, ok bool) {
	text, kind, ok := byteConstText(s.Operand1)
	if !ok {
		a.addError(s.line, "invalid byte constant '%s'", s.Operand1)
		return 0, false
	}
	switch kind {
	case 'C':
		return len(text), true
	default: // 'X'
		if len(text)%2 != 0 || strings.ContainsFunc(text, func(r rune) bool { return !hexadecimal(byte(r)) }) {
			a.addError(s.line, "invalid hex constant '%s'", s.Operand1)
			return 0, false
		}
		return len(text) / 2, true
	}
}

// Split a byte-constant operand into its quoted text and its kind tag,
// 'C' for character constants and 'X' for hex constants.
func byteConstText(operand string) (text string, kind byte, ok bool) {
	if len(operand) < 3 || operand[1] != '\'' || operand[len(operand)-1] != '\'' {
		return "", 0, false
	}
	switch operand[0] {
	case 'C', 'c':
		kind = 'C'
	case 'X', 'x':
		kind = 'X'
	default:
		return "", 0, false
	}
	return operand[2 : len(operand)-1], kind, true
}
