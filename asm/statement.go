// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// A Statement is one tokenized line of SIC/XE assembly source. Pass 1
// assigns its location exactly once; pass 2 reads it without mutation.
type Statement struct {
	Loc       int    // address assigned by pass 1 (-1 until assigned)
	Label     string // optional label field
	Operation string // mnemonic or assembler directive
	Operand1  string // first operand field, if any
	Operand2  string // second operand field, if any
	Extended  bool   // format-4 encoding requested with '+'
	Comment   bool   // full-line comment

	line fstring // source line, used for diagnostics
}

// Assembler directives carry no opcode; they steer the location counter
// and the record assembler instead.
const (
	dirStart  = "START"
	dirEnd    = "END"
	dirWord   = "WORD"
	dirResw   = "RESW"
	dirResb   = "RESB"
	dirByte   = "BYTE"
	dirBase   = "BASE"
	dirNobase = "NOBASE"
)

var directives = map[string]bool{
	dirStart:  true,
	dirEnd:    true,
	dirWord:   true,
	dirResw:   true,
	dirResb:   true,
	dirByte:   true,
	dirBase:   true,
	dirNobase: true,
}

// isDirective reports whether the statement's operation is an assembler
// directive rather than a machine operation.
func (s *Statement) isDirective() bool {
	return directives[s.Operation]
}

// Parse a single line of assembly code into a statement. Empty lines
// yield a comment statement, as do lines starting with '.'.
func (a *assembler) parseLine(line fstring) (Statement, error) {
	s := Statement{Loc: -1, line: line}

	if line.isEmpty() || line.startsWithChar('.') {
		s.Comment = true
		return s, nil
	}

	// A label may appear only at the start of the line.
	if !line.startsWith(whitespace) {
		label, remain, err := a.parseLabel(line)
		if err != nil {
			return s, err
		}
		s.Label = label.str
		line = remain
	}

	line = line.consumeWhitespace()
	if line.isEmpty() {
		// A line holding only a label still binds the label to the
		// current location. With no label either, it is blank.
		s.Comment = s.Label == ""
		return s, nil
	}

	// A '+' prefix on the mnemonic requests format-4 encoding.
	if line.startsWithChar('+') {
		s.Extended = true
		line = line.consume(1)
	}

	op, line := line.consumeWhile(wordChar)
	if op.isEmpty() {
		a.addError(line, "missing operation mnemonic")
		return s, errParse
	}
	s.Operation = strings.ToUpper(op.str)

	line = line.consumeWhitespace()
	if line.isEmpty() {
		return s, nil
	}

	operand, line := line.consumeOperand()
	s.Operand1 = operand.str

	line = line.consumeWhitespace()
	if line.startsWithChar(',') {
		line = line.consume(1).consumeWhitespace()
		operand, line = line.consumeOperand()
		if operand.isEmpty() {
			a.addError(line, "missing operand after ','")
			return s, errParse
		}
		s.Operand2 = operand.str
	}

	return s, nil
}

// Parse a label string at the beginning of a line of assembly code.
func (a *assembler) parseLabel(line fstring) (label fstring, remain fstring, err error) {
	if !line.startsWith(labelStartChar) {
		s, _ := line.consumeUntil(whitespace)
		a.addError(line, "invalid label '%s'", s.str)
		return fstring{}, line, errParse
	}

	label, remain = line.consumeWhile(labelChar)
	if !remain.isEmpty() && !remain.startsWith(whitespace) {
		s, _ := remain.consumeUntil(whitespace)
		a.addError(remain, "invalid label '%s%s'", label.str, s.str)
		return fstring{}, remain, errParse
	}
	return label, remain, nil
}
