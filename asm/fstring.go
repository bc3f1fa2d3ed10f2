// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// An fstring is a string that keeps track of its position within the
// file from which it was read.
type fstring struct {
	fileIndex int    // index of file in the assembly
	row       int    // 1-based line number of substring
	column    int    // 0-based column of start of substring
	str       string // the actual substring of interest
	full      string // the full line as originally read from the file
}

func newFstring(fileIndex, row int, str string) fstring {
	return fstring{fileIndex, row, 0, str, str}
}

func (l *fstring) String() string {
	return l.str
}

func (l *fstring) advanceColumn(n int) int {
	c := l.column
	for i := 0; i < n; i++ {
		if l.str[i] == '\t' {
			c += 8 - (c % 8)
		} else {
			c++
		}
	}
	return c
}

func (l fstring) consume(n int) fstring {
	col := l.advanceColumn(n)
	return fstring{l.fileIndex, l.row, col, l.str[n:], l.full}
}

func (l fstring) trunc(n int) fstring {
	return fstring{l.fileIndex, l.row, l.column, l.str[:n], l.full}
}

func (l *fstring) isEmpty() bool {
	return len(l.str) == 0
}

func (l *fstring) startsWith(fn func(c byte) bool) bool {
	return len(l.str) > 0 && fn(l.str[0])
}

func (l *fstring) startsWithChar(c byte) bool {
	return len(l.str) > 0 && l.str[0] == c
}

func (l fstring) consumeWhitespace() fstring {
	return l.consume(l.scanWhile(whitespace))
}

func (l *fstring) scanWhile(fn func(c byte) bool) int {
	i := 0
	for ; i < len(l.str) && fn(l.str[i]); i++ {
	}
	return i
}

func (l *fstring) scanUntil(fn func(c byte) bool) int {
	i := 0
	for ; i < len(l.str) && !fn(l.str[i]); i++ {
	}
	return i
}

func (l *fstring) consumeWhile(fn func(c byte) bool) (consumed, remain fstring) {
	i := l.scanWhile(fn)
	consumed, remain = l.trunc(i), l.consume(i)
	return
}

func (l *fstring) consumeUntil(fn func(c byte) bool) (consumed, remain fstring) {
	i := l.scanUntil(fn)
	consumed, remain = l.trunc(i), l.consume(i)
	return
}

// Consume an operand field. A quoted byte literal like C'EOF' may contain
// whitespace and commas, so a quote suspends the usual field delimiters.
func (l *fstring) consumeOperand() (consumed, remain fstring) {
	var quoted bool
	i := 0
	for ; i < len(l.str); i++ {
		c := l.str[i]
		if quoted {
			if c == '\'' {
				quoted = false
			}
			continue
		}
		switch {
		case c == '\'':
			quoted = true
		case whitespace(c) || c == ',':
			return l.trunc(i), l.consume(i)
		}
	}
	consumed, remain = l.trunc(i), l.consume(i)
	return
}

//
// character helper functions
//

func whitespace(c byte) bool {
	return c == ' ' || c == '\t'
}

func wordChar(c byte) bool {
	return c != ' ' && c != '\t'
}

func alpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func decimal(c byte) bool {
	return (c >= '0' && c <= '9')
}

func hexadecimal(c byte) bool {
	return decimal(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func labelStartChar(c byte) bool {
	return alpha(c) || c == '_'
}

func labelChar(c byte) bool {
	return alpha(c) || decimal(c) || c == '_'
}
