// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

// Capacity of a single text record, in object-code bytes.
const textRecordBytes = 30

// A new text record starts whenever the next statement lies this far or
// farther past the last emitted byte.
const textRecordGap = 0x1000

// A Record is one line of the object program.
type Record interface {
	// Render returns the record's fixed-width text line.
	Render() string
}

// A HeaderRecord names the program and gives its start address and
// length.
type HeaderRecord struct {
	Name   string
	Start  int
	Length int
}

// Render returns the header record's text line.
func (r HeaderRecord) Render() string {
	return fmt.Sprintf("H%-6s%s%s", r.Name, hexString(r.Start, 6), hexString(r.Length, 6))
}

// A TextRecord holds up to 30 bytes of contiguous object code.
type TextRecord struct {
	Start int
	Code  string // object code as hex digits, two per byte
}

// Render returns the text record's text line.
func (r TextRecord) Render() string {
	return "T" + hexString(r.Start, 6) + hexString(len(r.Code)/2, 2) + r.Code
}

// A ModRecord asks the loader to patch an address field after
// relocation.
type ModRecord struct {
	Addr      int
	HalfBytes int
}

// Render returns the modification record's text line.
func (r ModRecord) Render() string {
	return "M" + hexString(r.Addr, 6) + hexString(r.HalfBytes, 2)
}

// An EndRecord closes the object program and names its first executable
// address.
type EndRecord struct {
	FirstExec int
}

// Render returns the end record's text line.
func (r EndRecord) Render() string {
	return "E" + hexString(r.FirstExec, 6)
}

// The recordAssembler accumulates contiguous object code into bounded
// text records and collects the other record kinds in emission order:
// one header, the text records, all modification records, one end
// record.
type recordAssembler struct {
	records  []Record
	mods     []ModRecord
	open     TextRecord // text record currently being filled
	openLive bool
	endAddr  int // address one past the last emitted byte
}

// addHeader appends the header record.
func (w *recordAssembler) addHeader(name string, start, length int) {
	w.records = append(w.records, HeaderRecord{Name: name, Start: start, Length: length})
}

// add appends object code at the given location, closing the open text
// record first when the code would overflow it or when the location is
// too far past the last emitted byte.
func (w *recordAssembler) add(loc int, code string) {
	if w.openLive && loc >= w.endAddr-1+textRecordGap {
		w.flush()
	}
	if !w.tryAdd(code) {
		w.flush()
		// An oversized byte constant spans as many records as it needs.
		for len(code) > textRecordBytes*2 {
			w.open = TextRecord{Start: loc, Code: code[:textRecordBytes*2]}
			w.openLive = true
			w.flush()
			loc += textRecordBytes
			code = code[textRecordBytes*2:]
		}
		w.tryAdd(code)
	}
	if !w.openLive {
		w.open.Start = loc
		w.openLive = true
	}
	w.endAddr = loc + len(code)/2
}

// tryAdd appends code to the open text record, reporting false when the
// record has no room for it.
func (w *recordAssembler) tryAdd(code string) bool {
	if len(w.open.Code)+len(code) > textRecordBytes*2 {
		return false
	}
	w.open.Code += code
	return true
}

// flush closes the open text record, if it holds any code.
func (w *recordAssembler) flush() {
	if w.open.Code != "" {
		w.records = append(w.records, w.open)
	}
	w.open = TextRecord{}
	w.openLive = false
}

// addMod queues a modification record covering 5 half-bytes at the
// given address.
func (w *recordAssembler) addMod(addr int) {
	w.mods = append(w.mods, ModRecord{Addr: addr, HalfBytes: 5})
}

// finish flushes the open text record, then emits the queued
// modification records and the end record.
func (w *recordAssembler) finish(firstExec int) {
	w.flush()
	for _, m := range w.mods {
		w.records = append(w.records, m)
	}
	w.records = append(w.records, EndRecord{FirstExec: firstExec})
}
