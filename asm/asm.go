// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a two-pass SIC/XE assembler producing a
// relocatable object program in the standard textual record format.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var errParse = errors.New("parse error")

// An asmerror is used to keep track of errors encountered
// during assembly.
type asmerror struct {
	line fstring // line causing the error
	msg  string  // error message
}

// The assembler is a state object used during the assembly of an object
// program from assembly code.
type assembler struct {
	r          io.Reader    // the reader passed to Assemble
	parsed     []Statement  // tokenized statements, in source order
	statements []Statement  // located statements surviving pass 1
	symtab     *SymbolTable // labels defined during pass 1
	progName   string       // program name from the START label
	startAddr  int          // address given by the START directive
	locctr     int          // the location counter
	progLen    int          // final location counter minus start address
	firstExec  int          // address of first machine instruction (-1 if none)
	base       int          // base register value during pass 2
	records    recordAssembler
	files      []string   // processed files
	out        io.Writer  // output used for verbose output
	verbose    bool       // verbose output
	errors     []asmerror // errors encountered during assembly
}

// An ObjectProgram contains the assembled object records and other data
// associated with the assembly.
type ObjectProgram struct {
	Name      string   // program name
	Start     int      // program start address
	Length    int      // program length in bytes
	FirstExec int      // first executable address
	Records   []Record // records in emission order
	Errors    []string // errors encountered during assembly
}

// WriteTo renders the object program as text, one record per line.
func (p *ObjectProgram) WriteTo(w io.Writer) (n int64, err error) {
	for _, r := range p.Records {
		nn, err := fmt.Fprintln(w, r.Render())
		n += int64(nn)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Option type used by the Assemble function.
type Option uint

// Options for the Assemble function.
const (
	Verbose Option = 1 << iota // verbose output during assembly
)

// AssembleFile reads a file containing SIC/XE assembly code, assembles
// it, and produces an object program file.
func AssembleFile(path string, options Option, out io.Writer) error {
	inFile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer inFile.Close()

	prog, _, err := Assemble(inFile, path, out, options)
	if err != nil {
		for _, e := range prog.Errors {
			fmt.Fprintln(out, e)
		}
		return err
	}

	ext := filepath.Ext(path)
	prefix := path[:len(path)-len(ext)]
	objPath := prefix + ".obj"
	objFile, err := os.OpenFile(objPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer objFile.Close()

	_, err = prog.WriteTo(objFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Assembled '%s' to produce '%s'.\n",
		filepath.Base(path), filepath.Base(objPath))
	return nil
}

// Assemble reads SIC/XE assembly code from the provided stream and
// assembles it into an object program. Statement-level problems are
// reported as diagnostics in the returned program's Errors list; the
// rest of the program still assembles.
func Assemble(r io.Reader, filename string, out io.Writer, options Option) (*ObjectProgram, *SymbolTable, error) {
	if out == nil {
		out = os.Stdout
	}

	a := &assembler{
		r:         r,
		symtab:    newSymbolTable(),
		firstExec: -1,
		files:     []string{filename},
		out:       out,
		verbose:   (options & Verbose) != 0,
	}

	// Assembly consists of the following steps
	steps := []func(a *assembler) error{
		(*assembler).parse,    // Tokenize the assembly code into statements
		(*assembler).runPass1, // Assign locations and build the symbol table
		(*assembler).runPass2, // Encode object code and emit records
	}

	// Execute assembler steps, breaking if an error is encountered in
	// any one of them.
	var err error
	for _, step := range steps {
		err = step(a)
		if err != nil {
			break
		}
	}
	if err == nil && len(a.errors) > 0 {
		err = errParse
	}

	errors := make([]string, 0, len(a.errors))
	for _, e := range a.errors {
		filename := a.files[e.line.fileIndex]
		s := fmt.Sprintf("Error in '%s' line %d, col %d: %s", filename, e.line.row, e.line.column+1, e.msg)
		errors = append(errors, s)
	}

	prog := &ObjectProgram{
		Name:      a.progName,
		Start:     a.startAddr,
		Length:    a.progLen,
		FirstExec: a.firstExec,
		Records:   a.records.records,
		Errors:    errors,
	}

	return prog, a.symtab, err
}

// Read the assembly code and tokenize each line into a statement.
// Lines that fail to tokenize are reported and skipped; the rest of the
// source still assembles.
func (a *assembler) parse() error {
	a.logSection("Parsing assembly code")

	scanner := bufio.NewScanner(a.r)
	row := 1
	for scanner.Scan() {
		line := newFstring(0, row, scanner.Text())
		s, err := a.parseLine(line)
		if err == nil {
			a.parsed = append(a.parsed, s)
		}
		row++
	}
	return scanner.Err()
}

// Append an error message to the assembler's error state.
func (a *assembler) addError(l fstring, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.errors = append(a.errors, asmerror{l, msg})
	if a.verbose {
		filename := a.files[l.fileIndex]
		fmt.Fprintf(a.out, "Error in '%s' line %d, col %d: %s\n", filename, l.row, l.column+1, msg)
		fmt.Fprintln(a.out, l.full)
		for i := 0; i < l.column; i++ {
			fmt.Fprintf(a.out, "-")
		}
		fmt.Fprintln(a.out, "^")
	}
}

// In verbose mode, log a string to the output writer.
func (a *assembler) log(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.out, format, args...)
		fmt.Fprintf(a.out, "\n")
	}
}

// In verbose mode, log a string and its associated line
// of assembly code.
func (a *assembler) logLine(line fstring, format string, args ...any) {
	if a.verbose {
		detail := fmt.Sprintf(format, args...)
		fmt.Fprintf(a.out, "%-3d %-3d | %-20s | %s\n", line.row, line.column+1, detail, line.str)
	}
}

// In verbose mode, log a section header to the output writer.
func (a *assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}
