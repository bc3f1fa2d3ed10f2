// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host provides an interactive shell around the SIC/XE
// assembler. Within the host it is possible to assemble source files,
// enter assembly statements interactively, inspect the symbol table
// produced by the last assembly, and display the records of the
// generated object program.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/prefixtree/v2"

	"github.com/safatoum/sic-xe-assembler/asm"
	"github.com/safatoum/sic-xe-assembler/sic"
)

// A lastCommand holds the most recently dispatched command and its
// arguments so an empty input line can repeat it.
type lastCommand struct {
	command *cmd.Command
	args    []string
}

// A Host wraps the assembler with an interactive command processor.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	lastCmd     *lastCommand
	settings    *settings
	prog        *asm.ObjectProgram
	symtab      *asm.SymbolTable
	symbols     *prefixtree.Tree[int]
}

// New creates a new host environment.
func New() *Host {
	return &Host{
		settings: newSettings(),
		symbols:  prefixtree.New[int](),
	}
}

// AssembleFile runs the assembler on a source file and writes the
// object program next to it.
func (h *Host) AssembleFile(filename string) error {
	return asm.AssembleFile(filename, 0, os.Stdout)
}

// RunCommands accepts host commands from a reader and outputs the
// results to a writer. If the commands are interactive, a prompt is
// displayed while the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var command *cmd.Command
		var args []string
		if line != "" {
			command, args, err = cmds.LookupCommand(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			command, args = h.lastCmd.command, h.lastCmd.args
		}

		if command == nil {
			continue
		}
		h.lastCmd = &lastCommand{command: command, args: args}

		handler := command.Data.(func(*Host, *cmd.Command, []string) error)
		err = handler(h, command, args)
		if err != nil {
			break
		}
	}
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
		h.flush()
	}
}

// Store the results of an assembly and rebuild the symbol prefix tree
// used by the symbol commands.
func (h *Host) storeAssembly(prog *asm.ObjectProgram, symtab *asm.SymbolTable) {
	h.prog = prog
	h.symtab = symtab
	h.symbols = prefixtree.New[int]()
	for _, label := range symtab.Symbols() {
		addr, _ := symtab.Lookup(label)
		h.symbols.Add(strings.ToLower(label), addr)
	}
}

func (h *Host) assembleOptions() asm.Option {
	var options asm.Option
	if h.settings.Verbose {
		options |= asm.Verbose
	}
	return options
}

func (h *Host) cmdAssembleFile(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	filename := args[0]
	if filepath.Ext(filename) == "" {
		filename += h.settings.SourceExt
	}

	options := h.assembleOptions()
	if len(args) >= 2 && strings.ToLower(args[1]) == "true" {
		options |= asm.Verbose
	}

	file, err := os.Open(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	prog, symtab, err := asm.Assemble(file, filename, h.output, options)
	if err != nil {
		h.printf("Failed to assemble '%s'.\n", filepath.Base(filename))
		for _, e := range prog.Errors {
			h.println(e)
		}
		return nil
	}

	h.storeAssembly(prog, symtab)

	ext := filepath.Ext(filename)
	objFilename := filename[:len(filename)-len(ext)] + ".obj"
	objFile, err := os.OpenFile(objFilename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		h.printf("Failed to create '%s': %v\n", filepath.Base(objFilename), err)
		return nil
	}
	defer objFile.Close()

	_, err = prog.WriteTo(objFile)
	if err != nil {
		h.printf("Failed to write '%s': %v\n", filepath.Base(objFilename), err)
		return nil
	}

	h.printf("Assembled '%s' to '%s'.\n", filepath.Base(filename), filepath.Base(objFilename))
	return nil
}

func (h *Host) cmdAssembleInteractive(c *cmd.Command, args []string) error {
	h.println("Enter assembly statements. Type END to assemble.")

	var lines []string
	for {
		h.printf("] ")
		h.flush()

		line, err := h.getLine()
		if err != nil {
			return nil
		}
		lines = append(lines, line)

		fields := strings.Fields(strings.ToUpper(line))
		if len(fields) > 0 && (fields[0] == "END" || (len(fields) > 1 && fields[1] == "END")) {
			break
		}
	}

	source := strings.Join(lines, "\n")
	prog, symtab, err := asm.Assemble(strings.NewReader(source), "interactive", h.output, h.assembleOptions())
	if err != nil {
		h.println("Assembly failed.")
		for _, e := range prog.Errors {
			h.println(e)
		}
		return nil
	}

	h.storeAssembly(prog, symtab)
	prog.WriteTo(h.output)
	h.flush()
	return nil
}

func (h *Host) cmdSymbolList(c *cmd.Command, args []string) error {
	if h.symtab == nil {
		h.println("Nothing has been assembled.")
		return nil
	}

	h.println("Symbol  Address")
	h.println("------- -------")
	for _, label := range h.symtab.Symbols() {
		addr, _ := h.symtab.Lookup(label)
		h.printf("%-7s  %06X\n", label, addr)
	}
	return nil
}

func (h *Host) cmdSymbolFind(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}
	if h.symtab == nil {
		h.println("Nothing has been assembled.")
		return nil
	}

	addr, err := h.symbols.FindValue(strings.ToLower(args[0]))
	switch err {
	case prefixtree.ErrPrefixNotFound:
		h.printf("Symbol '%s' not found.\n", args[0])
	case prefixtree.ErrPrefixAmbiguous:
		h.printf("Symbol '%s' is ambiguous.\n", args[0])
	default:
		h.printf("%06X\n", addr)
	}
	return nil
}

func (h *Host) cmdRecordList(c *cmd.Command, args []string) error {
	if h.prog == nil {
		h.println("Nothing has been assembled.")
		return nil
	}

	h.prog.WriteTo(h.output)
	h.flush()
	return nil
}

func (h *Host) cmdOperations(c *cmd.Command, args []string) error {
	h.println("Mnemonic  Opcode  Format")
	h.println("--------  ------  ------")
	for _, op := range sic.Operations() {
		h.printf("%-8s  %02X      %s\n", op.Name, op.Opcode, op.Format)
	}
	return nil
}

func (h *Host) cmdRegisters(c *cmd.Command, args []string) error {
	h.println("Register  Number")
	h.println("--------  ------")
	for _, r := range sic.Registers() {
		h.printf("%-8s  %d\n", r.Name, r.Num)
	}
	return nil
}

func (h *Host) cmdExecute(c *cmd.Command, args []string) error {
	if len(args) < 1 {
		h.displayUsage(c)
		return nil
	}

	file, err := os.Open(args[0])
	if err != nil {
		h.printf("Failed to open '%s': %v\n", args[0], err)
		return nil
	}
	defer file.Close()

	input, interactive := h.input, h.interactive
	h.RunCommands(file, h.output, false)
	h.input, h.interactive = input, interactive
	return nil
}

func (h *Host) cmdSet(c *cmd.Command, args []string) error {
	switch len(args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 1:
		h.displayUsage(c)

	default:
		key, value := strings.ToLower(args[0]), strings.Join(args[1:], " ")
		err := h.settings.Set(key, value)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.printf("Variable %s set to %s.\n", key, value)
	}
	return nil
}

func (h *Host) cmdQuit(c *cmd.Command, args []string) error {
	return errors.New("exiting program")
}

func (h *Host) cmdHelp(c *cmd.Command, args []string) error {
	switch {
	case len(args) == 0:
		h.displayCommands(cmds)
	default:
		node, _, err := cmds.Lookup(strings.Join(args, " "))
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		switch n := node.(type) {
		case *cmd.Tree:
			h.displayCommands(n)
		case *cmd.Command:
			if n.Usage != "" {
				h.printf("Syntax: %s\n\n", n.Usage)
			}
			switch {
			case n.Description != "":
				h.printf("Description:\n   %s\n\n", n.Description)
			case n.Brief != "":
				h.printf("Description:\n   %s.\n\n", n.Brief)
			}
		}
	}
	return nil
}

func (h *Host) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		h.printf("Syntax: %s\n", c.Usage)
	}
}

func (h *Host) displayCommands(commands *cmd.Tree) {
	h.printf("%s commands:\n", commands.Name)
	for _, c := range commands.Commands() {
		if c.Brief != "" {
			h.printf("    %-15s  %s\n", c.Name, c.Brief)
		}
	}
	for _, s := range commands.Subtrees() {
		if s.Brief != "" {
			h.printf("    %-15s  %s\n", s.Name, s.Brief)
		}
	}
	h.println()
}
