// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "sicasm"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Host).cmdHelp,
	})

	// Assemble commands
	as := root.AddSubtree(cmd.TreeDescriptor{Name: "assemble", Brief: "Assemble commands"})
	as.AddCommand(cmd.CommandDescriptor{
		Name:  "file",
		Brief: "Assemble a file from disk and save the object program to disk",
		Description: "Run the assembler on the specified file, producing an" +
			" object program file if successful. If you want verbose output," +
			" specify true as a second parameter.",
		Usage: "assemble file <filename> [<verbose>]",
		Data:  (*Host).cmdAssembleFile,
	})
	as.AddCommand(cmd.CommandDescriptor{
		Name:  "interactive",
		Brief: "Start interactive assembly mode",
		Description: "Start interactive assembler mode. A new prompt will" +
			" appear, allowing you to enter assembly language statements" +
			" interactively. Once you type END, the statements will be" +
			" assembled and the object program displayed.",
		Usage: "assemble interactive",
		Data:  (*Host).cmdAssembleInteractive,
	})

	// Symbol commands
	sy := root.AddSubtree(cmd.TreeDescriptor{Name: "symbol", Brief: "Symbol table commands"})
	sy.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List assembled symbols",
		Description: "List every symbol defined by the last assembly and its address.",
		Usage:       "symbol list",
		Data:        (*Host).cmdSymbolList,
	})
	sy.AddCommand(cmd.CommandDescriptor{
		Name:  "find",
		Brief: "Find a symbol by name prefix",
		Description: "Find a symbol defined by the last assembly. The name" +
			" may be abbreviated to any unambiguous prefix.",
		Usage: "symbol find <name>",
		Data:  (*Host).cmdSymbolFind,
	})

	// Record commands
	re := root.AddSubtree(cmd.TreeDescriptor{Name: "record", Brief: "Object record commands"})
	re.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List object program records",
		Description: "Display the records of the last assembled object program.",
		Usage:       "record list",
		Data:        (*Host).cmdRecordList,
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:  "execute",
		Brief: "Execute a command script file",
		Description: "Load a script file from disk and execute the" +
			" commands it contains.",
		Usage: "execute <filename>",
		Data:  (*Host).cmdExecute,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "operations",
		Brief: "Display the instruction set",
		Description: "Display every machine operation mnemonic with its" +
			" opcode and instruction format.",
		Usage: "operations",
		Data:  (*Host).cmdOperations,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "registers",
		Brief:       "Display the register set",
		Description: "Display every register mnemonic with its numeric identifier.",
		Usage:       "registers",
		Data:        (*Host).cmdRegisters,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		Usage: "set [<var> <value>]",
		Data:  (*Host).cmdSet,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        (*Host).cmdQuit,
	})

	// Add command shortcuts.
	root.AddShortcut("a", "assemble file")
	root.AddShortcut("ai", "assemble interactive")
	root.AddShortcut("sl", "symbol list")
	root.AddShortcut("sf", "symbol find")
	root.AddShortcut("r", "record list")
	root.AddShortcut("x", "execute")
	root.AddShortcut("?", "help")

	cmds = root
}
