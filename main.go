// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/beevik/term"

	"github.com/safatoum/sic-xe-assembler/host"
)

var (
	assemble string
)

func init() {
	flag.StringVar(&assemble, "a", "", "assemble file")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: sicasm [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	h := host.New()

	// Do command-line assemble if requested.
	if assemble != "" {
		err := h.AssembleFile(assemble)
		if err != nil {
			fmt.Printf("Failed to assemble file '%s'.\n", assemble)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Run commands contained in command-line files.
	args := flag.Args()
	if len(args) > 0 {
		for _, filename := range args {
			file, err := os.Open(filename)
			if err != nil {
				exitOnError(err)
			}
			h.RunCommands(file, os.Stdout, false)
			file.Close()
		}
	}

	// Exit on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(c)

	// Run commands from standard input, prompting only when attached
	// to a terminal.
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	h.RunCommands(os.Stdin, os.Stdout, interactive)
}

func handleInterrupt(c chan os.Signal) {
	<-c
	fmt.Println()
	os.Exit(0)
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
