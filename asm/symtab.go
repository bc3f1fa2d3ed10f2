// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "sort"

// A SymbolTable maps labels to the addresses assigned to them during
// pass 1. It is populated only by pass 1 and read-only from then on.
//
// The empty label is a sentinel bound to address 0. It guards lookups:
// a statement with no label field must never resolve as if it named a
// real symbol, so Lookup refuses the empty key.
type SymbolTable struct {
	symbols map[string]int
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: map[string]int{"": 0},
	}
}

// define binds a label to an address. It reports false if the label has
// already been defined.
func (t *SymbolTable) define(label string, addr int) bool {
	if _, found := t.symbols[label]; found {
		return false
	}
	t.symbols[label] = addr
	return true
}

// Lookup returns the address bound to a label. The empty label never
// matches, even though the sentinel entry exists.
func (t *SymbolTable) Lookup(label string) (addr int, ok bool) {
	if label == "" {
		return 0, false
	}
	addr, ok = t.symbols[label]
	return addr, ok
}

// Symbols returns all defined labels in ascending name order. The
// sentinel entry is excluded.
func (t *SymbolTable) Symbols() []string {
	labels := make([]string, 0, len(t.symbols))
	for label := range t.symbols {
		if label != "" {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}
