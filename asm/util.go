// Copyright 2026 Safa Toum. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "fmt"

var hex = "0123456789ABCDEF"

// Render a value as a fixed number of uppercase hex digits, keeping only
// the low 4*digits bits of the value.
func hexString(value, digits int) string {
	mask := (1 << uint(4*digits)) - 1
	return fmt.Sprintf("%0*X", digits, value&mask)
}

// Render each byte of a string as two uppercase hex digits.
func byteString(s string) string {
	b := make([]byte, len(s)*2)
	for i, j := 0, 0; i < len(s); i, j = i+1, j+2 {
		b[j+0] = hex[s[i]>>4]
		b[j+1] = hex[s[i]&0x0f]
	}
	return string(b)
}
