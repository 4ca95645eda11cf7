// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"io"
)

// BytesPerLine - width of a HexDump line
const BytesPerLine = 16

// HexDump - offset, hex and printable ASCII of data, one line per
// BytesPerLine bytes, each line wrapped in prefix and suffix
func HexDump(w io.Writer, prefix string, suffix string, data []byte) {
	for i := 0; i < len(data); i += BytesPerLine {
		fmt.Fprintf(w, "%s%04x  ", prefix, i)
		for j := 0; j < BytesPerLine; j += 1 {
			if BytesPerLine/2 == j {
				fmt.Fprintf(w, " ")
			}
			if i+j < len(data) {
				fmt.Fprintf(w, "%02x ", data[i+j])
			} else {
				fmt.Fprintf(w, "   ")
			}
		}
		fmt.Fprintf(w, " |")
	ascii_loop:
		for j := 0; j < BytesPerLine; j += 1 {
			if i+j >= len(data) {
				break ascii_loop
			}
			c := data[i+j]
			if c < 32 || c >= 127 {
				c = '.'
			}
			fmt.Fprintf(w, "%c", c)
		}
		fmt.Fprintf(w, "|%s\n", suffix)
	}
}
