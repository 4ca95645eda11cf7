// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// ANSI colour codes
const (
	CoReset = "\x1b[0m"

	CoRed     = "\x1b[1;31m"
	CoGreen   = "\x1b[1;32m"
	CoYellow  = "\x1b[1;33m"
	CoBlue    = "\x1b[1;34m"
	CoMagenta = "\x1b[1;35m"
	CoCyan    = "\x1b[1;36m"
)

// Palette - colours for console output, all blank when disabled
type Palette struct {
	Index    string
	Type     string
	Flags    string
	Value    string
	Critical string
	Reset    string
}

// NewPalette - a coloured palette or a blank one
func NewPalette(enabled bool) Palette {
	if !enabled {
		return Palette{}
	}
	return Palette{
		Index:    CoMagenta,
		Type:     CoCyan,
		Flags:    CoYellow,
		Value:    CoBlue,
		Critical: CoRed,
		Reset:    CoReset,
	}
}
