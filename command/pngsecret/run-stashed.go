// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/urfave/cli"
)

func runStashed(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if _, err := checkArguments(c, 0); nil != err {
		return err
	}

	entries, err := m.stash.List()
	if nil != err {
		return err
	}

	if m.json {
		return printJson(m.w, entries)
	}

	for _, e := range entries {
		fmt.Fprintf(m.w, "%d: %s  %s\n", e.Sequence, e.Record.Type(), humanize.Bytes(uint64(e.Record.Length())))
	}
	if m.verbose {
		fmt.Fprintf(m.e, "stashed: %d\n", len(entries))
	}
	return nil
}
