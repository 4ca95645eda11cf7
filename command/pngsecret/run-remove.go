// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runRemove(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	args, err := checkArguments(c, 3)
	if nil != err {
		return err
	}

	input, err := checkFileName(args[0])
	if nil != err {
		return err
	}
	output, err := checkFileName(args[2])
	if nil != err {
		return err
	}

	keep := !c.Bool("no-stash")

	record, err := m.secret.Strip(input, args[1], output, keep)
	if nil != err {
		return err
	}

	if m.json {
		out := struct {
			Output  string      `json:"output"`
			Stashed bool        `json:"stashed"`
			Chunk   interface{} `json:"chunk"`
		}{
			Output:  output,
			Stashed: keep,
			Chunk:   record,
		}
		return printJson(m.w, out)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "removed:\n%s\n", record)
	}
	return nil
}
