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

func runPrint(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	args, err := checkArguments(c, 1)
	if nil != err {
		return err
	}

	fileName, err := checkFileName(args[0])
	if nil != err {
		return err
	}

	records, err := m.secret.List(fileName)
	if nil != err {
		return err
	}

	if m.json {
		return printJson(m.w, records)
	}

	total := uint64(0)
	for _, record := range records {
		size := uint64(record.Length())
		total += size
		fmt.Fprintf(m.w, "%s\n\tsize: %s\n\n", record, humanize.Bytes(size))
	}

	if m.verbose {
		fmt.Fprintf(m.e, "chunks: %d  payload: %s\n", len(records), humanize.Bytes(total))
	}
	return nil
}
