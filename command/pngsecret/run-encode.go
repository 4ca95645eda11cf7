// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/pngsecret/secret"
)

func runEncode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	args, err := checkArguments(c, 4)
	if nil != err {
		return err
	}

	input, err := checkFileName(args[0])
	if nil != err {
		return err
	}
	message, err := checkMessage(args[2])
	if nil != err {
		return err
	}
	output, err := checkFileName(args[3])
	if nil != err {
		return err
	}

	password := c.String("password")

	if m.verbose {
		fmt.Fprintf(m.e, "embedding into: %s  sealed: %t\n", input, "" != password)
	}

	record, err := m.secret.Embed(secret.EmbedArguments{
		Input:     input,
		Output:    output,
		ChunkType: args[1],
		Message:   message,
		Password:  password,
	})
	if nil != err {
		return err
	}

	if m.json {
		out := struct {
			Output string      `json:"output"`
			Sealed bool        `json:"sealed"`
			Chunk  interface{} `json:"chunk"`
		}{
			Output: output,
			Sealed: "" != password,
			Chunk:  record,
		}
		return printJson(m.w, out)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "wrote: %s\n", output)
	}
	return nil
}
