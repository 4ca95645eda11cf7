// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runDecode(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	args, err := checkArguments(c, 2)
	if nil != err {
		return err
	}

	fileName, err := checkFileName(args[0])
	if nil != err {
		return err
	}

	message, err := m.secret.Extract(fileName, args[1], c.String("password"))
	if nil != err {
		return err
	}

	if m.json {
		out := struct {
			FileName string `json:"file_name"`
			Message  string `json:"message"`
		}{
			FileName: fileName,
			Message:  message,
		}
		return printJson(m.w, out)
	}

	fmt.Fprintf(m.w, "The content is:\n%s\n", message)
	return nil
}
