// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runFingerprint(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	args, err := checkArguments(c, 1)
	if nil != err {
		return err
	}

	fileName, err := checkFileName(args[0])
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "checksumming file: %s\n", fileName)
	}

	fingerprint, err := m.secret.Fingerprint(fileName)
	if nil != err {
		return err
	}

	if !m.json {
		fmt.Fprintf(m.w, "%s\n", fingerprint)
		return nil
	}

	out := struct {
		FileName    string `json:"file_name"`
		Fingerprint string `json:"fingerprint"`
	}{
		FileName:    fileName,
		Fingerprint: fingerprint,
	}
	return printJson(m.w, out)
}
