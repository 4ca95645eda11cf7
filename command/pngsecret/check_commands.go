// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/pngsecret/fault"
)

var (
	ErrRequiredDirectory = fault.InvalidError("directory is required")
	ErrRequiredMessage   = fault.InvalidError("message is required")
	ErrWrongArguments    = fault.InvalidError("wrong number of arguments")
)

// exactly n positional arguments
func checkArguments(c *cli.Context, n int) (cli.Args, error) {
	args := c.Args()
	if n != len(args) {
		return nil, ErrWrongArguments
	}
	return args, nil
}

// check for non-blank file name
func checkFileName(fileName string) (string, error) {
	if "" == fileName {
		return "", fault.ErrRequiredFile
	}

	return fileName, nil
}

// message must not be blank
func checkMessage(message string) (string, error) {
	if "" == message {
		return "", ErrRequiredMessage
	}

	return message, nil
}
