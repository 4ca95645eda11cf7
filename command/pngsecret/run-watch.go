// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/pngsecret/watcher"
)

func runWatch(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	args, err := checkArguments(c, 1)
	if nil != err {
		return err
	}

	directory := args[0]
	if "" == directory {
		return ErrRequiredDirectory
	}

	report := func(r watcher.Report) {
		if m.json {
			out := struct {
				watcher.Report
				Error string `json:"error,omitempty"`
			}{
				Report: r,
			}
			if nil != r.Err {
				out.Error = r.Err.Error()
			}
			printJson(m.w, out)
			return
		}
		if nil != r.Err {
			fmt.Fprintf(m.w, "%s: error: %s\n", r.Path, r.Err)
			return
		}
		fmt.Fprintf(m.w, "%s: %s\n", r.Path, strings.Join(r.Types, " "))
	}

	w, err := watcher.New(directory, m.config.cacheExpiry(), logger.New("watcher"), report)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "watching: %s\n", w.Directory())
	}

	if err := w.Start(); nil != err {
		return err
	}

	// wait for CTRL-C SIGINT or SIGTERM
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	m.log.Infof("received signal: %v", sig)

	w.Stop()
	return nil
}
