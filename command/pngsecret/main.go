// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/pngsecret/fault"
	"github.com/bitmark-inc/pngsecret/secret"
	"github.com/bitmark-inc/pngsecret/stash"
	"github.com/bitmark-inc/pngsecret/util"
)

type metadata struct {
	file    string
	config  *Configuration
	secret  *secret.Secret
	stash   *stash.Stash
	log     *logger.L
	json    bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// commands that need the stash database open
var stashCommands = map[string]bool{
	"remove":  true,
	"restore": true,
	"stashed": true,
}

func main() {

	app := cli.NewApp()
	app.Name = "pngsecret"
	app.Usage = "hide messages in PNG chunks"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " configuration `FILE` [$XDG_CONFIG_HOME/pngsecret/pngsecret.conf]",
		},
		cli.BoolFlag{
			Name:  "json, j",
			Usage: " output JSON",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "encode",
			Usage:     "append a message chunk to a PNG file",
			ArgsUsage: "FILE TYPE MESSAGE OUTPUT",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "password, p",
					Value: "",
					Usage: " seal the message with `PASSWORD`",
				},
			},
			Action: runEncode,
		},
		{
			Name:      "decode",
			Usage:     "show the message in the first chunk of a type",
			ArgsUsage: "FILE TYPE",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "password, p",
					Value: "",
					Usage: " open a sealed message with `PASSWORD`",
				},
			},
			Action: runDecode,
		},
		{
			Name:      "remove",
			Usage:     "remove the first chunk of a type, keeping it in the stash",
			ArgsUsage: "FILE TYPE OUTPUT",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "no-stash",
					Usage: " discard the removed chunk",
				},
			},
			Action: runRemove,
		},
		{
			Name:      "print",
			Usage:     "list all chunks of a PNG file",
			ArgsUsage: "FILE",
			Action:    runPrint,
		},
		{
			Name:      "restore",
			Usage:     "append the newest stashed chunk of a type",
			ArgsUsage: "FILE TYPE OUTPUT",
			Action:    runRestore,
		},
		{
			Name:   "stashed",
			Usage:  "list the chunks held in the stash",
			Action: runStashed,
		},
		{
			Name:      "fingerprint",
			Usage:     "fingerprint of a PNG file",
			ArgsUsage: "FILE",
			Action:    runFingerprint,
		},
		{
			Name:      "watch",
			Usage:     "report PNG files as they change in a directory",
			ArgsUsage: "DIRECTORY",
			Action:    runWatch,
		},
		{
			Name:  "version",
			Usage: "display pngsecret version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		switch command {
		case "", "version", "help", "h":
			return nil
		}

		directory := util.ConfigDirectory(app.Name)
		file := configurationFile(c.GlobalString("config"), directory)

		if verbose {
			if "" == file {
				fmt.Fprintf(e, "no config file, defaults relative to: %s\n", directory)
			} else {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}
		}

		config, err := getConfiguration(file, directory)
		if nil != err {
			return err
		}

		if err := logger.Initialise(config.Logging); nil != err {
			return err
		}
		if err := fault.Initialise(); nil != err {
			return err
		}

		log := logger.New("main")
		log.Infof("version: %s  command: %s", version, command)

		m := &metadata{
			file:    file,
			config:  config,
			log:     log,
			json:    c.GlobalBool("json"),
			verbose: verbose,
			e:       e,
			w:       w,
		}

		// an untyped nil so that the stash is absent rather than closed
		var stasher secret.Stasher
		if stashCommands[command] {
			name := config.stashDatabase()
			if verbose {
				fmt.Fprintf(e, "opening stash: %s\n", name)
			}
			st, err := stash.Open(name, logger.New("stash"))
			if nil != err {
				return err
			}
			m.stash = st
			stasher = st
		}

		m.secret = secret.New(secret.OSFilesystem{}, stasher, config.DefaultChunkType, logger.New("secret"))

		c.App.Metadata["config"] = m
		return nil
	}

	// release resources
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		if nil != m.stash {
			m.stash.Close()
		}
		m.log.Info("finished")
		fault.Finalise()
		logger.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
