// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
	humanize "github.com/dustin/go-humanize"

	"github.com/bitmark-inc/pngsecret/chunkrecord"
	"github.com/bitmark-inc/pngsecret/container"
	"github.com/bitmark-inc/pngsecret/stash"
	"github.com/bitmark-inc/pngsecret/util"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "ascii", HasArg: getoptions.NO_ARGUMENT, Short: 'a'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "stash", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	// exactly one source
	if len(options["help"]) > 0 || 1 != len(options["file"])+len(options["stash"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--colour] [--ascii] [--count=N] (--file=FILE | --stash=DIR)", program)
	}

	verbose := len(options["verbose"]) > 0

	count := 16
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	d := dumper{
		w:       os.Stdout,
		palette: util.NewPalette(len(options["colour"]) > 0),
		ascii:   len(options["ascii"]) > 0,
		count:   count,
	}

	if len(options["file"]) > 0 {
		filename := options["file"][0]
		if verbose {
			fmt.Printf("read file: %q\n", filename)
		}

		data, err := ioutil.ReadFile(filename)
		if nil != err {
			exitwithstatus.Message("%s: read file error: %s", program, err)
		}
		c, err := container.Packed(data).Unpack()
		if nil != err {
			exitwithstatus.Message("%s: decode: %q  error: %s", program, filename, err)
		}

		for i, record := range c.Records() {
			d.record(strconv.Itoa(i), record)
		}
		if verbose {
			fmt.Printf("chunks: %d  size: %s  fingerprint: %s\n", c.Len(), humanize.Bytes(uint64(len(data))), c.Fingerprint())
		}
		return
	}

	directory := options["stash"][0]
	if verbose {
		fmt.Printf("read stash: %q\n", directory)
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "chunkdump.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	s, err := stash.OpenExisting(directory, logger.New("stash"))
	if nil != err {
		exitwithstatus.Message("%s: stash setup failed with error: %s", program, err)
	}
	defer s.Close()

	entries, err := s.List()
	if nil != err {
		exitwithstatus.Message("%s: stash list error: %s", program, err)
	}
	for _, e := range entries {
		d.record(strconv.FormatUint(e.Sequence, 10), e.Record)
	}
	if verbose {
		fmt.Printf("stashed: %d\n", len(entries))
	}
}

type dumper struct {
	w       io.Writer
	palette util.Palette
	ascii   bool
	count   int
}

// one record: header line then up to count bytes of data
func (d dumper) record(index string, record *chunkrecord.Record) {
	p := d.palette
	code := record.Type()

	typeColour := p.Type
	if code.IsCritical() {
		typeColour = p.Critical
	}

	fmt.Fprintf(d.w, "%s%s:%s %s%s%s  %s%s%s  length: %d (%s)  crc: %08x\n",
		p.Index, index, p.Reset,
		typeColour, code, p.Reset,
		p.Flags, flags(record), p.Reset,
		record.Length(), humanize.Bytes(uint64(record.Length())),
		record.Checksum(),
	)

	data := record.Data()
	if len(data) > d.count {
		data = data[:d.count]
	}
	if 0 == len(data) {
		return
	}

	if d.ascii {
		prefix := fmt.Sprintf("%s%s: %s", p.Index, index, p.Value)
		util.HexDump(d.w, prefix, p.Reset, data)
	} else {
		fmt.Fprintf(d.w, "%s%s: %s%x%s\n", p.Index, index, p.Value, data, p.Reset)
	}
}

// property letters: C/a critical or ancillary, P/p public or private,
// R/r reserved bit, S/u safe or unsafe to copy
func flags(record *chunkrecord.Record) string {
	code := record.Type()
	f := []byte("apru")
	if code.IsCritical() {
		f[0] = 'C'
	}
	if code.IsPublic() {
		f[1] = 'P'
	}
	if code.IsReservedBitValid() {
		f[2] = 'R'
	}
	if code.IsSafeToCopy() {
		f[3] = 'S'
	}
	return string(f)
}
