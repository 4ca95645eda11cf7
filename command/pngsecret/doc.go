// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// pngsecret - hide messages in the chunks of PNG files
//
// encode, decode and remove message chunks; removed chunks are kept
// in a local stash so they can be restored later
//
// configuration is an optional Lua file (see pngsecret.conf.sample)
// read from --config or $XDG_CONFIG_HOME/pngsecret/pngsecret.conf
package main
