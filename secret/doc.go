// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package secret - hide, reveal and strip message chunks in container files
//
// this is the layer between the command line and the chunk codec: it
// reads and writes files, seals messages and keeps removed chunks in a
// stash, always working on complete decoded containers
package secret
