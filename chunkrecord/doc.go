// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chunkrecord - a single length framed, typed and checksummed chunk
//
// Packed layout (all integers big endian):
//
//   [4 byte length] [4 byte type] [length bytes of data] [4 byte CRC-32]
//
// the CRC covers the type and the data but not the length
package chunkrecord
