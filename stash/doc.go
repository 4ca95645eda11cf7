// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stash - keep removed chunks so they can be restored later
//
//  ***** Key Layout *****
//
//  Key                                   Value
//  0x00 "VERSION"                        4 byte big endian database version
//  0x00 "SEQUENCE"                       8 byte big endian last sequence used
//  'C' [4 byte type] [8 byte sequence]   packed chunk record
//
// entries for one type sort by sequence so the newest is last
package stash
