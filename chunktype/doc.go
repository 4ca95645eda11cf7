// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chunktype - the four letter chunk type code
//
// The case of each letter is a property bit (bit 5, value 0x20):
//
//   byte 0  upper: critical          lower: ancillary
//   byte 1  upper: public            lower: private
//   byte 2  upper: reserved (valid)  lower: reserved (invalid)
//   byte 3  upper: unsafe to copy    lower: safe to copy
package chunktype
