// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package container - a fixed signature followed by a sequence of chunks
//
// the order of chunks is preserved exactly; lookups return the first
// match and appends go to the end
package container
