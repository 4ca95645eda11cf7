// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package watcher reports containers that appear or change in a
// directory
//
// a container is reported once per distinct content, reports for a
// path are suppressed while its fingerprint remains in the cache
package watcher
