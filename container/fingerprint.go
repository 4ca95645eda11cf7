// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package container

import (
	"fmt"

	"golang.org/x/crypto/sha3"
)

// version byte prefix for fingerprints
const fingerprintVersion byte = 0x01

// Fingerprint - versioned SHA3-512 of the packed container as hex
func (packed Packed) Fingerprint() string {
	return fmt.Sprintf("%02x%x", fingerprintVersion, sha3.Sum512(packed))
}

// Fingerprint - fingerprint of the canonical packed form
func (container *Container) Fingerprint() string {
	return container.Pack().Fingerprint()
}
