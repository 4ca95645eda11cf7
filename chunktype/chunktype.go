// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chunktype

import (
	"github.com/bitmark-inc/pngsecret/fault"
)

// Size - number of bytes in a chunk type
const Size = 4

// the property bit in each byte
const propertyBit = 0x20

// offsets of the property bytes
const (
	criticalOffset = iota
	publicOffset
	reservedOffset
	safeToCopyOffset
)

// Code - a chunk type, always four ASCII letters
type Code [Size]byte

// FromBytes - create a code from raw bytes
//
// only checks that each byte is a letter, a code that fails IsValid
// can still be constructed
func FromBytes(b [Size]byte) (Code, error) {
	for _, c := range b {
		if !isLetter(c) {
			return Code{}, fault.ErrNotAllLetters
		}
	}
	return Code(b), nil
}

// FromString - create a code from four letters of text
func FromString(s string) (Code, error) {
	if Size != len(s) {
		return Code{}, fault.ErrWrongTypeLength
	}
	b := [Size]byte{}
	copy(b[:], s)
	return FromBytes(b)
}

// Bytes - the raw bytes of the code
func (code Code) Bytes() [Size]byte {
	return code
}

// IsCritical - first letter is upper case
func (code Code) IsCritical() bool {
	return 0 == code[criticalOffset]&propertyBit
}

// IsPublic - second letter is upper case
func (code Code) IsPublic() bool {
	return 0 == code[publicOffset]&propertyBit
}

// IsReservedBitValid - third letter is upper case
func (code Code) IsReservedBitValid() bool {
	return 0 == code[reservedOffset]&propertyBit
}

// IsSafeToCopy - fourth letter is lower case
func (code Code) IsSafeToCopy() bool {
	return 0 != code[safeToCopyOffset]&propertyBit
}

// IsValid - the reserved bit is clear and the code is not both
// critical and safe to copy
func (code Code) IsValid() bool {
	return code.IsReservedBitValid() && !(code.IsCritical() && code.IsSafeToCopy())
}

// String - the code as text
func (code Code) String() string {
	return string(code[:])
}

// GoString - for %#v
func (code Code) GoString() string {
	return "<chunk:" + string(code[:]) + ">"
}

// MarshalText - the code as text for JSON
func (code Code) MarshalText() ([]byte, error) {
	return []byte(code.String()), nil
}

// UnmarshalText - convert text back to a code
func (code *Code) UnmarshalText(s []byte) error {
	c, err := FromString(string(s))
	if nil != err {
		return err
	}
	*code = c
	return nil
}

// inclusive ASCII letter ranges
func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
