// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chunkrecord

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/bitmark-inc/pngsecret/chunktype"
	"github.com/bitmark-inc/pngsecret/fault"
)

// byte sizes for various fields
const (
	LengthSize   = 4
	TypeSize     = chunktype.Size
	ChecksumSize = 4

	// smallest possible packed record, i.e. no data
	MinimumSize = LengthSize + TypeSize + ChecksumSize
)

// offsets of the fixed fields
const (
	lengthOffset = 0
	typeOffset   = lengthOffset + LengthSize
	dataOffset   = typeOffset + TypeSize
)

// number of data bytes shown by String
const summaryBytes = 5

// Packed - a record in its wire format
type Packed []byte

// Record - an unpacked chunk
//
// fields are private so a record cannot be altered after its checksum
// has been computed
type Record struct {
	length   uint32
	code     chunktype.Code
	data     []byte
	checksum uint32
}

// New - create a record, the length and checksum are computed from the data
func New(code chunktype.Code, data []byte) *Record {
	if uint64(len(data)) > math.MaxUint32 {
		fault.Panicf("chunk data size: %d exceeds maximum: %d", len(data), uint64(math.MaxUint32))
	}

	d := make([]byte, len(data))
	copy(d, data)

	return &Record{
		length:   uint32(len(d)),
		code:     code,
		data:     d,
		checksum: checksum(code, d),
	}
}

// Length - the declared data length
func (record *Record) Length() uint32 {
	return record.length
}

// Type - the chunk type
func (record *Record) Type() chunktype.Code {
	return record.code
}

// Data - a copy of the data bytes
func (record *Record) Data() []byte {
	d := make([]byte, len(record.data))
	copy(d, record.data)
	return d
}

// Checksum - the CRC-32 of type and data
func (record *Record) Checksum() uint32 {
	return record.checksum
}

// Text - the data as a UTF-8 string
func (record *Record) Text() (string, error) {
	if !utf8.Valid(record.data) {
		return "", fault.ErrInvalidEncoding
	}
	return string(record.data), nil
}

// Pack - convert a record to its wire format
func (record *Record) Pack() Packed {
	buffer := make([]byte, MinimumSize+len(record.data))

	binary.BigEndian.PutUint32(buffer[lengthOffset:], record.length)
	copy(buffer[typeOffset:], record.code[:])
	n := dataOffset + copy(buffer[dataOffset:], record.data)
	binary.BigEndian.PutUint32(buffer[n:], record.checksum)

	return buffer
}

// Unpack - turn exactly one packed record into a record
//
// every field is verified: the type must be valid, the length must match
// the data and the checksum must match the type and data
func (packed Packed) Unpack() (*Record, error) {
	size := len(packed)
	if size < MinimumSize {
		return nil, fault.ErrTooShort
	}

	length := binary.BigEndian.Uint32(packed[lengthOffset:])

	b := [chunktype.Size]byte{}
	copy(b[:], packed[typeOffset:dataOffset])
	code, err := chunktype.FromBytes(b)
	if nil != err {
		return nil, fault.ErrInvalidType
	}
	if !code.IsValid() {
		return nil, fault.ErrInvalidType
	}

	end := size - ChecksumSize
	if uint64(length) != uint64(end-dataOffset) {
		return nil, fault.ErrLengthMismatch
	}
	data := make([]byte, end-dataOffset)
	copy(data, packed[dataOffset:end])

	stored := binary.BigEndian.Uint32(packed[end:])
	if stored != checksum(code, data) {
		return nil, fault.ErrChecksumMismatch
	}

	record := &Record{
		length:   length,
		code:     code,
		data:     data,
		checksum: stored,
	}
	return record, nil
}

// String - multi-line summary for diagnostic printing
func (record *Record) String() string {
	n := len(record.data)
	if n > summaryBytes {
		n = summaryBytes
	}
	s := make([]string, 0, summaryBytes+1)
	for _, b := range record.data[:n] {
		s = append(s, fmt.Sprintf("0x%02x", b))
	}
	if len(record.data) > summaryBytes {
		s = append(s, "...")
	}

	return fmt.Sprintf("Chunk:\n\tlength: %d\n\ttype: %s\n\tdata: %s\n\tcrc: %d",
		record.length,
		record.code,
		strings.Join(s, " "),
		record.checksum,
	)
}

// the JSON form of a record, used by the dump tools
type jsonRecord struct {
	Length   uint32         `json:"length"`
	Type     chunktype.Code `json:"type"`
	Critical bool           `json:"critical"`
	Public   bool           `json:"public"`
	Safe     bool           `json:"safeToCopy"`
	Data     string         `json:"data"`
	Checksum uint32         `json:"crc"`
}

// MarshalJSON - record with data as hex
func (record *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonRecord{
		Length:   record.length,
		Type:     record.code,
		Critical: record.code.IsCritical(),
		Public:   record.code.IsPublic(),
		Safe:     record.code.IsSafeToCopy(),
		Data:     hex.EncodeToString(record.data),
		Checksum: record.checksum,
	})
}

// CRC-32/ISO-HDLC over type followed by data
func checksum(code chunktype.Code, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write(code[:])
	crc.Write(data)
	return crc.Sum32()
}
