// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package container

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/bitmark-inc/pngsecret/chunkrecord"
	"github.com/bitmark-inc/pngsecret/fault"
)

// SignatureSize - bytes in the fixed signature
const SignatureSize = 8

// Signature - required at the start of every container
var Signature = [SignatureSize]byte{137, 80, 78, 71, 13, 10, 26, 10}

// Packed - a container in its wire format
type Packed []byte

// Container - an ordered list of chunks
//
// not safe for concurrent mutation
type Container struct {
	records []*chunkrecord.Record
}

// FromRecords - wrap existing records, no validation is performed
func FromRecords(records []*chunkrecord.Record) *Container {
	r := make([]*chunkrecord.Record, len(records))
	copy(r, records)
	return &Container{
		records: r,
	}
}

// Unpack - parse a complete container
//
// any malformed chunk rejects the whole container
func (packed Packed) Unpack() (*Container, error) {
	size := len(packed)
	if size < SignatureSize {
		return nil, fault.ErrTooShort
	}
	if !bytes.Equal(packed[:SignatureSize], Signature[:]) {
		return nil, fault.ErrBadHeader
	}

	records := make([]*chunkrecord.Record, 0)
	offset := SignatureSize
	for offset < size {
		if size-offset < chunkrecord.LengthSize {
			return nil, fault.ErrTooShort
		}
		length := uint64(binary.BigEndian.Uint32(packed[offset:]))

		end := uint64(offset) + chunkrecord.MinimumSize + length
		if end > uint64(size) {
			return nil, fault.ErrTooShort
		}

		record, err := chunkrecord.Packed(packed[offset:end]).Unpack()
		if nil != err {
			return nil, err
		}
		records = append(records, record)
		offset = int(end)
	}

	return &Container{
		records: records,
	}, nil
}

// Pack - signature followed by every chunk in order
func (container *Container) Pack() Packed {
	size := SignatureSize
	packedRecords := make([]chunkrecord.Packed, 0, len(container.records))
	for _, record := range container.records {
		p := record.Pack()
		size += len(p)
		packedRecords = append(packedRecords, p)
	}

	buffer := make([]byte, 0, size)
	buffer = append(buffer, Signature[:]...)
	for _, p := range packedRecords {
		buffer = append(buffer, p...)
	}
	return buffer
}

// Records - the chunks in order
//
// the returned slice is a copy, records themselves are immutable
func (container *Container) Records() []*chunkrecord.Record {
	r := make([]*chunkrecord.Record, len(container.records))
	copy(r, container.records)
	return r
}

// Len - number of chunks
func (container *Container) Len() int {
	return len(container.records)
}

// Find - first chunk with the given type text
func (container *Container) Find(chunkType string) (*chunkrecord.Record, bool) {
	i := container.index(chunkType)
	if i < 0 {
		return nil, false
	}
	return container.records[i], true
}

// Append - add a chunk to the end, duplicate types are allowed
func (container *Container) Append(record *chunkrecord.Record) {
	r := make([]*chunkrecord.Record, len(container.records), len(container.records)+1)
	copy(r, container.records)
	container.records = append(r, record)
}

// Remove - delete and return the first chunk with the given type text
//
// the container is unchanged if there is no such chunk
func (container *Container) Remove(chunkType string) (*chunkrecord.Record, error) {
	i := container.index(chunkType)
	if i < 0 {
		return nil, fault.ErrNotFound
	}

	record := container.records[i]

	r := make([]*chunkrecord.Record, 0, len(container.records)-1)
	r = append(r, container.records[:i]...)
	r = append(r, container.records[i+1:]...)
	container.records = r

	return record, nil
}

// String - summaries of all chunks
func (container *Container) String() string {
	s := make([]string, 0, len(container.records))
	for _, record := range container.records {
		s = append(s, record.String())
	}
	return fmt.Sprintf("%q", s)
}

// position of the first matching chunk or -1
func (container *Container) index(chunkType string) int {
	for i, record := range container.records {
		if chunkType == record.Type().String() {
			return i
		}
	}
	return -1
}
