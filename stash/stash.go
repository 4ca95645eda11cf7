// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stash

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/pngsecret/chunkrecord"
	"github.com/bitmark-inc/pngsecret/chunktype"
	"github.com/bitmark-inc/pngsecret/fault"
)

// for database version
var (
	versionKey  = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}
	sequenceKey = []byte{0x00, 'S', 'E', 'Q', 'U', 'E', 'N', 'C', 'E'}
)

const (
	currentVersion = 0x100

	chunkPrefix  = 'C'
	sequenceSize = 8
	keySize      = 1 + chunktype.Size + sequenceSize
)

// Entry - one stashed chunk
type Entry struct {
	Sequence uint64              `json:"sequence"`
	Record   *chunkrecord.Record `json:"record"`
}

// Stash - handle to an open stash database
type Stash struct {
	sync.Mutex
	log *logger.L
	db  *leveldb.DB
}

// Open - open or create the stash database
func Open(name string, log *logger.L) (*Stash, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: false,
	}
	return open(name, log, opt)
}

// OpenExisting - read-only access to a stash that must already exist
func OpenExisting(name string, log *logger.L) (*Stash, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: true,
		ReadOnly:       true,
	}
	return open(name, log, opt)
}

func open(name string, log *logger.L, opt *ldb_opt.Options) (*Stash, error) {
	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	switch {
	case 0 == version && !opt.ReadOnly:
		// database was empty so tag as current version
		if err := putVersion(db, currentVersion); nil != err {
			db.Close()
			return nil, err
		}
		log.Infof("created stash: %q", name)
	case currentVersion == version:
		log.Debugf("opened stash: %q  read only: %t", name, opt.ReadOnly)
	default:
		log.Criticalf("stash version: %d  expected: %d", version, currentVersion)
		db.Close()
		return nil, fault.ErrStashVersion
	}

	return &Stash{
		log: log,
		db:  db,
	}, nil
}

// Close - release the database
//
// a failed close may have lost stashed chunks so it is fatal
func (s *Stash) Close() {
	s.Lock()
	defer s.Unlock()

	if nil != s.db {
		err := s.db.Close()
		s.db = nil
		fault.PanicIfError("stash close", err)
	}
}

// Put - store a chunk, returns its sequence number
func (s *Stash) Put(record *chunkrecord.Record) (uint64, error) {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return 0, fault.ErrNotInitialised
	}

	sequence, err := s.lastSequence()
	if nil != err {
		return 0, err
	}
	sequence += 1

	seq := make([]byte, sequenceSize)
	binary.BigEndian.PutUint64(seq, sequence)

	batch := new(leveldb.Batch)
	batch.Put(makeKey(record.Type(), sequence), record.Pack())
	batch.Put(sequenceKey, seq)

	if err := s.db.Write(batch, nil); nil != err {
		return 0, err
	}

	s.log.Infof("stashed: %s  length: %d  sequence: %d", record.Type(), record.Length(), sequence)
	return sequence, nil
}

// Latest - the most recently stashed chunk of a type
func (s *Stash) Latest(chunkType string) (*chunkrecord.Record, error) {
	s.Lock()
	defer s.Unlock()

	e, _, err := s.latest(chunkType)
	if nil != err {
		return nil, err
	}
	return e.Record, nil
}

// Take - remove and return the most recently stashed chunk of a type
func (s *Stash) Take(chunkType string) (*chunkrecord.Record, error) {
	s.Lock()
	defer s.Unlock()

	e, key, err := s.latest(chunkType)
	if nil != err {
		return nil, err
	}

	if err := s.db.Delete(key, nil); nil != err {
		return nil, err
	}

	s.log.Infof("unstashed: %s  sequence: %d", chunkType, e.Sequence)
	return e.Record, nil
}

// List - all stashed chunks in key order
func (s *Stash) List() ([]Entry, error) {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return nil, fault.ErrNotInitialised
	}

	iter := s.db.NewIterator(ldb_util.BytesPrefix([]byte{chunkPrefix}), nil)
	defer iter.Release()

	entries := make([]Entry, 0)
	for iter.Next() {
		e, err := makeEntry(iter.Key(), iter.Value())
		if nil != err {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := iter.Error(); nil != err {
		return nil, err
	}
	return entries, nil
}

// must hold lock
func (s *Stash) latest(chunkType string) (Entry, []byte, error) {
	if nil == s.db {
		return Entry{}, nil, fault.ErrNotInitialised
	}

	code, err := chunktype.FromString(chunkType)
	if nil != err {
		return Entry{}, nil, err
	}

	prefix := make([]byte, 0, 1+chunktype.Size)
	prefix = append(prefix, chunkPrefix)
	prefix = append(prefix, code[:]...)

	iter := s.db.NewIterator(ldb_util.BytesPrefix(prefix), nil)
	defer iter.Release()

	if !iter.Last() {
		if err := iter.Error(); nil != err {
			return Entry{}, nil, err
		}
		return Entry{}, nil, fault.ErrNothingStashed
	}

	// iterator buffers are reused, so copy the key
	key := append([]byte{}, iter.Key()...)
	e, err := makeEntry(key, iter.Value())
	if nil != err {
		return Entry{}, nil, err
	}
	return e, key, nil
}

// must hold lock
func (s *Stash) lastSequence() (uint64, error) {
	value, err := s.db.Get(sequenceKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}
	if sequenceSize != len(value) {
		return 0, fmt.Errorf("invalid sequence length: expected: %d  actual: %d", sequenceSize, len(value))
	}
	return binary.BigEndian.Uint64(value), nil
}

func makeKey(code chunktype.Code, sequence uint64) []byte {
	key := make([]byte, keySize)
	key[0] = chunkPrefix
	copy(key[1:], code[:])
	binary.BigEndian.PutUint64(key[1+chunktype.Size:], sequence)
	return key
}

// decode and verify a stored chunk
func makeEntry(key []byte, value []byte) (Entry, error) {
	if keySize != len(key) {
		return Entry{}, fmt.Errorf("invalid stash key length: expected: %d  actual: %d", keySize, len(key))
	}

	record, err := chunkrecord.Packed(value).Unpack()
	if nil != err {
		return Entry{}, err
	}

	return Entry{
		Sequence: binary.BigEndian.Uint64(key[1+chunktype.Size:]),
		Record:   record,
	}, nil
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	v := make([]byte, 4)
	binary.BigEndian.PutUint32(v, uint32(version))

	return db.Put(versionKey, v, nil)
}
