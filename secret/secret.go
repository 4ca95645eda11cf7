// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secret

//go:generate mockgen -source=secret.go -destination=mocks/secret.go -package=mocks

import (
	"fmt"
	"io/ioutil"
	"unicode/utf8"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pngsecret/chunkrecord"
	"github.com/bitmark-inc/pngsecret/chunktype"
	"github.com/bitmark-inc/pngsecret/container"
	"github.com/bitmark-inc/pngsecret/fault"
	"github.com/bitmark-inc/pngsecret/seal"
)

// Filesystem - whole file access
type Filesystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// Stasher - keeps removed chunks
type Stasher interface {
	Put(record *chunkrecord.Record) (uint64, error)
	Latest(chunkType string) (*chunkrecord.Record, error)
	Take(chunkType string) (*chunkrecord.Record, error)
}

// Secret - the operations available to the commands
type Secret struct {
	fs          Filesystem
	stash       Stasher
	defaultType string
	log         *logger.L
}

// EmbedArguments - parameters for Embed
type EmbedArguments struct {
	Input     string
	Output    string
	ChunkType string
	Message   string
	Password  string
}

// New - create the operations
//
// stash may be nil, in which case nothing is stashed and Restore fails
func New(fs Filesystem, stash Stasher, defaultType string, log *logger.L) *Secret {
	return &Secret{
		fs:          fs,
		stash:       stash,
		defaultType: defaultType,
		log:         log,
	}
}

// Load - read and decode a complete container
func (s *Secret) Load(path string) (*container.Container, error) {
	data, err := s.fs.ReadFile(path)
	if nil != err {
		return nil, err
	}

	c, err := container.Packed(data).Unpack()
	if nil != err {
		s.log.Warnf("decode: %q  error: %s", path, err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	s.log.Debugf("decoded: %q  chunks: %d", path, c.Len())
	return c, nil
}

// Embed - append a message chunk and write the result
func (s *Secret) Embed(arguments EmbedArguments) (*chunkrecord.Record, error) {
	if "" == arguments.Output {
		return nil, fault.ErrRequiredFile
	}

	code, err := s.chunkType(arguments.ChunkType)
	if nil != err {
		return nil, err
	}

	// a chunk that could not be decoded again must not be written
	if !code.IsValid() {
		return nil, fmt.Errorf("%s: %w", code, fault.ErrInvalidType)
	}

	c, err := s.Load(arguments.Input)
	if nil != err {
		return nil, err
	}

	data := []byte(arguments.Message)
	if "" != arguments.Password {
		data, err = seal.Seal(arguments.Password, data)
		if nil != err {
			return nil, err
		}
	}

	record := chunkrecord.New(code, data)
	c.Append(record)

	if err := s.fs.WriteFile(arguments.Output, c.Pack()); nil != err {
		return nil, err
	}

	s.log.Infof("embedded: %s  length: %d  sealed: %t  into: %q", code, record.Length(), "" != arguments.Password, arguments.Output)
	return record, nil
}

// Extract - the text of the first chunk of a type
func (s *Secret) Extract(path string, chunkType string, password string) (string, error) {
	code, err := s.chunkType(chunkType)
	if nil != err {
		return "", err
	}

	c, err := s.Load(path)
	if nil != err {
		return "", err
	}

	record, ok := c.Find(code.String())
	if !ok {
		return "", fmt.Errorf("%s: %s: %w", path, code, fault.ErrNotFound)
	}

	data := record.Data()
	sealed := seal.IsSealed(data)

	switch {
	case sealed && "" == password:
		return "", fault.ErrSealed
	case !sealed && "" != password:
		return "", fault.ErrNotSealed
	case sealed:
		data, err = seal.Open(password, data)
		if nil != err {
			s.log.Warnf("open sealed: %s  in: %q  error: %s", code, path, err)
			return "", err
		}
		if !utf8.Valid(data) {
			return "", fault.ErrInvalidEncoding
		}
		return string(data), nil
	}

	return record.Text()
}

// Strip - remove the first chunk of a type and write the result
//
// the removed chunk is stashed when keep is set, only after the
// output has been written
func (s *Secret) Strip(path string, chunkType string, output string, keep bool) (*chunkrecord.Record, error) {
	if "" == output {
		return nil, fault.ErrRequiredFile
	}

	code, err := s.chunkType(chunkType)
	if nil != err {
		return nil, err
	}

	c, err := s.Load(path)
	if nil != err {
		return nil, err
	}

	record, err := c.Remove(code.String())
	if nil != err {
		return nil, fmt.Errorf("%s: %s: %w", path, code, err)
	}

	if err := s.fs.WriteFile(output, c.Pack()); nil != err {
		return nil, err
	}

	if keep && nil != s.stash {
		if _, err := s.stash.Put(record); nil != err {
			s.log.Errorf("stash: %s  from: %q  error: %s", code, path, err)
			return record, fmt.Errorf("%s: %v: %w", code, err, fault.ErrNotStashed)
		}
	}

	s.log.Infof("removed: %s  from: %q  into: %q", code, path, output)
	return record, nil
}

// Restore - append the newest stashed chunk of a type and write the result
//
// the chunk only leaves the stash once the output has been written
func (s *Secret) Restore(path string, chunkType string, output string) (*chunkrecord.Record, error) {
	if nil == s.stash {
		return nil, fault.ErrNotInitialised
	}
	if "" == output {
		return nil, fault.ErrRequiredFile
	}

	code, err := s.chunkType(chunkType)
	if nil != err {
		return nil, err
	}

	c, err := s.Load(path)
	if nil != err {
		return nil, err
	}

	record, err := s.stash.Latest(code.String())
	if nil != err {
		return nil, err
	}
	c.Append(record)

	if err := s.fs.WriteFile(output, c.Pack()); nil != err {
		return nil, err
	}

	if _, err := s.stash.Take(code.String()); nil != err {
		return nil, err
	}

	s.log.Infof("restored: %s  into: %q", code, output)
	return record, nil
}

// List - all chunks of a container in order
func (s *Secret) List(path string) ([]*chunkrecord.Record, error) {
	c, err := s.Load(path)
	if nil != err {
		return nil, err
	}
	return c.Records(), nil
}

// Fingerprint - fingerprint of a valid container file
func (s *Secret) Fingerprint(path string) (string, error) {
	c, err := s.Load(path)
	if nil != err {
		return "", err
	}
	return c.Fingerprint(), nil
}

// resolve the chunk type, falling back to the configured default
func (s *Secret) chunkType(chunkType string) (chunktype.Code, error) {
	if "" == chunkType {
		chunkType = s.defaultType
	}
	if "" == chunkType {
		return chunktype.Code{}, fault.ErrRequiredChunkType
	}
	return chunktype.FromString(chunkType)
}

// OSFilesystem - Filesystem on the local disk
type OSFilesystem struct{}

// ReadFile - the whole file
func (OSFilesystem) ReadFile(name string) ([]byte, error) {
	if "" == name {
		return nil, fault.ErrRequiredFile
	}
	return ioutil.ReadFile(name)
}

// WriteFile - create or replace the file
func (OSFilesystem) WriteFile(name string, data []byte) error {
	if "" == name {
		return fault.ErrRequiredFile
	}
	return ioutil.WriteFile(name, data, 0644)
}
