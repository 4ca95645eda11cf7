// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package seal - password protection for chunk data
//
// sealed layout:
//
//   "SEAL" [16 byte salt] [24 byte nonce] [secretbox output]
package seal

import (
	"bytes"
	"crypto/rand"
	"io"

	"github.com/bitmark-inc/go-argon2"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/bitmark-inc/pngsecret/fault"
)

// sizes of the sealed fields
const (
	SaltSize  = 16
	NonceSize = 24
	KeySize   = 32

	magic      = "SEAL"
	magicSize  = len(magic)
	HeaderSize = magicSize + SaltSize + NonceSize
)

// Seal - encrypt data with a key derived from the password
func Seal(password string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); nil != err {
		return nil, err
	}

	key, err := generateKey(password, salt)
	if nil != err {
		return nil, err
	}

	// a random 192 bit nonce makes repeats sufficiently unlikely
	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); nil != err {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(plaintext)+secretbox.Overhead)
	out = append(out, magic...)
	out = append(out, salt...)
	out = append(out, nonce[:]...)

	return secretbox.Seal(out, plaintext, &nonce, key), nil
}

// Open - decrypt data produced by Seal
func Open(password string, sealed []byte) ([]byte, error) {
	if len(sealed) < HeaderSize+secretbox.Overhead {
		return nil, fault.ErrSealTooShort
	}
	if !IsSealed(sealed) {
		return nil, fault.ErrNotSealed
	}

	salt := sealed[magicSize : magicSize+SaltSize]

	var nonce [NonceSize]byte
	copy(nonce[:], sealed[magicSize+SaltSize:HeaderSize])

	key, err := generateKey(password, salt)
	if nil != err {
		return nil, err
	}

	plaintext, ok := secretbox.Open(nil, sealed[HeaderSize:], &nonce, key)
	if !ok {
		return nil, fault.ErrWrongPassword
	}
	return plaintext, nil
}

// IsSealed - data starts with the seal marker
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, []byte(magic))
}

func generateKey(password string, salt []byte) (*[KeySize]byte, error) {

	ctx := &argon2.Context{
		Iterations:  5,
		Memory:      1 << 16,
		Parallelism: 4,
		HashLen:     KeySize,
		Mode:        argon2.ModeArgon2i,
		Version:     argon2.Version13,
	}

	hash, err := argon2.Hash(ctx, []byte(password), salt)
	if nil != err {
		return nil, err
	}

	var secretKey [KeySize]byte
	copy(secretKey[:], hash)

	return &secretKey, nil
}
