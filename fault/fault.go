// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrBadHeader            = InvalidError("container signature is invalid")
	ErrChecksumMismatch     = RecordError("chunk checksum mismatch")
	ErrInvalidEncoding      = InvalidError("chunk data is not valid UTF-8")
	ErrInvalidLoggerChannel = InvalidError("invalid logger channel")
	ErrInvalidStructPointer = InvalidError("invalid struct pointer")
	ErrInvalidType          = InvalidError("invalid chunk type")
	ErrLengthMismatch       = LengthError("chunk length does not match data")
	ErrNotAllLetters        = InvalidError("chunk type must be all ASCII letters")
	ErrNotFound             = NotFoundError("no chunk of the requested type")
	ErrNotInitialised       = NotFoundError("not initialised")
	ErrNotSealed            = InvalidError("chunk data is not sealed")
	ErrNotStashed           = ProcessError("chunk was removed but could not be stashed")
	ErrNothingStashed       = NotFoundError("no stashed chunk of the requested type")
	ErrRequiredChunkType    = InvalidError("chunk type is required")
	ErrRequiredFile         = InvalidError("file name is required")
	ErrSealTooShort         = LengthError("sealed data is too short")
	ErrSealed               = InvalidError("chunk data is sealed, password is required")
	ErrStashVersion         = InvalidError("incompatible stash database version")
	ErrTooShort             = LengthError("data too short")
	ErrWrongPassword        = InvalidError("wrong password")
	ErrWrongTypeLength      = LengthError("chunk type must be 4 bytes")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
// wrapped errors are unwrapped first so context added with %w is transparent
func IsErrExists(e error) bool   { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool  { var t InvalidError; return errors.As(e, &t) }
func IsErrLength(e error) bool   { var t LengthError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool  { var t ProcessError; return errors.As(e, &t) }
func IsErrRecord(e error) bool   { var t RecordError; return errors.As(e, &t) }
