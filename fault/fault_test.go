// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/pngsecret/fault"
)

var (
	ErrExistsOne   = fault.ExistsError("exists one ")
	ErrExistsTwo   = fault.ExistsError("exists two")
	ErrInvalidOne  = fault.InvalidError("invalid one")
	ErrInvalidTwo  = fault.InvalidError("invalid two")
	ErrLengthOne   = fault.LengthError("length one")
	ErrLengthTwo   = fault.LengthError("length two")
	ErrNotFoundOne = fault.NotFoundError("not found one")
	ErrNotFoundTwo = fault.NotFoundError("not found two")
	ErrProcessOne  = fault.ProcessError("process one")
	ErrProcessTwo  = fault.ProcessError("process two")
	ErrRecordOne   = fault.RecordError("record one")
	ErrRecordTwo   = fault.RecordError("record two")
)

// test that the various classes are distinguished
func TestClasses(t *testing.T) {
	errorList := []struct {
		err      error
		exists   bool
		invalid  bool
		length   bool
		notFound bool
		process  bool
		record   bool
	}{
		{ErrExistsOne, true, false, false, false, false, false},
		{ErrExistsTwo, true, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false},
		{ErrInvalidTwo, false, true, false, false, false, false},
		{ErrLengthOne, false, false, true, false, false, false},
		{ErrLengthTwo, false, false, true, false, false, false},
		{ErrNotFoundOne, false, false, false, true, false, false},
		{ErrNotFoundTwo, false, false, false, true, false, false},
		{ErrProcessOne, false, false, false, false, true, false},
		{ErrProcessTwo, false, false, false, false, true, false},
		{ErrRecordOne, false, false, false, false, false, true},
		{ErrRecordTwo, false, false, false, false, false, true},
		{fault.ErrTooShort, false, false, true, false, false, false},
		{fault.ErrBadHeader, false, true, false, false, false, false},
		{fault.ErrChecksumMismatch, false, false, false, false, false, true},
		{fault.ErrNotFound, false, false, false, true, false, false},
		{nil, false, false, false, false, false, false},
	}

	for i, e := range errorList {
		err := e.err
		assert.Equal(t, e.exists, fault.IsErrExists(err), "%d: 'exists' for err = %v", i, err)
		assert.Equal(t, e.invalid, fault.IsErrInvalid(err), "%d: 'invalid' for err = %v", i, err)
		assert.Equal(t, e.length, fault.IsErrLength(err), "%d: 'length' for err = %v", i, err)
		assert.Equal(t, e.notFound, fault.IsErrNotFound(err), "%d: 'not found' for err = %v", i, err)
		assert.Equal(t, e.process, fault.IsErrProcess(err), "%d: 'process' for err = %v", i, err)
		assert.Equal(t, e.record, fault.IsErrRecord(err), "%d: 'record' for err = %v", i, err)
	}
}

func TestClassesSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("%s: %w", "image.png", fault.ErrChecksumMismatch)

	assert.True(t, fault.IsErrRecord(err), "wrapped record error")
	assert.False(t, fault.IsErrLength(err), "wrapped record error is not length")
	assert.Contains(t, err.Error(), "image.png", "context lost")
}

func TestPanicIfError(t *testing.T) {
	assert.NotPanics(t, func() { fault.PanicIfError("nothing", nil) }, "nil error")
	assert.Panics(t, func() { fault.PanicIfError("something", ErrProcessOne) }, "non nil error")
}

func TestPanicf(t *testing.T) {
	assert.Panics(t, func() { fault.Panicf("size: %d", 10) }, "Panicf")
}
