// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

// channel for the final message before a panic
var log *logger.L

// Initialise - open the PANIC log channel
//
// the logger must already be initialised
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush and release the PANIC channel
func Finalise() {
	if nil != log {
		log.Flush()
		log = nil
	}
}

// Panicf - record the caller and a formatted message then panic
//
// only for broken preconditions that no caller can recover from
func Panicf(format string, arguments ...interface{}) {
	message := fmt.Sprintf(format, arguments...)
	if _, file, line, ok := runtime.Caller(1); ok {
		message = fmt.Sprintf("(%q:%d) %s", file, line, message)
	}
	critical(message)
	panic(message)
}

// PanicIfError - panic with context when err is not nil
func PanicIfError(message string, err error) {
	if nil == err {
		return
	}
	s := fmt.Sprintf("%s failed with error: %v", message, err)
	critical(s)
	panic(s)
}

// write to the log if available, otherwise to stdout
func critical(message string) {
	if nil == log {
		fmt.Printf("*** %s\n", message)
		return
	}
	log.Critical(message)
	log.Flush()
	time.Sleep(100 * time.Millisecond) // to allow logging output
}
