// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package watcher

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/pngsecret/background"
	"github.com/bitmark-inc/pngsecret/container"
	"github.com/bitmark-inc/pngsecret/fault"
)

// Report - one container found in the watched directory
type Report struct {
	Path        string   `json:"path"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	Types       []string `json:"types"`
	Err         error    `json:"-"`
}

// Watcher - directory monitor
type Watcher struct {
	sync.Mutex

	log       *logger.L
	directory string
	report    func(Report)
	cache     *reportCache

	watcher    *fsnotify.Watcher
	background *background.T
}

// the event loop run in the background
type eventLoop struct {
	w  *Watcher
	fw *fsnotify.Watcher
}

// New - create a watcher for a directory
//
// report is called from the watcher goroutine only
func New(directory string, expiry time.Duration, log *logger.L, report func(Report)) (*Watcher, error) {
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	dir, err := filepath.Abs(filepath.Clean(directory))
	if nil != err {
		return nil, err
	}

	info, err := os.Stat(dir)
	if nil != err {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fault.ErrRequiredFile
	}

	return &Watcher{
		log:       log,
		directory: dir,
		report:    report,
		cache:     newReportCache(expiry),
	}, nil
}

// Directory - absolute path being watched
func (w *Watcher) Directory() string {
	return w.directory
}

// Start - scan existing files then report changes in the background
func (w *Watcher) Start() error {
	w.Lock()
	defer w.Unlock()

	if nil != w.watcher {
		return fault.ErrAlreadyInitialised
	}

	fw, err := fsnotify.NewWatcher()
	if nil != err {
		w.log.Errorf("new watcher with error: %s", err)
		return err
	}

	err = fw.Add(w.directory)
	if nil != err {
		w.log.Errorf("watcher add error: %s, abort", err)
		fw.Close()
		return err
	}

	w.watcher = fw
	w.background = background.Start(background.Processes{
		&eventLoop{w: w, fw: fw},
	}, nil)

	w.log.Infof("watching: %q", w.directory)
	return nil
}

// Stop - end the background goroutine and wait for it
func (w *Watcher) Stop() {
	w.Lock()
	defer w.Unlock()

	if nil == w.watcher {
		return
	}

	w.background.Stop()
	w.background = nil
	w.watcher.Close()
	w.watcher = nil

	w.log.Infof("stopped  cached: %d", w.cache.count())
}

func (l *eventLoop) Run(args interface{}, shutdown <-chan struct{}) {
	w := l.w
	fw := l.fw

	w.scanDirectory()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-fw.Events:
			if !ok {
				break loop
			}
			w.log.Debugf("file event: %v", event)
			w.handle(event)

		case err, ok := <-fw.Errors:
			if !ok {
				break loop
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if eventFileRemove(event) {
		w.cache.drop(event.Name)
		return
	}
	if eventFileChange(event) {
		w.Scan(event.Name)
	}
}

func (w *Watcher) scanDirectory() {
	files, err := ioutil.ReadDir(w.directory)
	if nil != err {
		w.log.Errorf("read directory: %q  error: %s", w.directory, err)
		return
	}
	for _, f := range files {
		if f.Mode().IsRegular() {
			w.Scan(filepath.Join(w.directory, f.Name()))
		}
	}
}

// Scan - examine one file and report it if it is a container whose
// content has not been reported recently
//
// returns true if report was called
func (w *Watcher) Scan(path string) bool {
	info, err := os.Stat(path)
	if nil != err || !info.Mode().IsRegular() {
		w.log.Debugf("skip: %q", path)
		return false
	}

	data, err := ioutil.ReadFile(path)
	if nil != err {
		w.log.Warnf("read: %q  error: %s", path, err)
		return false
	}

	// anything without the signature is not of interest
	if len(data) < container.SignatureSize {
		w.log.Debugf("not a container: %q", path)
		return false
	}

	packed := container.Packed(data)
	c, err := packed.Unpack()
	if fault.ErrBadHeader == err {
		w.log.Debugf("not a container: %q", path)
		return false
	}

	fingerprint := packed.Fingerprint()
	if w.cache.seen(path, fingerprint) {
		w.log.Debugf("unchanged: %q", path)
		return false
	}
	w.cache.set(path, fingerprint)

	r := Report{
		Path:        path,
		Fingerprint: fingerprint,
		Types:       []string{},
	}

	if nil != err {
		w.log.Warnf("corrupt container: %q  error: %s", path, err)
		r.Err = err
	} else {
		for _, record := range c.Records() {
			r.Types = append(r.Types, record.Type().String())
		}
		w.log.Infof("container: %q  chunks: %d", path, len(r.Types))
	}

	if nil != w.report {
		w.report(r)
	}
	return true
}

func eventFileRemove(event fsnotify.Event) bool {
	return "" == event.Name ||
		event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}

func eventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
