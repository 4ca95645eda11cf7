// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/pngsecret/chunktype"
	"github.com/bitmark-inc/pngsecret/configuration"
	"github.com/bitmark-inc/pngsecret/fault"
	"github.com/bitmark-inc/pngsecret/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultConfigurationFile = "pngsecret.conf"

	defaultDataDirectory = "." // same directory as the configuration file

	defaultStashDirectory = "stash"
	defaultStashName      = "pngsecret.leveldb"

	defaultCacheExpiry = 300 // seconds

	defaultLogDirectory = "log"
	defaultLogFile      = "pngsecret.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// the parser merges into the map so each configuration needs its own
func (m LoglevelMap) copy() LoglevelMap {
	c := make(LoglevelMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

type StashType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

type WatchType struct {
	CacheExpirySeconds int `gluamapper:"cache_expiry_seconds" json:"cache_expiry_seconds"`
}

type Configuration struct {
	DataDirectory    string               `gluamapper:"data_directory" json:"data_directory"`
	DefaultChunkType string               `gluamapper:"default_chunk_type" json:"default_chunk_type"`
	Stash            StashType            `gluamapper:"stash" json:"stash"`
	Watch            WatchType            `gluamapper:"watch" json:"watch"`
	Logging          logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
//
// a blank file name gives the defaults relative to baseDirectory
func getConfiguration(configurationFileName string, baseDirectory string) (*Configuration, error) {

	options := &Configuration{

		DataDirectory:    defaultDataDirectory,
		DefaultChunkType: "",

		Stash: StashType{
			Directory: defaultStashDirectory,
			Name:      defaultStashName,
		},

		Watch: WatchType{
			CacheExpirySeconds: defaultCacheExpiry,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels.copy(),
		},
	}

	if "" != configurationFileName {
		fileName, err := filepath.Abs(filepath.Clean(configurationFileName))
		if nil != err {
			return nil, err
		}

		// absolute path to the main directory
		baseDirectory, _ = filepath.Split(fileName)

		if err := configuration.ParseConfigurationFile(fileName, options); nil != err {
			return nil, err
		}
	}

	baseDirectory, err := filepath.Abs(filepath.Clean(baseDirectory))
	if nil != err {
		return nil, err
	}

	// ensure absolute data directory
	switch options.DataDirectory {
	case "", "~":
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	case ".":
		options.DataDirectory = baseDirectory
	default:
		options.DataDirectory = util.EnsureAbsolute(baseDirectory, options.DataDirectory)
	}

	if "" != options.DefaultChunkType {
		code, err := chunktype.FromString(options.DefaultChunkType)
		if nil != err {
			return nil, fmt.Errorf("default_chunk_type: %q  %w", options.DefaultChunkType, err)
		}
		if !code.IsValid() {
			return nil, fmt.Errorf("default_chunk_type: %q  %w", options.DefaultChunkType, fault.ErrInvalidType)
		}
	}

	if options.Watch.CacheExpirySeconds <= 0 {
		options.Watch.CacheExpirySeconds = defaultCacheExpiry
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Logging.File, nil},
		{&options.Stash.Name, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.DataDirectory,
		&options.Stash.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// full path to the stash database
func (c *Configuration) stashDatabase() string {
	return filepath.Join(c.Stash.Directory, c.Stash.Name)
}

func (c *Configuration) cacheExpiry() time.Duration {
	return time.Duration(c.Watch.CacheExpirySeconds) * time.Second
}

// locate the configuration file
//
// explicit name, otherwise the default file if it exists, otherwise blank
func configurationFile(explicit string, directory string) string {
	if "" != explicit {
		return os.ExpandEnv(explicit)
	}
	file := filepath.Join(directory, defaultConfigurationFile)
	if util.EnsureFileExists(file) {
		return file
	}
	return ""
}
