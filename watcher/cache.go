// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package watcher

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	minimumExpiry = time.Second
)

// path to last reported fingerprint
type reportCache struct {
	cache  *cache.Cache
	expiry time.Duration
}

func newReportCache(expiry time.Duration) *reportCache {
	if expiry < minimumExpiry {
		expiry = minimumExpiry
	}
	return &reportCache{
		cache:  cache.New(expiry, 2*expiry),
		expiry: expiry,
	}
}

// seen - true if the fingerprint was the last one reported for path
func (c *reportCache) seen(path string, fingerprint string) bool {
	obj, found := c.cache.Get(path)
	if !found {
		return false
	}
	return fingerprint == obj.(string)
}

func (c *reportCache) set(path string, fingerprint string) {
	c.cache.Set(path, fingerprint, c.expiry)
}

func (c *reportCache) drop(path string) {
	c.cache.Delete(path)
}

func (c *reportCache) count() int {
	return c.cache.ItemCount()
}
