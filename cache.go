// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package paramcodec

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded LRU of constructed codecs keyed by [Config.String].
// Params with the same definition share their codec and validator instances.
//
// Cache is safe for concurrent use.
type Cache struct {
	cache *lru.Cache[string, *compiled]
	opts  []Option
}

// NewCache returns a cache holding at most size definitions.
// opts are applied to every codec and validator the cache builds.
func NewCache(size int, opts ...Option) (*Cache, error) {
	c, err := lru.New[string, *compiled](size)
	if err != nil {
		return nil, fmt.Errorf("paramcodec: cache: %w", err)
	}

	return &Cache{cache: c, opts: opts}, nil
}

// Get returns a param for cfg, named after cfg.String(). Instances are built
// on the first request and reused until evicted.
func (c *Cache) Get(cfg Config) (*Param, error) {
	return c.param(cfg.String(), cfg)
}

// Len returns the number of cached definitions.
func (c *Cache) Len() int {
	return c.cache.Len()
}

func (c *Cache) param(name string, cfg Config) (*Param, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key := cfg.String()
	if hit, ok := c.cache.Get(key); ok {
		return &Param{name: name, cfg: cfg, compiled: hit}, nil
	}
	built, err := compile(cfg, c.opts)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, built)

	return &Param{name: name, cfg: cfg, compiled: built}, nil
}
