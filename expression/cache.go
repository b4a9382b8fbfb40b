/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package expression

import (
	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize bounds the number of parsed expressions a Cache created
// with NewCache(0) retains.
const DefaultCacheSize = 256

// Cache retains recently parsed expressions, keyed by their text.  It is safe
// for concurrent use.
type Cache struct {
	parsed *lru.Cache
}

// NewCache returns a Cache holding up to size expressions, or
// DefaultCacheSize if size is not positive.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New fails only for non-positive sizes.
	parsed, _ := lru.New(size)
	return &Cache{parsed: parsed}
}

// Parse returns the parsed form of text, parsing it if it is not cached.
// Parse failures are not cached.
func (c *Cache) Parse(text string) (*Expression, error) {
	if c == nil {
		return Parse(text)
	}
	if e, ok := c.parsed.Get(text); ok {
		return e.(*Expression), nil
	}
	e, err := Parse(text)
	if err != nil {
		return nil, err
	}
	c.parsed.Add(text, e)
	return e, nil
}

// Evaluate parses text through the cache and evaluates it against ctx.
func (c *Cache) Evaluate(text string, ctx *Context) (any, error) {
	e, err := c.Parse(text)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(ctx)
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	return c.parsed.Len()
}
