/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package linecache memoizes the line-number to character-offset index of a
// content buffer for scroll-to-line navigation. The index is rebuilt whole
// per content, never patched, and entries are keyed by a content fingerprint
// so two different buffers can never serve each other's index.
package linecache

import "hash/fnv"

// DefaultCapacity bounds the number of cached indexes. Navigation dances
// around a single document per session, so a handful of slots is plenty.
const DefaultCapacity = 8

// Cache holds fingerprint-keyed line indexes with strict FIFO eviction.
// It is not safe for concurrent use; every call happens on the editor's
// single event path.
type Cache struct {
	capacity int
	order    []uint64
	entries  map[uint64][]int
}

// New creates a cache with the given capacity; zero or negative means
// DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{capacity: capacity, entries: make(map[uint64][]int, capacity)}
}

// GetCharPosition returns the character offset of the first character of the
// 1-based lineNumber within content. Out-of-range line numbers return 0; the
// call never panics since it sits on the navigation hot path.
func (c *Cache) GetCharPosition(content string, lineNumber int) int {
	idx := c.index(content)
	if lineNumber < 1 || lineNumber > len(idx) {
		return 0
	}
	return idx[lineNumber-1]
}

// LineCount returns the number of newline-delimited lines in content.
func (c *Cache) LineCount(content string) int {
	return len(c.index(content))
}

// Len reports how many indexes are currently cached.
func (c *Cache) Len() int { return len(c.entries) }

// index returns the memoized line index for content, building it on miss.
func (c *Cache) index(content string) []int {
	key := fingerprint(content)
	if idx, ok := c.entries[key]; ok {
		return idx
	}
	idx := buildIndex(content)
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = idx
	c.order = append(c.order, key)
	return idx
}

// buildIndex computes the offset of the first character of every line in a
// single pass. Slot i holds the offset of line i+1; slot 0 is always 0.
func buildIndex(content string) []int {
	idx := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

// fingerprint hashes the full content (FNV-1a). The original length-derived
// key silently collided for distinct same-length buffers; hashing the bytes
// removes that hazard while keeping lookups O(1) amortized.
func fingerprint(content string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(content))
	return h.Sum64()
}
