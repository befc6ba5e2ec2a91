// Copyright 2026 Dolthub, Inc.
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

// Package sampler implements unsmoothed and Kneser-Ney smoothed
// autoregressive sampling as a capability over any backing store that
// can answer count_next and count_ngrams queries — the suffix table
// doesn't know about sampling, and the sampler doesn't know whether
// it's driving an in-memory, memory-mapped, or sharded index. Every
// index type in package index implements Sample[T] by holding a
// *KNCache and delegating CountNextSlice/CountNgrams to its own
// storage.
package sampler

import "sync"

// KNCache holds the per-index, lazily-computed Kneser-Ney state:
// smoothed unigram probabilities and per-order discount estimates. It
// depends only on the corpus the owning index was built from, so it's
// populated once and reused for the index's lifetime.
//
// Every read and write of the cached fields takes a short mutex. The
// values themselves are computed outside the lock, so concurrent first
// calls may each compute them; only the first completed unigram
// distribution is stored. If a population attempt fails
// partway, the zero-value fields are left untouched so a retry starts
// clean — satisfied here because we only ever assign unigramProbs
// after it's fully computed.
type KNCache struct {
	mu           sync.Mutex
	unigramProbs []float64
	nDelta       map[int]float64
}

// NewKNCache returns an empty cache, ready for lazy population.
func NewKNCache() *KNCache {
	return &KNCache{nDelta: make(map[int]float64)}
}

func (c *KNCache) delta(n int) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.nDelta[n]
	return v, ok
}

func (c *KNCache) setDelta(n int, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nDelta[n] = v
}

func (c *KNCache) cachedDelta(n int) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.nDelta[n]; ok {
		return v
	}
	return 0.5
}

func (c *KNCache) unigrams() ([]float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unigramProbs == nil {
		return nil, false
	}
	return c.unigramProbs, true
}

func (c *KNCache) setUnigrams(p []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unigramProbs == nil {
		c.unigramProbs = p
	}
}
