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

package index

import (
	"go.uber.org/zap"

	"github.com/dashstander/tokengrams/sampler"
	"github.com/dashstander/tokengrams/suffixtable"
	"github.com/dashstander/tokengrams/tokens"
)

// InMemoryIndex is a suffix table built entirely on the heap: the
// whole corpus and the whole table live as Go slices. Cheapest to
// build and query, bounded by available RAM — the index flavor to
// reach for when the corpus fits comfortably in memory.
type InMemoryIndex[T tokens.Token] struct {
	table     *suffixtable.Table[T]
	vocabSize int
	cache     *sampler.KNCache
}

// NewInMemoryIndex builds a suffix table over text and wraps it as an
// InMemoryIndex. vocabSizeOverride, if non-nil and positive, fixes the
// vocabulary size reported by VocabSize (and thus the width of every
// CountNextSlice result); otherwise it defaults to the full range of T.
func NewInMemoryIndex[T tokens.Token](text []T, vocabSizeOverride *int, logger *zap.Logger) *InMemoryIndex[T] {
	memText := suffixtable.MemText[T](text)
	raw := make([]uint64, len(text))
	suffixtable.BuildRaw[T](memText, raw, logger, nil)

	return &InMemoryIndex[T]{
		table:     suffixtable.New[T](memText, suffixtable.MemOffsets(raw)),
		vocabSize: tokens.VocabSize[T](vocabSizeOverride),
		cache:     sampler.NewKNCache(),
	}
}

// Len returns the number of tokens in the corpus.
func (idx *InMemoryIndex[T]) Len() int { return idx.table.Len() }

// VocabSize returns the vocabulary width this index reports counts
// and probabilities over.
func (idx *InMemoryIndex[T]) VocabSize() int { return idx.vocabSize }

// Contains reports whether query occurs anywhere in the corpus.
func (idx *InMemoryIndex[T]) Contains(query []T) bool { return idx.table.Contains(query) }

// Positions returns every corpus offset at which query occurs.
func (idx *InMemoryIndex[T]) Positions(query []T) []uint64 { return idx.table.Positions(query) }

// CountNext returns, for each token in [0, VocabSize()), the number of
// times it immediately follows query in the corpus.
func (idx *InMemoryIndex[T]) CountNext(query []T) []int {
	return idx.table.CountNext(query, idx.vocabSize)
}

// CountNextSlice implements sampler.Sample[T].
func (idx *InMemoryIndex[T]) CountNextSlice(query []T) []int { return idx.CountNext(query) }

// CountNgrams returns the n-gram occurrence-count histogram.
func (idx *InMemoryIndex[T]) CountNgrams(n int) map[int]int { return idx.table.CountNgrams(n) }

// Cache implements sampler.Sample[T].
func (idx *InMemoryIndex[T]) Cache() *sampler.KNCache { return idx.cache }

// BatchCountNext runs CountNext once per query in parallel.
func (idx *InMemoryIndex[T]) BatchCountNext(queries [][]T) [][]int {
	return idx.table.BatchCountNext(queries, idx.vocabSize)
}

var _ sampler.Sample[uint16] = (*InMemoryIndex[uint16])(nil)
