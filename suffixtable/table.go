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

// Package suffixtable implements the sorted suffix array at the core
// of this module: construction, positional lookup, interval discovery
// (boundaries/range_positions), and the recursive count_next /
// count_ngrams enumeration that only visits tokens actually observed
// in the corpus rather than scanning the whole vocabulary.
package suffixtable

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dashstander/tokengrams/tokens"
)

// Table is a suffix table over a corpus of type T tokens. Both the
// text and the table itself may be heap slices (via MemText/MemOffsets)
// or memory-mapped files (via *mmapseq.Slice) — Table doesn't care
// which, it only needs Len/At/View.
type Table[T tokens.Token] struct {
	text  TextSeq[T]
	table OffsetSeq
}

// New wraps an already-sorted text/table pair. Callers that need to
// build a table from scratch use BuildRaw followed by New.
func New[T tokens.Token](text TextSeq[T], table OffsetSeq) *Table[T] {
	return &Table[T]{text: text, table: table}
}

// Len returns N, the number of suffixes (equivalently, the number of
// tokens in the corpus).
func (t *Table[T]) Len() int { return t.table.Len() }

// IsEmpty reports whether the corpus is empty.
func (t *Table[T]) IsEmpty() bool { return t.Len() == 0 }

// Suffix returns the suffix at table rank i: text[table[i]..N].
func (t *Table[T]) Suffix(i int) []T {
	pos := int(t.table.At(i))
	return t.text.View(pos, t.text.Len())
}

func (t *Table[T]) suffixLen(i int) int {
	return t.text.Len() - int(t.table.At(i))
}

// Contains reports whether query occurs anywhere in the corpus. An
// empty query never matches.
func (t *Table[T]) Contains(query []T) bool {
	if len(query) == 0 || t.Len() == 0 {
		return false
	}
	lo, hi := t.Boundaries(query)
	return lo < hi && hasPrefix(t.Suffix(lo), query)
}

// Positions returns the (unordered) table rows whose suffixes start
// with query, as a zero-copy view into the table. An empty or
// out-of-range query returns an empty slice.
func (t *Table[T]) Positions(query []T) []uint64 {
	lo, hi := t.Boundaries(query)
	if len(query) == 0 || lo >= hi || !hasPrefix(t.Suffix(lo), query) {
		return t.table.View(0, 0)
	}
	return t.table.View(lo, hi)
}

// Boundaries returns the unique interval [lo, hi) of table such that
// every suffix in it starts with query. Per §9's documented quirk, a
// query that falls entirely outside the range of suffixes returns the
// *full* table (0, N), not an empty interval — count_next relies on
// this to seed its search stack with something that still contains
// every real match.
func (t *Table[T]) Boundaries(query []T) (int, int) {
	n := t.Len()
	if t.text.Len() == 0 || len(query) == 0 {
		return 0, n
	}
	first, last := t.Suffix(0), t.Suffix(n-1)
	if lessTokens(query, first) && !hasPrefix(first, query) {
		return 0, n
	}
	if lessTokens(last, query) {
		return 0, n
	}

	lo := t.binarySearch(0, n, func(suf []T) bool { return !lessTokens(suf, query) })
	hi := t.binarySearch(lo, n, func(suf []T) bool { return !hasPrefix(suf, query) })
	return lo, hi
}

// RangePositions is Boundaries restricted to table[a:b): it finds the
// sub-interval of [a, b) whose suffixes start with query.
// Unlike Boundaries, an out-of-range query here returns (0, 0), not
// the full range — there is no caller-visible "full table" fallback
// once we're already inside a known interval.
func (t *Table[T]) RangePositions(query []T, a, b int) (int, int) {
	if t.text.Len() == 0 || len(query) == 0 || a == b {
		return 0, 0
	}
	rangeFirst, rangeLast := t.Suffix(a), t.Suffix(b-1)
	if lessTokens(query, rangeFirst) && !hasPrefix(rangeFirst, query) {
		return 0, 0
	}
	if lessTokens(rangeLast, query) {
		return 0, 0
	}

	start := t.binarySearch(a, b, func(suf []T) bool { return !lessTokens(suf, query) })
	end := t.binarySearch(start, b, func(suf []T) bool { return !hasPrefix(suf, query) })

	if start > end {
		return 0, 0
	}
	return start, end
}

// binarySearch returns the first index in [lo, hi) for which
// pred(Suffix(index)) holds, assuming pred is monotone (false* then
// true*) over that range; hi is returned if pred never holds.
func (t *Table[T]) binarySearch(lo, hi int, pred func(suf []T) bool) int {
	for lo < hi {
		mid := lo + (hi-lo)/2
		if pred(t.Suffix(mid)) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// CountNext counts, for every token t in [0, vocabSize), how many
// times query immediately followed by t occurs in the corpus. It does
// so in O(V' log N) where V' is the number of distinct tokens actually
// observed after query, not O(V log N): the naive approach of calling
// Positions(query ++ [t]) for every t in the vocabulary. See §4.3.
//
// A match of query at the very end of the corpus (with no token
// following it) contributes to none of the counts — this is the
// documented §9 "end-of-corpus" semantics, preserved exactly.
func (t *Table[T]) CountNext(query []T, vocabSize int) []int {
	counts := make([]int, vocabSize)
	if t.Len() == 0 {
		return counts
	}

	lo, hi := t.Boundaries(query)
	type frame struct{ a, b int }
	stack := []frame{{lo, hi}}

	qlen := len(query)
	buf := make([]T, qlen+1)
	copy(buf, query)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a, b := f.a, f.b
		if a == b {
			continue
		}

		idx := a + (b-a)/2
		for idx < b && t.suffixLen(idx) == qlen {
			idx = idx + (b-idx)/2 + 1
		}
		if idx >= b {
			continue
		}
		suf := t.Suffix(idx)
		if !hasPrefix(suf, query) {
			// Only the full-table fallback Boundaries returns for an
			// out-of-range query holds suffixes without query as a
			// prefix; there is nothing to count in it.
			continue
		}

		token := suf[qlen]
		buf[qlen] = token
		start, end := t.RangePositions(buf, a, b)
		if int(token) < vocabSize {
			// An observed token outside the caller's requested vocab
			// window is simply not counted, matching a caller-supplied
			// vocab_size smaller than the true vocabulary.
			counts[token] = end - start
		}

		if a < start {
			stack = append(stack, frame{a, start})
		}
		if end < b {
			stack = append(stack, frame{end, b})
		}
	}
	return counts
}

// BatchCountNext runs CountNext once per query, in parallel, returning
// results in the same order as queries.
func (t *Table[T]) BatchCountNext(queries [][]T, vocabSize int) [][]int {
	results := make([][]int, len(queries))
	eg, _ := errgroup.WithContext(context.Background())
	for i, q := range queries {
		i, q := i, q
		eg.Go(func() error {
			results[i] = t.CountNext(q, vocabSize)
			return nil
		})
	}
	_ = eg.Wait()
	return results
}

// IsSorted validates the table's sort invariant; used by tests and by
// callers recovering an index whose construction may have been
// interrupted.
func (t *Table[T]) IsSorted() bool {
	for i := 1; i < t.Len(); i++ {
		if lessTokens(t.Suffix(i), t.Suffix(i-1)) {
			return false
		}
	}
	return true
}

// CountNgrams produces a frequency histogram: for the given n, a map
// from occurrence count f to the number of distinct n-grams that occur
// exactly f times in the corpus. It generalizes CountNext's interval
// splitting one level further, descending n tokens deep instead of
// one, and instead of bucketing by the next token it buckets leaf
// interval sizes by frequency.
func (t *Table[T]) CountNgrams(n int) map[int]int {
	hist := map[int]int{}
	if n <= 0 || t.Len() == 0 {
		return hist
	}

	type frame struct{ a, b, depth, prefixLen int }
	stack := []frame{{0, t.Len(), n, 0}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a, b, depth, prefixLen := f.a, f.b, f.depth, f.prefixLen
		if a >= b {
			continue
		}
		if depth == 0 {
			hist[b-a]++
			continue
		}

		idx := a + (b-a)/2
		for idx < b && t.suffixLen(idx) <= prefixLen {
			idx = idx + (b-idx)/2 + 1
		}
		if idx >= b {
			continue
		}

		prefix := t.Suffix(idx)[:prefixLen+1]
		s, e := t.RangePositions(prefix, a, b)

		stack = append(stack, frame{s, e, depth - 1, prefixLen + 1})
		if a < s {
			stack = append(stack, frame{a, s, depth, prefixLen})
		}
		if e < b {
			stack = append(stack, frame{e, b, depth, prefixLen})
		}
	}
	return hist
}
