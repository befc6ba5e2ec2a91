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

package suffixtable

import (
	"go.uber.org/zap"

	"github.com/dashstander/tokengrams/parsort"
	"github.com/dashstander/tokengrams/tokens"
)

// BuildRaw fills raw with the identity permutation [0, len(raw)) and
// parallel-sorts it so that raw becomes a valid suffix table over
// text. raw must have length text.Len(); it may be backed by the heap
// or by a writable memory-mapped file — the caller decides by handing
// BuildRaw whatever []uint64 it got from either MemOffsets or
// mmapseq.Slice.Raw(). This is what lets the memmap index construct a
// multi-gigabyte table directly inside its output file instead of
// holding a second heap-sized copy during the build.
func BuildRaw[T tokens.Token](text TextSeq[T], raw []uint64, logger *zap.Logger, onProgress func(done, total int)) {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := text.Len()
	logger.Info("building suffix table", zap.Int("tokens", n))

	for i := range raw {
		raw[i] = uint64(i)
	}

	keyFn := func(i uint64) []T { return text.View(int(i), n) }
	parsort.SortUnstableByKey(raw, keyFn, lessTokens[T], parsort.Options{
		OnProgress: onProgress,
	})

	logger.Info("suffix table sorted", zap.Int("tokens", n))
}

// lessTokens implements the total order §3 requires: lexicographic on
// the tokens, ties broken by length (a shorter suffix sorts before a
// longer one of which it is a proper prefix).
func lessTokens[T tokens.Token](a, b []T) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func equalTokens[T tokens.Token](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasPrefix[T tokens.Token](s, prefix []T) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, p := range prefix {
		if s[i] != p {
			return false
		}
	}
	return true
}
