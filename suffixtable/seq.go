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

import "github.com/dashstander/tokengrams/tokens"

// TextSeq is the corpus: an ordered sequence of tokens, either an
// owned heap slice or a memory-mapped byte range reinterpreted as T.
// *mmapseq.Slice[T] already satisfies this interface.
type TextSeq[T tokens.Token] interface {
	Len() int
	View(lo, hi int) []T
}

// OffsetSeq is the suffix table itself: a permutation of [0, N) stored
// as u64 offsets, either on the heap or memory-mapped.
// *mmapseq.Slice[uint64] already satisfies this interface.
type OffsetSeq interface {
	Len() int
	At(i int) uint64
	View(lo, hi int) []uint64
}

// MemText adapts a plain Go slice to TextSeq.
type MemText[T tokens.Token] []T

func (m MemText[T]) Len() int                 { return len(m) }
func (m MemText[T]) View(lo, hi int) []T       { return m[lo:hi] }

// MemOffsets adapts a plain Go []uint64 to OffsetSeq.
type MemOffsets []uint64

func (m MemOffsets) Len() int                { return len(m) }
func (m MemOffsets) At(i int) uint64         { return m[i] }
func (m MemOffsets) View(lo, hi int) []uint64 { return m[lo:hi] }
