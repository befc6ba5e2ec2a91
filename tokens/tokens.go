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

// Package tokens defines the fixed-width unsigned integer type corpora
// are made of, and the small set of helpers every other package needs to
// stay generic over the two supported widths (16 and 32 bits).
package tokens

import "golang.org/x/exp/constraints"

// Token is the element type of a corpus: a fixed-width unsigned integer,
// W in {16, 32} bits. It is a type parameter constraint, not a concrete
// type, so every package in this module is generic over it.
type Token interface {
	constraints.Unsigned
	~uint16 | ~uint32
}

// Width returns the bit width of T (16 or 32).
func Width[T Token]() int {
	var zero T
	switch any(zero).(type) {
	case uint16:
		return 16
	case uint32:
		return 32
	default:
		panic("tokens: unsupported token width")
	}
}

// MaxValue returns the largest representable value of T.
func MaxValue[T Token]() uint64 {
	var zero T
	return uint64(^zero)
}

// DefaultVocabSize returns 2^W, the vocabulary implied by T alone when
// the caller supplies no explicit vocab_size.
func DefaultVocabSize[T Token]() int {
	return int(MaxValue[T]() + 1)
}

// VocabSize resolves the effective vocabulary size for a query: the
// caller-supplied override when present and positive, else
// DefaultVocabSize[T]().
func VocabSize[T Token](override *int) int {
	if override != nil && *override > 0 {
		return *override
	}
	return DefaultVocabSize[T]()
}
