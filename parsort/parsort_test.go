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

package parsort

import (
	"math/rand"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortUnstableByKeySmall(t *testing.T) {
	s := []int{5, 3, 1, 4, 2}
	SortUnstableByKey(s, func(i int) int { return i }, func(a, b int) bool { return a < b }, Options{})
	require.Equal(t, []int{1, 2, 3, 4, 5}, s)
}

func TestSortUnstableByKeyLargeMatchesStdlib(t *testing.T) {
	n := 50_000
	s := make([]int, n)
	rng := rand.New(rand.NewSource(1))
	for i := range s {
		s[i] = rng.Intn(1000)
	}
	want := append([]int(nil), s...)
	sort.Ints(want)

	SortUnstableByKey(s, func(i int) int { return i }, func(a, b int) bool { return a < b }, Options{MaxGoroutines: 4})
	require.Equal(t, want, s)
}

func TestSortUnstableByKeyBorrowedKey(t *testing.T) {
	// keyFn returns a slice view into storage external to s, mimicking
	// the suffix table's text[i:] key.
	text := []byte("banana")
	positions := []int{0, 1, 2, 3, 4, 5}

	SortUnstableByKey(positions, func(i int) []byte { return text[i:] }, func(a, b []byte) bool {
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
	}, Options{})

	var suffixes []string
	for _, p := range positions {
		suffixes = append(suffixes, string(text[p:]))
	}
	require.Equal(t, []string{"a", "ana", "anana", "banana", "na", "nana"}, suffixes)
}

func TestSortUnstableByKeyEmptyAndSingle(t *testing.T) {
	var empty []int
	SortUnstableByKey(empty, func(i int) int { return i }, func(a, b int) bool { return a < b }, Options{})

	one := []int{42}
	SortUnstableByKey(one, func(i int) int { return i }, func(a, b int) bool { return a < b }, Options{})
	require.Equal(t, []int{42}, one)
}

func TestSortUnstableByKeyProgressCallback(t *testing.T) {
	n := 10_000
	s := make([]int, n)
	for i := range s {
		s[i] = n - i
	}

	var reported atomic.Int64
	SortUnstableByKey(s, func(i int) int { return i }, func(a, b int) bool { return a < b }, Options{
		OnProgress: func(k, total int) {
			reported.Add(int64(k))
			require.Equal(t, n, total)
		},
	})
	require.Equal(t, int64(n), reported.Load())
}
