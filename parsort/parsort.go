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

// Package parsort sorts a slice in place by a key-projection function
// whose result may borrow from storage outside the slice itself (the
// suffix table's key for position i is a slice view into the corpus,
// not a copy). It exists because stdlib sort has no parallel variant
// and sort.Slice would force us to either copy keys up front or accept
// a fully sequential sort over a multi-gigabyte table.
package parsort

import (
	"context"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// sequentialThreshold is the subarray size below which we stop forking
// goroutines and hand the range to stdlib sort, which already runs an
// introsort-style algorithm well suited to small ranges.
const sequentialThreshold = 2048

// Options configures a parallel sort.
type Options struct {
	// MaxGoroutines caps the number of concurrently outstanding sort
	// goroutines. Zero means runtime.GOMAXPROCS(0).
	MaxGoroutines int
	// OnProgress, if non-nil, is called (possibly from multiple
	// goroutines) each time a contiguous range of size n finishes
	// sorting. total is the length of the whole input. Progress is
	// approximate: it is reported as ranges complete, not as a strict
	// percentage of comparisons done.
	OnProgress func(n, total int)
}

// SortUnstableByKey sorts s in place so that less(keyFn(s[i]), keyFn(s[i+1]))
// never holds in reverse order, i.e. s ends up non-decreasing under less
// applied to keyFn. The sort is unstable and uses O(log n) additional
// stack space, not O(n) auxiliary storage: partitioning happens
// in place, which matters because keyFn for a suffix array is called on
// a table of up to billions of entries.
func SortUnstableByKey[E any, K any](s []E, keyFn func(E) K, less func(a, b K) bool, opts Options) {
	if len(s) < 2 {
		return
	}

	maxGoroutines := opts.MaxGoroutines
	if maxGoroutines <= 0 {
		maxGoroutines = runtime.GOMAXPROCS(0)
	}

	var inFlight atomic.Int64
	inFlight.Store(1)

	total := len(s)
	report := opts.OnProgress
	if report == nil {
		report = func(int, int) {}
	}

	eg, _ := errgroup.WithContext(context.Background())
	sortRange(eg, s, keyFn, less, &inFlight, int64(maxGoroutines), total, report)
	// eg.Wait's error is always nil: sortRange never returns an error,
	// there is nothing to propagate. We still call it to block for
	// completion of every spawned goroutine.
	_ = eg.Wait()
}

func sortRange[E any, K any](
	eg *errgroup.Group,
	s []E,
	keyFn func(E) K,
	less func(a, b K) bool,
	inFlight *atomic.Int64,
	maxGoroutines int64,
	total int,
	report func(n, total int),
) {
	if len(s) <= sequentialThreshold {
		sequentialSort(s, keyFn, less)
		report(len(s), total)
		return
	}

	lo, hi := partition(s, keyFn, less)
	// The pivot-equal middle range is already in its final place.
	report(hi-lo, total)

	left, right := s[:lo], s[hi:]

	runLeft := func() { sortRange(eg, left, keyFn, less, inFlight, maxGoroutines, total, report) }
	runRight := func() { sortRange(eg, right, keyFn, less, inFlight, maxGoroutines, total, report) }

	if inFlight.Load() < maxGoroutines {
		inFlight.Add(1)
		eg.Go(func() error {
			defer inFlight.Add(-1)
			runLeft()
			return nil
		})
		runRight()
	} else {
		runLeft()
		runRight()
	}
}

// sequentialSort handles the base case with stdlib sort, which already
// implements a pattern-defeating introsort and needs no help for
// ranges this small.
func sequentialSort[E any, K any](s []E, keyFn func(E) K, less func(a, b K) bool) {
	sort.Slice(s, func(i, j int) bool {
		return less(keyFn(s[i]), keyFn(s[j]))
	})
}

// partition performs a three-way Hoare partition around a median-of-
// three pivot and returns [lo, hi) such that s[:lo] < pivot == s[lo:hi]
// < s[hi:]. Equal elements are grouped in the middle so that ranges of
// duplicate keys (common for repeated n-grams) don't get re-partitioned
// uselessly.
func partition[E any, K any](s []E, keyFn func(E) K, less func(a, b K) bool) (int, int) {
	mid := len(s) / 2
	pivotIdx := medianOfThree(s, keyFn, less, 0, mid, len(s)-1)
	s[0], s[pivotIdx] = s[pivotIdx], s[0]
	pivot := keyFn(s[0])

	lt, i, gt := 0, 1, len(s)-1
	for i <= gt {
		ki := keyFn(s[i])
		switch {
		case less(ki, pivot):
			s[lt], s[i] = s[i], s[lt]
			lt++
			i++
		case less(pivot, ki):
			s[i], s[gt] = s[gt], s[i]
			gt--
		default:
			i++
		}
	}
	return lt, gt + 1
}

func medianOfThree[E any, K any](s []E, keyFn func(E) K, less func(a, b K) bool, a, b, c int) int {
	ka, kb, kc := keyFn(s[a]), keyFn(s[b]), keyFn(s[c])
	switch {
	case less(ka, kb):
		switch {
		case less(kb, kc):
			return b
		case less(ka, kc):
			return c
		default:
			return a
		}
	default:
		switch {
		case less(ka, kc):
			return a
		case less(kb, kc):
			return c
		default:
			return b
		}
	}
}
