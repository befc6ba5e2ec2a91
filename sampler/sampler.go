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

package sampler

import (
	"context"
	"errors"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/dashstander/tokengrams/d"
	"github.com/dashstander/tokengrams/tokens"
	"github.com/dashstander/tokengrams/wsample"
)

// ErrEmptyDistribution is returned when a sample is requested from a
// context with no observed continuations at all (an empty corpus, or
// a query that — even after Kneser-Ney back-off to the unigram
// distribution — has nothing to draw from).
var ErrEmptyDistribution = wsample.ErrEmptyDistribution

// Sample is the capability every index type exposes to this package:
// the ability to answer count_next and count_ngrams over its own
// backing storage, plus a handle to the Kneser-Ney cache it owns. Go
// interfaces can't carry generic methods, so the sampling algorithms
// below are free functions parameterized over Sample[T] rather than
// methods on it.
type Sample[T tokens.Token] interface {
	CountNextSlice(query []T) []int
	CountNgrams(n int) map[int]int
	VocabSize() int
	Cache() *KNCache
}

// contextWindow returns the last n-1 tokens of seq, the conditioning
// context for an order-n n-gram model — "saturating" at the start of
// seq exactly like the original's sequence.len().saturating_sub(n-1):
// a short sequence simply yields its entire, shorter self.
func contextWindow[T any](seq []T, n int) []T {
	if n < 1 {
		n = 1
	}
	start := len(seq) - (n - 1)
	if start < 0 {
		start = 0
	}
	return seq[start:]
}

// SampleUnsmoothed draws k tokens autoregressively, at each step
// weighting by the raw count_next distribution over the previous n-1
// tokens of the sequence built so far (no smoothing). query is the
// fixed prefix prepended to the output.
func SampleUnsmoothed[T tokens.Token](ctx context.Context, s Sample[T], rng *rand.Rand, query []T, n, k int) ([]T, error) {
	seq := make([]T, len(query), len(query)+k)
	copy(seq, query)

	for i := 0; i < k; i++ {
		counts := s.CountNextSlice(contextWindow(seq, n))
		idx, err := wsample.Weighted(rng, counts)
		if err != nil {
			return nil, err
		}
		seq = append(seq, T(idx))
	}
	return seq, nil
}

// BatchSampleUnsmoothed runs SampleUnsmoothed numSamples times in
// parallel, each an independent draw starting from the same query.
func BatchSampleUnsmoothed[T tokens.Token](ctx context.Context, s Sample[T], query []T, n, k, numSamples int) ([][]T, error) {
	results := make([][]T, numSamples)
	eg, egCtx := errgroup.WithContext(ctx)
	for i := 0; i < numSamples; i++ {
		i := i
		eg.Go(func() error {
			rng := rand.New(rand.NewPCG(uint64(i)+1, uint64(i)*2+7))
			out, err := SampleUnsmoothed(egCtx, s, rng, query, n, k)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// EstimateDeltas computes the Kneser-Ney discount for n-grams of order
// n from the index's own statistics, per §4.7's formula:
//
//	delta = N1 / (N1 + 2*N2)
//
// where N1, N2 are the number of distinct n-grams occurring exactly
// once and exactly twice. If either is zero the discount defaults to
// 1.0 (no held-out mass to redistribute beyond a flat subtraction).
// The computed value is cached so later calls are O(1).
func EstimateDeltas[T tokens.Token](s Sample[T], n int) float64 {
	if v, ok := s.Cache().delta(n); ok {
		return v
	}
	hist := s.CountNgrams(n)
	n1 := float64(hist[1])
	n2 := float64(hist[2])

	delta := 1.0
	if n1 > 0 && n2 > 0 {
		delta = n1 / (n1 + 2*n2)
	}
	s.Cache().setDelta(n, delta)
	return delta
}

func getCachedDelta[T tokens.Token](s Sample[T], n int) float64 {
	if v, ok := s.Cache().delta(n); ok {
		return v
	}
	return s.Cache().cachedDelta(n)
}

// ComputeSmoothedUnigramProbs computes and caches the base case of the
// Kneser-Ney recursion: a smoothed distribution over single tokens,
// derived from each token's raw frequency (count_next of the empty
// query) with a small additive epsilon. Populated once per cache.
func ComputeSmoothedUnigramProbs[T tokens.Token](s Sample[T]) []float64 {
	if p, ok := s.Cache().unigrams(); ok {
		return p
	}

	const eps = 1e-9

	vocab := s.VocabSize()
	counts := s.CountNextSlice(nil)
	total := 0
	for _, c := range counts {
		total += c
	}

	// Additive smoothing per §4.7: every token keeps a small epsilon of
	// mass even with zero observed count, so an empty or tiny corpus
	// still yields a normalized, non-degenerate distribution to mix
	// with at every order above the unigram base case.
	adjustedTotal := float64(total) + eps*float64(len(counts))
	probs := make([]float64, vocab)
	for t, c := range counts {
		probs[t] = (float64(c) + eps) / adjustedTotal
	}
	s.Cache().setUnigrams(probs)
	return probs
}

// GetSmoothedProbs returns the full Kneser-Ney interpolated
// distribution over the next token following query, recursing on
// shorter and shorter suffixes of query until the unigram base case.
// This is smoothed_probs(q) from §4.7: for each order it mixes the
// query's own count_next distribution with the back-off distribution
// for query[1:], weighted by lambda.
func GetSmoothedProbs[T tokens.Token](s Sample[T], query []T) []float64 {
	// The base case of the recursion is reached when query is already
	// empty: the back-off distribution it mixes with is the cached
	// unigram distribution itself, rather than a further recursive
	// call. The rest of the function still runs for this case — the
	// empty-query count_next distribution is interpolated with that
	// same unigram distribution exactly like every other order.
	var backoff []float64
	if len(query) == 0 {
		backoff = ComputeSmoothedUnigramProbs(s)
	} else {
		backoff = GetSmoothedProbs(s, query[1:])
	}

	counts := s.CountNextSlice(query)
	total := 0
	for _, c := range counts {
		total += c
	}

	d.PanicIfFalse(len(backoff) == len(counts),
		"sampler: back-off distribution width %d does not match count_next width %d; Sample[T] must report a consistent VocabSize", len(backoff), len(counts))

	if total == 0 {
		// query never occurs as a prefix at all: no mass to interpolate,
		// fall straight through to the back-off distribution.
		return backoff
	}

	n := len(query)
	delta := getCachedDelta(s, n+1)

	nPlus := 0 // distinct continuations observed (N>0 in §4.7)
	n1 := 0    // continuations observed exactly once
	for _, c := range counts {
		if c > 0 {
			nPlus++
			if c == 1 {
				n1++
			}
		}
	}

	var lambda float64
	if delta < 1.0 {
		lambda = delta * float64(nPlus) / float64(total)
	} else {
		lambda = float64(n1) + delta*float64(nPlus-n1)/float64(total)
	}

	probs := make([]float64, len(counts))
	for t, c := range counts {
		discounted := float64(c) - delta
		if discounted < 0 {
			discounted = 0
		}
		probs[t] = discounted/float64(total) + lambda*backoff[t]
	}
	return probs
}

// BatchGetSmoothedProbs runs GetSmoothedProbs once per query, in
// parallel, returning results in the same order as queries.
func BatchGetSmoothedProbs[T tokens.Token](ctx context.Context, s Sample[T], queries [][]T) ([][]float64, error) {
	results := make([][]float64, len(queries))
	eg, _ := errgroup.WithContext(ctx)
	for i, q := range queries {
		i, q := i, q
		eg.Go(func() error {
			results[i] = GetSmoothedProbs(s, q)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// KnSample draws a single token from query's Kneser-Ney smoothed
// distribution.
func KnSample[T tokens.Token](rng *rand.Rand, s Sample[T], query []T) (T, error) {
	probs := GetSmoothedProbs(s, query)
	idx, err := wsample.Weighted(rng, probs)
	if err != nil {
		return 0, errors.Join(err, ErrEmptyDistribution)
	}
	return T(idx), nil
}

// SampleSmoothed draws k tokens autoregressively using Kneser-Ney
// smoothed probabilities over the previous n-1 tokens at every step,
// mirroring SampleUnsmoothed's loop structure but calling KnSample
// instead of a raw weighted draw.
func SampleSmoothed[T tokens.Token](s Sample[T], rng *rand.Rand, query []T, n, k int) ([]T, error) {
	seq := make([]T, len(query), len(query)+k)
	copy(seq, query)

	for i := 0; i < k; i++ {
		next, err := KnSample(rng, s, contextWindow(seq, n))
		if err != nil {
			return nil, err
		}
		seq = append(seq, next)
	}
	return seq, nil
}

// BatchSampleSmoothed runs SampleSmoothed numSamples times in
// parallel, each an independent draw starting from the same query.
func BatchSampleSmoothed[T tokens.Token](ctx context.Context, s Sample[T], query []T, n, k, numSamples int) ([][]T, error) {
	results := make([][]T, numSamples)
	eg, egCtx := errgroup.WithContext(ctx)
	_ = egCtx
	for i := 0; i < numSamples; i++ {
		i := i
		eg.Go(func() error {
			rng := rand.New(rand.NewPCG(uint64(i)*7+3, uint64(i)*13+11))
			out, err := SampleSmoothed(s, rng, query, n, k)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
