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

// Package wsample draws a single index from a discrete distribution
// given as non-negative weights. Neither the teacher's nor any other
// pack repo's dependency graph carries a categorical/WeightedIndex
// sampler (gonum's sampleuv package covers reservoir and
// without-replacement sampling, not a plain weighted draw with
// replacement), so this is implemented directly against math/rand/v2 —
// a deliberate, documented standard-library exception; see DESIGN.md.
package wsample

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptyDistribution is returned when every weight is zero (or the
// weight slice is empty), so no index can be drawn.
var ErrEmptyDistribution = errors.New("wsample: empty distribution")

// Weighted draws an index i in [0, len(weights)) with probability
// proportional to weights[i]. weights must be non-negative.
func Weighted[W Number](rng *rand.Rand, weights []W) (int, error) {
	var total float64
	for _, w := range weights {
		total += float64(w)
	}
	if total <= 0 {
		return 0, ErrEmptyDistribution
	}

	target := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += float64(w)
		if target < cum {
			return i, nil
		}
	}
	// Floating point rounding can leave target >= cum after the last
	// element; the last non-zero weight is the correct answer.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}
	return 0, ErrEmptyDistribution
}

// Number is any weight type Weighted can be used with.
type Number interface {
	~int | ~int64 | ~uint64 | ~float64
}
