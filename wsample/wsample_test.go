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

package wsample

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeightedEmptyDistribution(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	_, err := Weighted(rng, []int{0, 0, 0})
	require.ErrorIs(t, err, ErrEmptyDistribution)

	_, err = Weighted[int](rng, nil)
	require.ErrorIs(t, err, ErrEmptyDistribution)
}

func TestWeightedSingleNonZero(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	idx, err := Weighted(rng, []int{0, 0, 5, 0})
	require.NoError(t, err)
	require.Equal(t, 2, idx)
}

func TestWeightedConvergesToProportions(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	counts := map[int]int{}
	const trials = 20000
	for i := 0; i < trials; i++ {
		idx, err := Weighted(rng, []float64{2, 1})
		require.NoError(t, err)
		counts[idx]++
	}
	ratio := float64(counts[0]) / float64(trials)
	require.InDelta(t, 2.0/3.0, ratio, 0.03)
}
