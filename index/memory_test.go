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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dashstander/tokengrams/sampler"
)

func asTokens(s string) []uint16 {
	out := make([]uint16, len(s))
	for i, c := range []byte(s) {
		out[i] = uint16(c)
	}
	return out
}

func TestInMemoryIndexCountNext(t *testing.T) {
	idx := NewInMemoryIndex[uint16](asTokens("aaab"), nil, nil)
	counts := idx.CountNext(asTokens("a"))
	require.Greater(t, len(counts), int('b'))
	require.Equal(t, 2, counts['a'])
	require.Equal(t, 1, counts['b'])
}

func TestInMemoryIndexVocabOverride(t *testing.T) {
	override := 300
	idx := NewInMemoryIndex[uint16](asTokens("aaab"), &override, nil)
	require.Equal(t, 300, idx.VocabSize())
}

func TestInMemoryIndexImplementsSample(t *testing.T) {
	idx := NewInMemoryIndex[uint16](asTokens("aaab"), nil, nil)
	var _ sampler.Sample[uint16] = idx
	probs := sampler.GetSmoothedProbs[uint16](idx, asTokens("a"))
	var sum float64
	for _, p := range probs {
		sum += p
	}
	require.InDelta(t, 1.0, sum, 1e-6*float64(idx.VocabSize()))
}

func TestInMemoryIndexBatchCountNext(t *testing.T) {
	idx := NewInMemoryIndex[uint16](asTokens("aaab"), nil, nil)
	results := idx.BatchCountNext([][]uint16{asTokens("a"), asTokens("b")})
	require.Len(t, results, 2)
	require.Equal(t, 2, results[0]['a'])
	require.Equal(t, 0, results[1]['b'])
}
