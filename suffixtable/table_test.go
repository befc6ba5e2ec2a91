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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildFromString(s string) *Table[uint16] {
	text := make(MemText[uint16], len(s))
	for i, c := range []byte(s) {
		text[i] = uint16(c)
	}
	raw := make([]uint64, len(text))
	BuildRaw[uint16](text, raw, nil, nil)
	return New[uint16](text, MemOffsets(raw))
}

func tok(c byte) uint16 { return uint16(c) }

func TestIsSorted(t *testing.T) {
	st := buildFromString("aaab")
	require.True(t, st.IsSorted())
}

func TestCountNextExists(t *testing.T) {
	st := buildFromString("aaab")
	counts := st.CountNext([]uint16{tok('a')}, 256)
	require.Equal(t, 2, counts[tok('a')])
	require.Equal(t, 1, counts[tok('b')])
}

func TestCountNextEmptyQuery(t *testing.T) {
	st := buildFromString("aaab")
	counts := st.CountNext([]uint16{}, 256)
	require.Equal(t, 3, counts[tok('a')])
	require.Equal(t, 1, counts[tok('b')])
}

func TestPositionsQuickBrownFox(t *testing.T) {
	st := buildFromString("The quick brown fox was very quick.")
	query := []uint16{tok('q'), tok('u'), tok('i'), tok('c'), tok('k')}
	positions := st.Positions(query)

	got := map[uint64]bool{}
	for _, p := range positions {
		got[p] = true
	}
	require.Equal(t, map[uint64]bool{4: true, 29: true}, got)
}

func TestContains(t *testing.T) {
	st := buildFromString("The quick brown fox.")
	require.True(t, st.Contains(toks("quick")))
	require.False(t, st.Contains(toks("slow")))
}

func TestBatchCountNext(t *testing.T) {
	st := buildFromString("aaab")
	queries := make([][]uint16, 10000)
	for i := range queries {
		queries[i] = []uint16{tok('a')}
	}
	results := st.BatchCountNext(queries, 256)
	require.Equal(t, 2, results[0][tok('a')])
	require.Equal(t, 1, results[0][tok('b')])
	require.Len(t, results, 10000)
}

func TestRandomCorpusBigramPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 10000
	raw := make([]byte, n)
	for i := range raw {
		raw[i] = byte('a' + rng.Intn(4))
	}
	text := make(MemText[uint16], n)
	for i, b := range raw {
		text[i] = uint16(b)
	}
	offsets := make([]uint64, n)
	BuildRaw[uint16](text, offsets, nil, nil)
	st := New[uint16](text, MemOffsets(offsets))

	require.True(t, st.IsSorted())

	for i := 0; i+1 < n; i++ {
		q := text[i : i+2]
		want := map[int]bool{}
		for j := 0; j+1 < n; j++ {
			if text[j] == q[0] && text[j+1] == q[1] {
				want[j] = true
			}
		}
		positions := st.Positions(q)
		got := map[int]bool{}
		for _, p := range positions {
			got[int(p)] = true
		}
		require.Equal(t, want, got, "bigram at %d", i)
	}
}

func TestCountConsistencyProperty(t *testing.T) {
	st := buildFromString("The quick brown fox was very quick.")
	for _, q := range []string{"quick", "o", "", "was"} {
		query := toks(q)
		counts := st.CountNext(query, 256)
		var sum int
		for _, c := range counts {
			sum += c
		}
		positions := st.Positions(query)
		// Every occurrence either has a following token (counted) or is
		// the end of the corpus (not counted) — sum <= len(positions).
		require.LessOrEqual(t, sum, len(positions))
	}
}

func TestCountNgramsUnigramMatchesCountNext(t *testing.T) {
	st := buildFromString("aaab")
	hist := st.CountNgrams(1)
	// 'a' occurs 3 times, 'b' occurs once.
	require.Equal(t, 1, hist[3])
	require.Equal(t, 1, hist[1])
}

func toks(s string) []uint16 {
	out := make([]uint16, len(s))
	for i, c := range []byte(s) {
		out[i] = uint16(c)
	}
	return out
}
