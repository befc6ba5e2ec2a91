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
	"bufio"
	"context"
	"encoding/hex"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/dashstander/tokengrams/d"
	"github.com/dashstander/tokengrams/sampler"
	"github.com/dashstander/tokengrams/tokens"
)

// ShardManifest records, for each shard of a sharded index, the token
// file path and a checksum over the (tokens, table) file pair. This
// is supplemental to the distilled spec: nothing requires it for
// correctness, but it costs one sequential read of each shard's two
// files at open and catches a shard silently rewritten or
// truncated out from under a long-lived index.
type ShardManifest struct {
	Shards []ShardEntry `yaml:"shards"`
}

// ShardEntry is one shard's manifest record.
type ShardEntry struct {
	TokensPath string `yaml:"tokens_path"`
	Checksum   string `yaml:"checksum"`
}

// checksumShard hashes a token file and its suffix-table file
// together with xxhash (fast, non-cryptographic — this guards against
// accidental corruption or a stale table, not tampering).
func checksumShard(tokensPath string) (string, error) {
	h := xxhash.New()
	for _, p := range []string{tokensPath, TablePath(tokensPath)} {
		f, err := os.Open(p)
		if err != nil {
			return "", errors.Wrapf(err, "opening %s for checksum", p)
		}
		_, err = io.Copy(h, bufio.NewReader(f))
		f.Close()
		if err != nil {
			return "", errors.Wrapf(err, "hashing %s", p)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteShardManifest checksums each of tokenFiles together with its
// already-built table file, then writes manifestPath as YAML. It
// builds no tables: a missing table file is returned as an error.
func WriteShardManifest(tokenFiles []string, manifestPath string) error {
	manifest := ShardManifest{Shards: make([]ShardEntry, len(tokenFiles))}
	for i, p := range tokenFiles {
		sum, err := checksumShard(p)
		if err != nil {
			return err
		}
		manifest.Shards[i] = ShardEntry{TokensPath: p, Checksum: sum}
	}

	out, err := yaml.Marshal(&manifest)
	if err != nil {
		return errors.Wrap(err, "marshaling shard manifest")
	}
	if err := os.WriteFile(manifestPath, out, 0o644); err != nil {
		return errors.Wrapf(err, "writing shard manifest %s", manifestPath)
	}
	return nil
}

// ShardedMemmapIndex aggregates several MemmapIndex shards behind a
// single sampler.Sample[T]. count_next results are summed elementwise
// across shards, and sampling draws from those summed counts; Positions
// returns the matches of every shard, each tagged with its shard
// index. count_ngrams, unlike count_next, is NOT additive
// across shards: an n-gram spanning a shard boundary is invisible to
// both shards, and an n-gram that happens to occur in more than one
// shard is double-counted in the summed histogram. This approximation
// is accepted rather than worked around — see the Non-goals on
// distributed query routing.
type ShardedMemmapIndex[T tokens.Token] struct {
	shards    []*MemmapIndex[T]
	vocabSize int
	cache     *sampler.KNCache
}

// OpenShardedIndex opens every shard named in manifestPath, verifying
// each one's checksum against the recorded value before trusting it.
func OpenShardedIndex[T tokens.Token](manifestPath string, vocabSizeOverride *int) (*ShardedMemmapIndex[T], error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading shard manifest %s", manifestPath)
	}
	var manifest ShardManifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, errors.Wrapf(err, "parsing shard manifest %s", manifestPath)
	}

	shards := make([]*MemmapIndex[T], len(manifest.Shards))
	for i, entry := range manifest.Shards {
		sum, err := checksumShard(entry.TokensPath)
		if err != nil {
			return nil, err
		}
		if sum != entry.Checksum {
			return nil, errors.Wrapf(ErrShapeMismatch,
				"shard %s checksum %s does not match manifest value %s",
				entry.TokensPath, sum, entry.Checksum)
		}

		idx, err := OpenMemmapIndex[T](entry.TokensPath, vocabSizeOverride)
		if err != nil {
			return nil, err
		}
		shards[i] = idx
	}

	vocab := tokens.VocabSize[T](vocabSizeOverride)
	for _, shard := range shards {
		d.PanicIfFalse(shard.VocabSize() == vocab,
			"index: shard vocab size %d does not match sharded index vocab size %d; all shards of a ShardedMemmapIndex must share one vocabSizeOverride",
			shard.VocabSize(), vocab)
	}
	return &ShardedMemmapIndex[T]{
		shards:    shards,
		vocabSize: vocab,
		cache:     sampler.NewKNCache(),
	}, nil
}

// Close closes every shard, returning the first error encountered (if
// any), after attempting to close all of them.
func (s *ShardedMemmapIndex[T]) Close() error {
	var first error
	for _, shard := range s.shards {
		if err := shard.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (s *ShardedMemmapIndex[T]) VocabSize() int { return s.vocabSize }

// Len returns the total token count summed across shards.
func (s *ShardedMemmapIndex[T]) Len() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Len()
	}
	return total
}

// CountNext sums CountNext across every shard, in parallel.
func (s *ShardedMemmapIndex[T]) CountNext(query []T) []int {
	results := make([][]int, len(s.shards))
	eg, _ := errgroup.WithContext(context.Background())
	for i, shard := range s.shards {
		i, shard := i, shard
		eg.Go(func() error {
			results[i] = shard.CountNext(query)
			return nil
		})
	}
	_ = eg.Wait()

	total := make([]int, s.vocabSize)
	for _, r := range results {
		for t, c := range r {
			total[t] += c
		}
	}
	return total
}

// CountNextSlice implements sampler.Sample[T].
func (s *ShardedMemmapIndex[T]) CountNextSlice(query []T) []int { return s.CountNext(query) }

// CountNgrams sums the per-shard n-gram histograms. See the type doc
// for the documented non-additivity this approximation accepts.
func (s *ShardedMemmapIndex[T]) CountNgrams(n int) map[int]int {
	total := map[int]int{}
	for _, shard := range s.shards {
		for occ, count := range shard.CountNgrams(n) {
			total[occ] += count
		}
	}
	return total
}

// Cache implements sampler.Sample[T].
func (s *ShardedMemmapIndex[T]) Cache() *sampler.KNCache { return s.cache }

// Contains reports whether query occurs in any shard.
func (s *ShardedMemmapIndex[T]) Contains(query []T) bool {
	for _, shard := range s.shards {
		if shard.Contains(query) {
			return true
		}
	}
	return false
}

// Positions returns every occurrence of query across all shards, each
// annotated with its shard index since raw offsets are only unique
// within a shard.
type ShardedPosition struct {
	Shard  int
	Offset uint64
}

func (s *ShardedMemmapIndex[T]) Positions(query []T) []ShardedPosition {
	var out []ShardedPosition
	for i, shard := range s.shards {
		for _, p := range shard.Positions(query) {
			out = append(out, ShardedPosition{Shard: i, Offset: p})
		}
	}
	return out
}

var _ sampler.Sample[uint16] = (*ShardedMemmapIndex[uint16])(nil)
