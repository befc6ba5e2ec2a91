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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildShard(t *testing.T, dir, name, s string) string {
	t.Helper()
	path := writeTokenFile(t, dir, name, s)
	idx, err := BuildMemmapIndex[uint16](path, nil, nil)
	require.NoError(t, err)
	require.NoError(t, idx.Close())
	return path
}

func TestShardedIndexCountNextSumsShards(t *testing.T) {
	dir := t.TempDir()
	p1 := buildShard(t, dir, "shard0.bin", "aaab")
	p2 := buildShard(t, dir, "shard1.bin", "aab")

	manifestPath := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, WriteShardManifest([]string{p1, p2}, manifestPath))

	sharded, err := OpenShardedIndex[uint16](manifestPath, nil)
	require.NoError(t, err)
	defer sharded.Close()

	counts := sharded.CountNext(asTokens("a"))
	// shard0: "aaab" -> after 'a': 2 a's, 1 b. shard1: "aab" -> after 'a': 1 a, 1 b.
	require.Equal(t, 3, counts['a'])
	require.Equal(t, 2, counts['b'])
	require.Equal(t, 7, sharded.Len())
}

func TestShardedIndexDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	p1 := buildShard(t, dir, "shard0.bin", "aaab")

	manifestPath := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, WriteShardManifest([]string{p1}, manifestPath))

	// Tamper with the shard's token file after the manifest was written.
	require.NoError(t, os.WriteFile(p1, []byte{0, 0, 0, 0, 1, 0, 1, 0}, 0o644))

	_, err := OpenShardedIndex[uint16](manifestPath, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestShardedIndexPositionsAnnotatesShard(t *testing.T) {
	dir := t.TempDir()
	p1 := buildShard(t, dir, "shard0.bin", "banana")
	p2 := buildShard(t, dir, "shard1.bin", "ananas")

	manifestPath := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, WriteShardManifest([]string{p1, p2}, manifestPath))

	sharded, err := OpenShardedIndex[uint16](manifestPath, nil)
	require.NoError(t, err)
	defer sharded.Close()

	positions := sharded.Positions(asTokens("an"))
	require.NotEmpty(t, positions)
	shardsSeen := map[int]bool{}
	for _, p := range positions {
		shardsSeen[p.Shard] = true
	}
	require.True(t, shardsSeen[0] || shardsSeen[1])
}
