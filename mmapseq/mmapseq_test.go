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

package mmapseq

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateOpenWritableRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table")

	require.NoError(t, Create[uint64](path, 5))

	w, err := OpenWritable[uint64](path)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		w.Set(i, uint64(i*10))
	}
	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	r, err := Open[uint64](path)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, 5, r.Len())
	for i := 0; i < 5; i++ {
		require.Equal(t, uint64(i*10), r.At(i))
	}
}

func TestOpenRejectsMisshapenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tokens")

	require.NoError(t, Create[uint64](path, 1))
	// Truncate to an odd length so it's no longer a multiple of 8.
	require.NoError(t, os.Truncate(path, 5))

	_, err := Open[uint64](path)
	require.Error(t, err)
}

func TestViewIsZeroCopySubrange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table")

	require.NoError(t, Create[uint32](path, 4))
	w, err := OpenWritable[uint32](path)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		w.Set(i, uint32(i))
	}
	require.NoError(t, w.Close())

	r, err := Open[uint32](path)
	require.NoError(t, err)
	defer r.Close()

	v := r.View(1, 3)
	require.Equal(t, []uint32{1, 2}, v)
}

func TestEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty")
	require.NoError(t, Create[uint16](path, 0))

	r, err := Open[uint16](path)
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, 0, r.Len())
}
