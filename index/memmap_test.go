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
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTokenFile(t *testing.T, dir, name, s string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	buf := make([]byte, len(s)*2)
	for i, c := range []byte(s) {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(c))
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestBuildAndOpenMemmapIndex(t *testing.T) {
	dir := t.TempDir()
	path := writeTokenFile(t, dir, "corpus.bin", "aaab")

	built, err := BuildMemmapIndex[uint16](path, nil, nil)
	require.NoError(t, err)
	defer built.Close()

	counts := built.CountNext(asTokens("a"))
	require.Equal(t, 2, counts['a'])
	require.Equal(t, 1, counts['b'])

	reopened, err := OpenMemmapIndex[uint16](path, nil)
	require.NoError(t, err)
	defer reopened.Close()

	counts2 := reopened.CountNext(asTokens("a"))
	require.Equal(t, counts, counts2)
}

func TestOpenMemmapIndexShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	path := writeTokenFile(t, dir, "corpus.bin", "aaab")

	built, err := BuildMemmapIndex[uint16](path, nil, nil)
	require.NoError(t, err)
	require.NoError(t, built.Close())

	// Corrupt the table file so its length no longer matches.
	require.NoError(t, os.Truncate(TablePath(path), 8))

	_, err = OpenMemmapIndex[uint16](path, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrShapeMismatch)
}
