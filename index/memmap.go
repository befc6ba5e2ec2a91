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

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dashstander/tokengrams/mmapseq"
	"github.com/dashstander/tokengrams/sampler"
	"github.com/dashstander/tokengrams/suffixtable"
	"github.com/dashstander/tokengrams/tokens"
)

// TablePath returns the conventional suffix-table filename for a given
// token file path.
func TablePath(tokensPath string) string { return tokensPath + ".table" }

// MemmapIndex is a suffix table whose corpus and table both live in
// memory-mapped files rather than the Go heap. Built once to disk,
// it can be reopened cheaply across process restarts without
// re-sorting, and the OS page cache does the work of keeping hot
// regions resident.
type MemmapIndex[T tokens.Token] struct {
	text      *mmapseq.Slice[T]
	offsets   *mmapseq.Slice[uint64]
	table     *suffixtable.Table[T]
	vocabSize int
	cache     *sampler.KNCache
}

// BuildMemmapIndex constructs a suffix table over the tokens already
// present in tokensPath and writes it to TablePath(tokensPath). The
// table is built directly inside its destination file (via a
// uuid-suffixed staging file, renamed into place once sorted) so
// construction never needs a second heap-sized buffer the way an
// InMemoryIndex build would.
func BuildMemmapIndex[T tokens.Token](tokensPath string, vocabSizeOverride *int, logger *zap.Logger) (*MemmapIndex[T], error) {
	return BuildMemmapIndexWithProgress[T](tokensPath, vocabSizeOverride, logger, nil)
}

// BuildMemmapIndexWithProgress is BuildMemmapIndex with an additional
// onProgress callback, invoked periodically during the sort with the
// number of table entries placed by the step just finished and the
// total; the reported counts add up to the total. The CLI uses
// this to drive an mpb progress bar; library callers that don't care
// pass nil, which is exactly what BuildMemmapIndex does.
func BuildMemmapIndexWithProgress[T tokens.Token](tokensPath string, vocabSizeOverride *int, logger *zap.Logger, onProgress func(done, total int)) (*MemmapIndex[T], error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	text, err := mmapseq.Open[T](tokensPath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening token file %s", tokensPath)
	}

	n := text.Len()
	logger.Info("building memmap index",
		zap.String("tokens_path", tokensPath),
		zap.Int("tokens", n),
		zap.String("tokens_size", humanize.Bytes(uint64(n)*uint64(tokens.Width[T]())/8)),
	)

	stagingPath := TablePath(tokensPath) + "." + uuid.NewString() + ".tmp"
	if err := mmapseq.Create[uint64](stagingPath, n); err != nil {
		return nil, errors.Wrapf(err, "creating staging table file %s", stagingPath)
	}

	staging, err := mmapseq.OpenWritable[uint64](stagingPath)
	if err != nil {
		os.Remove(stagingPath)
		return nil, errors.Wrapf(err, "opening staging table file %s", stagingPath)
	}

	suffixtable.BuildRaw[T](text, staging.Raw(), logger, onProgress)

	if err := staging.Flush(); err != nil {
		staging.Close()
		os.Remove(stagingPath)
		return nil, errors.Wrap(err, "flushing staged table")
	}
	if err := staging.Close(); err != nil {
		os.Remove(stagingPath)
		return nil, errors.Wrap(err, "closing staged table")
	}

	finalPath := TablePath(tokensPath)
	if err := os.Rename(stagingPath, finalPath); err != nil {
		os.Remove(stagingPath)
		return nil, errors.Wrapf(err, "renaming staged table into place at %s", finalPath)
	}

	offsets, err := mmapseq.Open[uint64](finalPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reopening table file %s", finalPath)
	}

	return &MemmapIndex[T]{
		text:      text,
		offsets:   offsets,
		table:     suffixtable.New[T](text, offsets),
		vocabSize: tokens.VocabSize[T](vocabSizeOverride),
		cache:     sampler.NewKNCache(),
	}, nil
}

// OpenMemmapIndex opens an already-built token/table file pair without
// rebuilding anything. It returns ErrShapeMismatch if the table file's
// length isn't consistent with the token file's length.
func OpenMemmapIndex[T tokens.Token](tokensPath string, vocabSizeOverride *int) (*MemmapIndex[T], error) {
	text, err := mmapseq.Open[T](tokensPath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening token file %s", tokensPath)
	}
	tablePath := TablePath(tokensPath)
	offsets, err := mmapseq.Open[uint64](tablePath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening table file %s", tablePath)
	}
	if offsets.Len() != text.Len() {
		return nil, errors.Wrapf(ErrShapeMismatch, "table %s has %d entries, tokens %s has %d",
			tablePath, offsets.Len(), tokensPath, text.Len())
	}

	return &MemmapIndex[T]{
		text:      text,
		offsets:   offsets,
		table:     suffixtable.New[T](text, offsets),
		vocabSize: tokens.VocabSize[T](vocabSizeOverride),
		cache:     sampler.NewKNCache(),
	}, nil
}

// Close releases the underlying memory mappings. The index must not
// be used afterward.
func (idx *MemmapIndex[T]) Close() error {
	err1 := idx.text.Close()
	err2 := idx.offsets.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

func (idx *MemmapIndex[T]) Len() int                          { return idx.table.Len() }
func (idx *MemmapIndex[T]) VocabSize() int                    { return idx.vocabSize }
func (idx *MemmapIndex[T]) Contains(query []T) bool           { return idx.table.Contains(query) }
func (idx *MemmapIndex[T]) Positions(query []T) []uint64      { return idx.table.Positions(query) }
func (idx *MemmapIndex[T]) CountNext(query []T) []int         { return idx.table.CountNext(query, idx.vocabSize) }
func (idx *MemmapIndex[T]) CountNextSlice(query []T) []int    { return idx.CountNext(query) }
func (idx *MemmapIndex[T]) CountNgrams(n int) map[int]int     { return idx.table.CountNgrams(n) }
func (idx *MemmapIndex[T]) Cache() *sampler.KNCache           { return idx.cache }
func (idx *MemmapIndex[T]) BatchCountNext(queries [][]T) [][]int {
	return idx.table.BatchCountNext(queries, idx.vocabSize)
}

var _ sampler.Sample[uint16] = (*MemmapIndex[uint16])(nil)
