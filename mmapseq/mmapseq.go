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

// Package mmapseq wraps a memory-mapped file region as a typed,
// read-only, random-access sequence of fixed-width little-endian
// unsigned integers, so the suffix table and corpus can be paged in on
// demand instead of held on the heap.
package mmapseq

import (
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// Elem is the set of fixed-width unsigned integers a mapped file may be
// reinterpreted as: tokens are 16 or 32 bits, suffix table offsets are
// 64 bits.
type Elem interface {
	~uint16 | ~uint32 | ~uint64
}

// Slice is a read-only, O(1)-indexed view over a memory-mapped byte
// range, reinterpreted as a packed array of T. The zero value is not
// usable; construct with Open.
//
// The reinterpretation assumes a little-endian host, matching the
// on-disk wire format documented in the package-level spec for this
// module; this holds for every platform the rest of this module's
// dependency stack targets (amd64, arm64).
type Slice[T Elem] struct {
	file *os.File
	m    mmap.MMap
	data []T
}

// Open memory-maps path read-only and reinterprets its bytes as a
// packed array of T. The file length must be a multiple of sizeof(T);
// otherwise Open returns an error saying so.
func Open[T Elem](path string) (*Slice[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "mmapseq: open %s", path)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "mmapseq: stat %s", path)
	}

	var zero T
	elemSize := int64(unsafe.Sizeof(zero))
	if fi.Size()%elemSize != 0 {
		f.Close()
		return nil, errors.Errorf("mmapseq: %s has length %d, not a multiple of %d", path, fi.Size(), elemSize)
	}

	if fi.Size() == 0 {
		f.Close()
		return &Slice[T]{data: nil}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "mmapseq: mmap %s", path)
	}

	n := int64(len(m)) / elemSize
	data := unsafe.Slice((*T)(unsafe.Pointer(&m[0])), n)

	return &Slice[T]{file: f, m: m, data: data}, nil
}

// Len returns the number of elements in the sequence.
func (s *Slice[T]) Len() int {
	return len(s.data)
}

// At returns the element at index i.
func (s *Slice[T]) At(i int) T {
	return s.data[i]
}

// View returns the zero-copy sub-slice data[lo:hi]. The returned slice
// is only valid for the lifetime of s; it must not be retained past a
// call to Close.
func (s *Slice[T]) View(lo, hi int) []T {
	return s.data[lo:hi]
}

// Raw returns the full backing slice. Callers must not mutate it
// unless s was obtained from OpenWritable.
func (s *Slice[T]) Raw() []T {
	return s.data
}

// Close unmaps the region and closes the underlying file. Any slice
// views obtained from View/Raw are invalidated.
func (s *Slice[T]) Close() error {
	var err error
	if s.m != nil {
		err = s.m.Unmap()
	}
	if s.file != nil {
		if cerr := s.file.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Create creates path sized for n elements of T, all zero, ready to be
// mapped read-write via OpenWritable and filled in place. This is the
// path a builder uses to construct a suffix table directly inside its
// output file instead of holding it on the heap.
func Create[T Elem](path string, n int) error {
	var zero T
	elemSize := int64(unsafe.Sizeof(zero))

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrapf(err, "mmapseq: create %s", path)
	}
	defer f.Close()

	if err := f.Truncate(int64(n) * elemSize); err != nil {
		return errors.Wrapf(err, "mmapseq: truncate %s", path)
	}
	return nil
}

// OpenWritable memory-maps path read-write and reinterprets it as a
// packed array of T, for builders that construct their output in place.
func OpenWritable[T Elem](path string) (*Slice[T], error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "mmapseq: open %s", path)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "mmapseq: stat %s", path)
	}

	if fi.Size() == 0 {
		return &Slice[T]{file: f, data: nil}, nil
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "mmapseq: mmap %s", path)
	}

	var zero T
	elemSize := int64(unsafe.Sizeof(zero))
	n := int64(len(m)) / elemSize
	data := unsafe.Slice((*T)(unsafe.Pointer(&m[0])), n)

	return &Slice[T]{file: f, m: m, data: data}, nil
}

// Set writes v at index i. Only valid on a Slice obtained from
// Create+OpenWritable.
func (s *Slice[T]) Set(i int, v T) {
	s.data[i] = v
}

// Flush synchronizes mapped writes to disk.
func (s *Slice[T]) Flush() error {
	if s.m == nil {
		return nil
	}
	return s.m.Flush()
}
