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

// Package index assembles the suffix-table, mmap, and sampling
// building blocks into the three index flavors an application
// actually constructs: an in-memory index built straight from a
// token slice, a single memory-mapped index backed by files on disk,
// and a shard of several memmap indices queried as one. All three
// implement sampler.Sample[T], so every sampling and smoothing
// function in package sampler works unmodified against any of them.
package index

import "github.com/pkg/errors"

// ErrShapeMismatch is returned when an on-disk table file's entry
// count doesn't match its token file's token count, or when a sharded
// manifest's recorded checksum doesn't match the files it names. A
// file whose length is not a multiple of its element size is reported
// by mmapseq.Open with a plain error instead.
var ErrShapeMismatch = errors.New("index: file shape mismatch")
