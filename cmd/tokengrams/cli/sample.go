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

package cli

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/dashstander/tokengrams/index"
	"github.com/dashstander/tokengrams/sampler"
)

func newSampleCmd() *cobra.Command {
	var (
		width     int
		vocabSize int
		memmap    bool
		order     int
		k         int
		smoothed  bool
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "sample <tokens-file> [query-tokens...]",
		Short: "Autoregressively sample k tokens following the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokensPath := args[0]
			rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

			switch width {
			case 16:
				query, err := parseQuery16(args[1:])
				if err != nil {
					return err
				}
				idx, closeFn, err := openIndex16(tokensPath, memmap, vocabOverride(vocabSize))
				if err != nil {
					return err
				}
				defer closeFn()
				return runSample16(cmd.Context(), idx, rng, query, order, k, smoothed)
			case 32:
				query, err := parseQuery32(args[1:])
				if err != nil {
					return err
				}
				idx, closeFn, err := openIndex32(tokensPath, memmap, vocabOverride(vocabSize))
				if err != nil {
					return err
				}
				defer closeFn()
				return runSample32(cmd.Context(), idx, rng, query, order, k, smoothed)
			default:
				return fmt.Errorf("unsupported --width %d (must be 16 or 32)", width)
			}
		},
	}

	cmd.Flags().IntVar(&width, "width", 16, "token width in bits: 16 or 32")
	cmd.Flags().IntVar(&vocabSize, "vocab", 0, "vocabulary size override")
	cmd.Flags().BoolVar(&memmap, "memmap", false, "open a pre-built memory-mapped index")
	cmd.Flags().IntVar(&order, "order", 3, "n-gram order n: condition each draw on the previous n-1 tokens")
	cmd.Flags().IntVar(&k, "k", 10, "number of tokens to sample")
	cmd.Flags().BoolVar(&smoothed, "smoothed", false, "use Kneser-Ney smoothed sampling instead of raw counts")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "PRNG seed")

	return cmd
}

func runSample16(ctx context.Context, idx sampler.Sample[uint16], rng *rand.Rand, query []uint16, order, k int, smoothed bool) error {
	var out []uint16
	var err error
	if smoothed {
		out, err = sampler.SampleSmoothed[uint16](idx, rng, query, order, k)
	} else {
		out, err = sampler.SampleUnsmoothed[uint16](ctx, idx, rng, query, order, k)
	}
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runSample32(ctx context.Context, idx sampler.Sample[uint32], rng *rand.Rand, query []uint32, order, k int, smoothed bool) error {
	var out []uint32
	var err error
	if smoothed {
		out, err = sampler.SampleSmoothed[uint32](idx, rng, query, order, k)
	} else {
		out, err = sampler.SampleUnsmoothed[uint32](ctx, idx, rng, query, order, k)
	}
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func openIndex16(tokensPath string, memmap bool, vocab *int) (sampler.Sample[uint16], func(), error) {
	if memmap {
		idx, err := index.OpenMemmapIndex[uint16](tokensPath, vocab)
		if err != nil {
			return nil, func() {}, err
		}
		return idx, func() { idx.Close() }, nil
	}
	raw, err := readTokenFile16(tokensPath)
	if err != nil {
		return nil, func() {}, err
	}
	return index.NewInMemoryIndex[uint16](raw, vocab, newLogger()), func() {}, nil
}

func openIndex32(tokensPath string, memmap bool, vocab *int) (sampler.Sample[uint32], func(), error) {
	if memmap {
		idx, err := index.OpenMemmapIndex[uint32](tokensPath, vocab)
		if err != nil {
			return nil, func() {}, err
		}
		return idx, func() { idx.Close() }, nil
	}
	raw, err := readTokenFile32(tokensPath)
	if err != nil {
		return nil, func() {}, err
	}
	return index.NewInMemoryIndex[uint32](raw, vocab, newLogger()), func() {}, nil
}
