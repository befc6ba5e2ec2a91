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
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newNgramsCmd() *cobra.Command {
	var (
		width     int
		vocabSize int
		memmap    bool
		n         int
	)

	cmd := &cobra.Command{
		Use:   "ngrams <tokens-file>",
		Short: "Print the count_ngrams(n) occurrence-count histogram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokensPath := args[0]
			var hist map[int]int
			var closeFn func()
			var err error

			switch width {
			case 16:
				hist, closeFn, err = ngrams16(tokensPath, n, memmap, vocabOverride(vocabSize))
			case 32:
				hist, closeFn, err = ngrams32(tokensPath, n, memmap, vocabOverride(vocabSize))
			default:
				return fmt.Errorf("unsupported --width %d (must be 16 or 32)", width)
			}
			if err != nil {
				return err
			}
			defer closeFn()

			printHistogram(hist)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 16, "token width in bits: 16 or 32")
	cmd.Flags().IntVar(&vocabSize, "vocab", 0, "vocabulary size override")
	cmd.Flags().BoolVar(&memmap, "memmap", false, "open a pre-built memory-mapped index")
	cmd.Flags().IntVar(&n, "n", 1, "n-gram order")

	return cmd
}

func printHistogram(hist map[int]int) {
	occurrences := make([]int, 0, len(hist))
	for occ := range hist {
		occurrences = append(occurrences, occ)
	}
	sort.Ints(occurrences)
	for _, occ := range occurrences {
		fmt.Printf("occurs %d times: %d distinct n-grams\n", occ, hist[occ])
	}
}

func ngrams16(tokensPath string, n int, memmap bool, vocab *int) (map[int]int, func(), error) {
	idx, closeFn, err := openIndex16(tokensPath, memmap, vocab)
	if err != nil {
		return nil, func() {}, err
	}
	return idx.CountNgrams(n), closeFn, nil
}

func ngrams32(tokensPath string, n int, memmap bool, vocab *int) (map[int]int, func(), error) {
	idx, closeFn, err := openIndex32(tokensPath, memmap, vocab)
	if err != nil {
		return nil, func() {}, err
	}
	return idx.CountNgrams(n), closeFn, nil
}
