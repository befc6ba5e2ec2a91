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

	"github.com/spf13/cobra"
)

func newCountCmd() *cobra.Command {
	var (
		width     int
		vocabSize int
		memmap    bool
	)

	cmd := &cobra.Command{
		Use:   "count <tokens-file> [query-tokens...]",
		Short: "Print count_next: how often each vocabulary token follows the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokensPath := args[0]
			queryArgs := args[1:]

			switch width {
			case 16:
				query, err := parseQuery16(queryArgs)
				if err != nil {
					return err
				}
				counts, closeFn, err := countNext16(tokensPath, query, memmap, vocabOverride(vocabSize))
				if err != nil {
					return err
				}
				defer closeFn()
				printCounts(counts)
			case 32:
				query, err := parseQuery32(queryArgs)
				if err != nil {
					return err
				}
				counts, closeFn, err := countNext32(tokensPath, query, memmap, vocabOverride(vocabSize))
				if err != nil {
					return err
				}
				defer closeFn()
				printCounts(counts)
			default:
				return fmt.Errorf("unsupported --width %d (must be 16 or 32)", width)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 16, "token width in bits: 16 or 32")
	cmd.Flags().IntVar(&vocabSize, "vocab", 0, "vocabulary size override")
	cmd.Flags().BoolVar(&memmap, "memmap", false, "open a pre-built memory-mapped index instead of loading the tokens file into memory")

	return cmd
}

func printCounts(counts []int) {
	for t, c := range counts {
		if c > 0 {
			fmt.Printf("%d\t%d\n", t, c)
		}
	}
}

func countNext16(tokensPath string, query []uint16, memmap bool, vocab *int) ([]int, func(), error) {
	idx, closeFn, err := openIndex16(tokensPath, memmap, vocab)
	if err != nil {
		return nil, func() {}, err
	}
	return idx.CountNextSlice(query), closeFn, nil
}

func countNext32(tokensPath string, query []uint32, memmap bool, vocab *int) ([]int, func(), error) {
	idx, closeFn, err := openIndex32(tokensPath, memmap, vocab)
	if err != nil {
		return nil, func() {}, err
	}
	return idx.CountNextSlice(query), closeFn, nil
}
