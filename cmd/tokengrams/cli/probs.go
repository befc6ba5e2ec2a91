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

	"github.com/dashstander/tokengrams/sampler"
)

func newProbsCmd() *cobra.Command {
	var (
		width     int
		vocabSize int
		memmap    bool
	)

	cmd := &cobra.Command{
		Use:   "probs <tokens-file> [query-tokens...]",
		Short: "Print get_smoothed_probs: the Kneser-Ney interpolated distribution over the next token",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokensPath := args[0]

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
				printProbs(sampler.GetSmoothedProbs[uint16](idx, query))
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
				printProbs(sampler.GetSmoothedProbs[uint32](idx, query))
			default:
				return fmt.Errorf("unsupported --width %d (must be 16 or 32)", width)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 16, "token width in bits: 16 or 32")
	cmd.Flags().IntVar(&vocabSize, "vocab", 0, "vocabulary size override")
	cmd.Flags().BoolVar(&memmap, "memmap", false, "open a pre-built memory-mapped index")

	return cmd
}

func printProbs(probs []float64) {
	for t, p := range probs {
		if p > 1e-9 {
			fmt.Printf("%d\t%.6f\n", t, p)
		}
	}
}
