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
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"

	"github.com/dashstander/tokengrams/index"
)

func newBuildCmd() *cobra.Command {
	var (
		width      int
		vocabSize  int
		manifest   string
		shardFiles []string
		shardOut   string
	)

	cmd := &cobra.Command{
		Use:   "build [tokens-file]",
		Short: "Build a memory-mapped suffix table next to a raw token file",
		Long: "Sorts a raw little-endian token file into its suffix table, written " +
			"as tokens-file.table. With --shard-file (repeatable) or a manifest " +
			"listing shard_files, builds one table per shard and writes a checksummed " +
			"shard manifest instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			if manifest != "" {
				m, err := LoadBuildManifest(manifest)
				if err != nil {
					return err
				}
				width = m.TokenWidth
				vocabSize = m.VocabSize
				shardFiles = m.ShardFiles
				shardOut = m.Manifest
				if m.Tokens != "" {
					args = []string{m.Tokens}
				}
			}

			if len(shardFiles) > 0 {
				return buildShards(width, vocabSize, shardFiles, shardOut, logger)
			}

			if len(args) != 1 {
				return fmt.Errorf("build requires exactly one tokens-file argument (or --shard-file/--manifest)")
			}
			return buildSingle(width, vocabSize, args[0], logger)
		},
	}

	cmd.Flags().IntVar(&width, "width", 16, "token width in bits: 16 or 32")
	cmd.Flags().IntVar(&vocabSize, "vocab", 0, "vocabulary size override; defaults to the full range of --width")
	cmd.Flags().StringVar(&manifest, "manifest", "", "YAML build manifest (overrides other flags)")
	cmd.Flags().StringArrayVar(&shardFiles, "shard-file", nil, "a shard's token file; repeat for multiple shards")
	cmd.Flags().StringVar(&shardOut, "shard-manifest-out", "shards.yaml", "output path for the shard manifest")

	return cmd
}

// newBuildProgress drives an mpb bar over a build of the given total
// size when verbose logging is on; it returns a nil callback (no
// progress reporting) and a no-op waiter otherwise so library-style calls from tests or scripted
// builds never pay for a bar they didn't ask to see.
func newBuildProgress(total int) (onProgress func(done, total int), wait func()) {
	if !verbose {
		return nil, func() {}
	}
	p := mpb.New(mpb.WithOutput(os.Stderr), mpb.WithWidth(64))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(decor.Name("sorting suffixes")),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return func(n, _ int) { bar.IncrBy(n) }, p.Wait
}

func buildSingle(width, vocabSize int, tokensPath string, logger *zap.Logger) error {
	switch width {
	case 16:
		n, err := tokenFileLen(tokensPath, 2)
		if err != nil {
			return err
		}
		onProgress, wait := newBuildProgress(n)
		idx, err := index.BuildMemmapIndexWithProgress[uint16](tokensPath, vocabOverride(vocabSize), logger, onProgress)
		wait()
		if err != nil {
			return err
		}
		defer idx.Close()
		fmt.Printf("built %s (%s tokens)\n", index.TablePath(tokensPath), humanize.Comma(int64(idx.Len())))
		return nil
	case 32:
		n, err := tokenFileLen(tokensPath, 4)
		if err != nil {
			return err
		}
		onProgress, wait := newBuildProgress(n)
		idx, err := index.BuildMemmapIndexWithProgress[uint32](tokensPath, vocabOverride(vocabSize), logger, onProgress)
		wait()
		if err != nil {
			return err
		}
		defer idx.Close()
		fmt.Printf("built %s (%s tokens)\n", index.TablePath(tokensPath), humanize.Comma(int64(idx.Len())))
		return nil
	default:
		return fmt.Errorf("unsupported --width %d (must be 16 or 32)", width)
	}
}

func tokenFileLen(path string, elemSize int64) (int, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return int(fi.Size() / elemSize), nil
}

func buildShards(width, vocabSize int, shardFiles []string, shardOut string, logger *zap.Logger) error {
	switch width {
	case 16:
		for _, f := range shardFiles {
			idx, err := index.BuildMemmapIndex[uint16](f, vocabOverride(vocabSize), logger)
			if err != nil {
				return err
			}
			idx.Close()
		}
	case 32:
		for _, f := range shardFiles {
			idx, err := index.BuildMemmapIndex[uint32](f, vocabOverride(vocabSize), logger)
			if err != nil {
				return err
			}
			idx.Close()
		}
	default:
		return fmt.Errorf("unsupported --width %d (must be 16 or 32)", width)
	}
	if err := index.WriteShardManifest(shardFiles, shardOut); err != nil {
		return err
	}
	fmt.Printf("wrote shard manifest %s over %d shards\n", shardOut, len(shardFiles))
	return nil
}
