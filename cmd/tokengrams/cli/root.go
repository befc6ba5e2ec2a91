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

// Package cli wires the tokengrams subcommands onto a cobra root.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verbose bool

// Execute builds and runs the tokengrams root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "tokengrams",
		Short:         "Suffix-table n-gram counting and Kneser-Ney sampling over token corpora",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log build and query progress")

	root.AddCommand(newBuildCmd())
	root.AddCommand(newCountCmd())
	root.AddCommand(newNgramsCmd())
	root.AddCommand(newSampleCmd())
	root.AddCommand(newProbsCmd())

	return root.Execute()
}

// newLogger returns an Info-level console logger when --verbose is
// set, the Go-native analogue of the spec's boolean verbose flag, and
// a no-op logger otherwise so library callers pay nothing for
// logging they didn't ask for.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
