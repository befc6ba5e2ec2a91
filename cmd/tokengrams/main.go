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

// Command tokengrams exercises the suffix-table index and sampler
// packages from the shell: build an index from a raw token file, then
// query it for counts, n-gram histograms, samples, or smoothed
// probabilities.
package main

import (
	"fmt"
	"os"

	"github.com/dashstander/tokengrams/cmd/tokengrams/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tokengrams:", err)
		os.Exit(1)
	}
}
