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
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// BuildManifest describes a build job loadable from YAML, letting a
// caller check an index's build parameters into source control
// instead of re-typing flags every time.
type BuildManifest struct {
	TokenWidth int      `yaml:"token_width"`
	VocabSize  int      `yaml:"vocab_size"`
	Memmap     bool     `yaml:"memmap"`
	Tokens     string   `yaml:"tokens"`
	ShardFiles []string `yaml:"shard_files"`
	Manifest   string   `yaml:"manifest"`
}

// LoadBuildManifest reads and parses a YAML build manifest.
func LoadBuildManifest(path string) (*BuildManifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading build manifest %s", path)
	}
	var m BuildManifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing build manifest %s", path)
	}
	return &m, nil
}
