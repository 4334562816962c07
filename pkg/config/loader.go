// Copyright 2025 walteh LLC
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

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/walteh/importfix/pkg/text"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape; nil fields keep their defaults
type fileConfig struct {
	Directory  *string                `json:"directory,omitempty" yaml:"directory,omitempty" hcl:"directory,optional"`
	Extensions []string               `json:"extensions,omitempty" yaml:"extensions,omitempty" hcl:"extensions,optional"`
	Rules      []text.ReplacementRule `json:"rules,omitempty" yaml:"rules,omitempty" hcl:"rule,block"`
	DryRun     *bool                  `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`
}

// LoadConfig loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .importfix will try both YAML and HCL formats
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var fc *fileConfig

	switch ext {
	case ".importfix":
		// Try YAML first, then HCL
		fc, err = loadYAML(data)
		if err != nil {
			var hclErr error
			fc, hclErr = loadHCL(data, path)
			if hclErr != nil {
				return nil, errors.Errorf("failed to parse %s as YAML or HCL: %w", path, hclErr)
			}
			err = nil
		}
	case ".json":
		fc, err = loadJSON(data)
	case ".yaml", ".yml":
		fc, err = loadYAML(data)
	case ".hcl":
		fc, err = loadHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	cfg := fc.apply(Default())
	cfg.location = path
	if err := Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// apply overlays the fields present in the file onto base
func (fc *fileConfig) apply(base *Config) *Config {
	if fc.Directory != nil {
		base.Directory = *fc.Directory
	}
	if len(fc.Extensions) > 0 {
		base.Extensions = fc.Extensions
	}
	if len(fc.Rules) > 0 {
		base.Rules = fc.Rules
	}
	if fc.DryRun != nil {
		base.DryRun = *fc.DryRun
	}
	return base
}

// loadJSON loads a configuration from JSON data
func loadJSON(data []byte) (*fileConfig, error) {
	var fc fileConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fc); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &fc, nil
}

// loadYAML loads a configuration from YAML data; an empty document is valid
func loadYAML(data []byte) (*fileConfig, error) {
	var fc fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &fc, nil
}

// loadHCL loads a configuration from HCL data
func loadHCL(data []byte, filename string) (*fileConfig, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &fc)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &fc, nil
}
