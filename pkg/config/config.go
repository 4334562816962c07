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
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/importfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// DefaultDirectory is scanned when nothing else is configured
const DefaultDirectory = "components/ui"

// DefaultExtensions returns the base-name patterns of eligible files
func DefaultExtensions() []string {
	return []string{"*.tsx", "*.ts"}
}

// 📚 Config represents the complete configuration
type Config struct {
	Directory  string                 // Directory to scan, not recursed
	Extensions []string               // Base-name glob patterns of eligible files
	Rules      []text.ReplacementRule // Substitutions, applied in order
	DryRun     bool                   // Report changes without writing

	location string
}

// 🏭 Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Directory:  DefaultDirectory,
		Extensions: DefaultExtensions(),
		Rules:      text.DefaultRules(),
	}
}

// Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks if the configuration is valid
func Validate(ctx context.Context, cfg *Config) error {
	if strings.TrimSpace(cfg.Directory) == "" {
		return errors.Errorf("directory is required")
	}
	if len(cfg.Extensions) == 0 {
		return errors.Errorf("at least one extension is required")
	}
	for i, ext := range cfg.Extensions {
		if !doublestar.ValidatePattern(ext) {
			return errors.Errorf("extension %d: invalid pattern %q", i, ext)
		}
	}
	if err := text.NewRegexpTextReplacer().ValidateRules(cfg.Rules); err != nil {
		return errors.Errorf("validating rules: %w", err)
	}

	cfg.Directory = filepath.Clean(cfg.Directory)

	zerolog.Ctx(ctx).Debug().
		Str("directory", cfg.Directory).
		Strs("extensions", cfg.Extensions).
		Int("rules", len(cfg.Rules)).
		Msg("configuration validated")

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s [%s] (%d rules)", cfg.Directory, strings.Join(cfg.Extensions, ", "), len(cfg.Rules))
}
