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

// Package normalize rewrites versioned import strings in a directory of source files
package normalize

import (
	"context"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/importfix/pkg/config"
	"github.com/walteh/importfix/pkg/log"
	"github.com/walteh/importfix/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the normalizer
type Options struct {
	// Config supplies the extension patterns, rules and dry-run flag
	Config *config.Config
	// Replacer applies the rules; defaults to a RegexpTextReplacer
	Replacer text.TextReplacer
}

// 🎯 Normalizer scans one directory level and rewrites eligible files in place
type Normalizer struct {
	config   *config.Config
	replacer text.TextReplacer
}

// 🏭 New creates a new normalizer with the given options
func New(opts Options) (*Normalizer, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewRegexpTextReplacer()
	}
	if err := opts.Replacer.ValidateRules(opts.Config.Rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	return &Normalizer{
		config:   opts.Config,
		replacer: opts.Replacer,
	}, nil
}

// 🏃 Run normalizes the configured directory
func (n *Normalizer) Run(ctx context.Context) (int, error) {
	return n.Normalize(ctx, n.config.Directory)
}

// 🏃 Normalize rewrites every eligible file directly inside dir and returns
// how many files changed. The first I/O failure aborts the run; files
// written before it stay written. Console lines go to the log.Logger
// stored in ctx.
func (n *Normalizer) Normalize(ctx context.Context, dir string) (int, error) {
	logger := zerolog.Ctx(ctx)
	reporter := log.FromContext(ctx)
	logger.Debug().Str("directory", dir).Msg("scanning directory")

	if n.config.DryRun {
		reporter.Infof("dry run: files in %s will not be written", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Errorf("listing directory %s: %w", dir, err)
	}

	fixed := 0
	for _, entry := range entries {
		if !n.eligible(entry.Name()) {
			logger.Trace().Str("entry", entry.Name()).Msg("skipping entry")
			continue
		}
		if entry.IsDir() {
			reporter.Warningf("skipping directory %s", filepath.Join(dir, entry.Name()))
			continue
		}

		path := filepath.Join(dir, entry.Name())
		replacements, changed, err := n.normalizeFile(ctx, path)
		if err != nil {
			return fixed, errors.Errorf("processing file %s: %w", path, err)
		}
		if !changed {
			continue
		}

		reporter.Fixed(ctx, log.FileOperation{
			Path:         path,
			Replacements: replacements,
			DryRun:       n.config.DryRun,
		})
		fixed++
	}

	reporter.Summary(ctx, fixed)

	return fixed, nil
}

// 🔍 eligible reports whether a base name matches one of the extension patterns
func (n *Normalizer) eligible(name string) bool {
	for _, pattern := range n.config.Extensions {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// 📄 normalizeFile applies the rules to one file and writes it back if the content changed
func (n *Normalizer) normalizeFile(ctx context.Context, path string) (int, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false, errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	result, err := n.replacer.ReplaceText(ctx, f, n.config.Rules)
	if err != nil {
		return 0, false, errors.Errorf("replacing text: %w", err)
	}
	if !utf8.Valid(result.OriginalContent) {
		return 0, false, errors.Errorf("file is not valid UTF-8")
	}

	if !result.WasModified {
		return 0, false, nil
	}

	if n.config.DryRun {
		return result.ReplacementCount, true, nil
	}

	if err := writeFileInPlace(path, result.ModifiedContent); err != nil {
		return 0, false, errors.Errorf("writing file: %w", err)
	}

	return result.ReplacementCount, true, nil
}

// 💾 writeFileInPlace truncates and rewrites the file through its existing
// inode, so mode, owner, hard links and symlinks are left as they were.
func writeFileInPlace(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return errors.Errorf("opening file for writing: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return errors.Errorf("writing content: %w", err)
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("closing file: %w", err)
	}

	return nil
}
