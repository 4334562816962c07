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

package text

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RegexpTextReplacer implements TextReplacer using RE2 substitutions
type RegexpTextReplacer struct {
	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

// NewRegexpTextReplacer creates a new RegexpTextReplacer
func NewRegexpTextReplacer() *RegexpTextReplacer {
	return &RegexpTextReplacer{
		cache: make(map[string]*regexp.Regexp),
	}
}

// compile returns the compiled pattern, reusing earlier compilations
func (r *RegexpTextReplacer) compile(pattern string) (*regexp.Regexp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if re, ok := r.cache[pattern]; ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	r.cache[pattern] = re
	return re, nil
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *RegexpTextReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	current := string(originalContent)
	for i, rule := range rules {
		if rule.Pattern == "" {
			continue
		}

		re, err := r.compile(rule.Pattern)
		if err != nil {
			return nil, errors.Errorf("rule %d: compiling pattern %q: %w", i, rule.Pattern, err)
		}

		matches := len(re.FindAllStringIndex(current, -1))
		if matches == 0 {
			continue
		}

		zerolog.Ctx(ctx).Trace().
			Str("rule", rule.Name).
			Int("matches", matches).
			Msg("applying rule")

		current = re.ReplaceAllString(current, rule.Replacement)
		result.ReplacementCount += matches
	}

	result.ModifiedContent = []byte(current)
	result.WasModified = !bytes.Equal(originalContent, result.ModifiedContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *RegexpTextReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.Pattern == "" {
			return errors.Errorf("rule %d: pattern is required", i)
		}
		if _, err := r.compile(rule.Pattern); err != nil {
			return errors.Errorf("rule %d: invalid pattern %q: %w", i, rule.Pattern, err)
		}
	}
	return nil
}
