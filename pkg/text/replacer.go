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
	"context"
	"io"
)

// ReplacementRule defines a single pattern substitution
type ReplacementRule struct {
	// Name identifies the package family the rule targets
	Name string `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,label"`

	// Pattern is an RE2 regular expression
	Pattern string `json:"pattern" yaml:"pattern" hcl:"pattern"`

	// Replacement is the template used for each match; ${1} expands to the first group
	Replacement string `json:"replacement" yaml:"replacement" hcl:"replacement"`
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates the final content differs from the original
	WasModified bool

	// ReplacementCount is the number of matches replaced across all rules
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies the rules in order, each one to the output of the previous
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}

// 📦 DefaultRules returns the versioned-import rules in application order.
// react-hook-form has no rule on purpose: it stays pinned at @7.55.0.
func DefaultRules() []ReplacementRule {
	return []ReplacementRule{
		{Name: "radix-ui", Pattern: `@radix-ui/([a-z-]+)@[0-9.]+`, Replacement: `@radix-ui/${1}`},
		{Name: "class-variance-authority", Pattern: `class-variance-authority@[0-9.]+`, Replacement: `class-variance-authority`},
		{Name: "lucide-react", Pattern: `lucide-react@[0-9.]+`, Replacement: `lucide-react`},
		{Name: "sonner", Pattern: `sonner@[0-9.]+`, Replacement: `sonner`},
		{Name: "next-themes", Pattern: `next-themes@[0-9.]+`, Replacement: `next-themes`},
	}
}

// PinnedPackage is the package intentionally left out of DefaultRules
const PinnedPackage = "react-hook-form"

// PinnedVersion is the version PinnedPackage is kept at
const PinnedVersion = "7.55.0"
