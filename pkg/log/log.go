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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/importfix/pkg/text"
)

// 🎯 FileOperation represents a rewritten file for logging
type FileOperation struct {
	Path         string // File path as reported to the user
	Replacements int    // Number of replacements made
	DryRun       bool   // Whether the write was skipped
}

// 🎯 Logger prints user-facing lines to the console and mirrors them to zerolog
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	operations []FileOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 Fixed reports a file whose content was rewritten
func (l *Logger) Fixed(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	label := "Fixed:"
	if op.DryRun {
		label = "Would fix:"
	}
	fmt.Fprintf(l.console, "%s %s\n", color.New(color.FgGreen).Sprint(label), op.Path)

	l.zlog.Info().
		Str("file", op.Path).
		Int("replacements", op.Replacements).
		Bool("dry_run", op.DryRun).
		Msg("file normalized")
}

// 📝 Summary prints the closing count and the pinned-package note
func (l *Logger) Summary(ctx context.Context, fixed int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintf(l.console, "\n%s Fixed %d files.\n", color.New(color.Bold).Sprint("Done!"), fixed)
	fmt.Fprintf(l.console, "%s %s should keep version @%s per project guidelines.\n",
		color.New(color.FgYellow).Sprint("Note:"), text.PinnedPackage, text.PinnedVersion)

	l.zlog.Info().
		Int("fixed", fixed).
		Int("replacements", l.totalReplacements()).
		Msg("normalization complete")
}

// totalReplacements sums replacements across reported files; callers hold mu
func (l *Logger) totalReplacements() int {
	total := 0
	for _, op := range l.operations {
		total += op.Replacements
	}
	return total
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s: %v\n", color.New(color.FgRed).Sprint(msg), err)
	l.zlog.Error().Err(err).Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}
