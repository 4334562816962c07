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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 runCommand executes the root command with args and returns stdout
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	stdout := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRootDefaultDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	root := t.TempDir()
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	writeFile(t, filepath.Join(root, "components", "ui", "badge.tsx"), `import { Slot } from "@radix-ui/react-slot@1.1.2";`)
	writeFile(t, filepath.Join(root, "components", "ui", "form.tsx"), `import { useForm } from "react-hook-form@7.55.0";`)

	out, err := runCommand(t)
	require.NoError(t, err)

	assert.Equal(t, "Fixed: components/ui/badge.tsx\n"+
		"\n"+
		"Done! Fixed 1 files.\n"+
		"Note: react-hook-form should keep version @7.55.0 per project guidelines.\n", out)

	content, err := os.ReadFile(filepath.Join(root, "components", "ui", "badge.tsx"))
	require.NoError(t, err)
	assert.Equal(t, `import { Slot } from "@radix-ui/react-slot";`, string(content))
}

func TestRootFlags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "menu.jsx"), `import { Check } from "lucide-react@0.487.0";`)
	writeFile(t, filepath.Join(dir, "menu.tsx"), `import { Check } from "lucide-react@0.487.0";`)

	out, err := runCommand(t, "--dir", dir, "--ext", "*.jsx", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would fix: "+filepath.Join(dir, "menu.jsx"))
	assert.NotContains(t, out, "menu.tsx")
	assert.Contains(t, out, "Done! Fixed 1 files.")

	content, err := os.ReadFile(filepath.Join(dir, "menu.jsx"))
	require.NoError(t, err)
	assert.Equal(t, `import { Check } from "lucide-react@0.487.0";`, string(content), "dry run should not write")
}

func TestRootConfigFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "ui")
	writeFile(t, filepath.Join(target, "drawer.tsx"), `import { Drawer } from "vaul@1.1.2"; import { toast } from "sonner@1.7.4";`)

	cfgPath := filepath.Join(dir, ".importfix.yaml")
	writeFile(t, cfgPath, "directory: "+target+"\nrules:\n  - name: vaul\n    pattern: 'vaul@[\\d.]+'\n    replacement: vaul\n")

	out, err := runCommand(t, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Fixed: "+filepath.Join(target, "drawer.tsx"))

	content, err := os.ReadFile(filepath.Join(target, "drawer.tsx"))
	require.NoError(t, err)
	assert.Equal(t, `import { Drawer } from "vaul"; import { toast } from "sonner@1.7.4";`, string(content))
}

func TestRootDebugLogsConfigLocation(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "importfix.json")
	writeFile(t, cfgPath, `{"directory": "`+dir+`"}`)

	stderr := &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"--debug", "--config", cfgPath})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, stderr.String(), "starting normalization")
	assert.Contains(t, stderr.String(), cfgPath)
}

func TestRootErrors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantError string
	}{
		{
			name:      "missing_directory",
			args:      []string{"--dir", filepath.Join(t.TempDir(), "missing")},
			wantError: "normalizing imports: listing directory",
		},
		{
			name:      "bad_config_extension",
			args:      []string{"--config", "settings.toml"},
			wantError: "loading config",
		},
		{
			name:      "positional_args",
			args:      []string{"extra"},
			wantError: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "importfix version info:")
	assert.Contains(t, out, "Go:")
	assert.Contains(t, out, "Pinned:    react-hook-form@7.55.0")
}

func TestVersionCommandJSON(t *testing.T) {
	out, err := runCommand(t, "version", "--json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, []string{"radix-ui", "class-variance-authority", "lucide-react", "sonner", "next-themes"}, info.Rules)
	assert.Equal(t, "react-hook-form@7.55.0", info.Pinned)
	assert.NotEmpty(t, info.GoVersion)
}
