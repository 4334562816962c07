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

/*
Package config holds the settings for an importfix run.

Without a config file the run uses Default(): the components/ui
directory, the *.tsx and *.ts patterns, and the built-in rule set.
A config file only needs the fields it overrides:

	# .importfix.yaml
	directory: src/components/ui
	extensions: ["*.tsx"]
	rules:
	  - name: radix-ui
	    pattern: '@radix-ui/([a-z-]+)@[0-9.]+'
	    replacement: '@radix-ui/${1}'

The same in HCL:

	directory  = "src/components/ui"
	extensions = ["*.tsx"]

	rule "radix-ui" {
	  pattern     = "@radix-ui/([a-z-]+)@[0-9.]+"
	  replacement = "@radix-ui/$${1}"
	}

Rules listed in a file replace the built-in set entirely.
*/
package config
