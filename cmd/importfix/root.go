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
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/importfix/pkg/config"
	"github.com/walteh/importfix/pkg/log"
	"github.com/walteh/importfix/pkg/normalize"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the command line flags
type rootOpts struct {
	configFile string
	directory  string
	extensions []string
	dryRun     bool
	debug      bool
}

// newRootCmd creates the importfix command
func newRootCmd() *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "importfix",
		Short: "Strip version suffixes from package imports",
		Long: `importfix rewrites versioned import strings such as
"@radix-ui/react-dialog@1.1.6" into their unversioned form in every
.tsx and .ts file directly inside components/ui.

react-hook-form is left alone and stays pinned at @7.55.0.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), cmd.ErrOrStderr(), opts.debug)

			cfg, err := opts.loadConfig(ctx, cmd)
			if err != nil {
				return err
			}

			zerolog.Ctx(ctx).Debug().
				Str("config", cfg.String()).
				Str("location", cfg.Location()).
				Msg("starting normalization")

			ctx = log.NewContext(ctx, log.New(cmd.OutOrStdout(), *zerolog.Ctx(ctx)))

			n, err := normalize.New(normalize.Options{Config: cfg})
			if err != nil {
				return errors.Errorf("creating normalizer: %w", err)
			}

			if _, err := n.Run(ctx); err != nil {
				return errors.Errorf("normalizing imports: %w", err)
			}

			return nil
		},
	}

	addRootFlags(cmd, opts)

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags adds the flags to the root command
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file path (.yaml, .yml, .json, .hcl or .importfix)")
	cmd.Flags().StringVar(&opts.directory, "dir", config.DefaultDirectory, "directory to scan, not recursed")
	cmd.Flags().StringSliceVar(&opts.extensions, "ext", config.DefaultExtensions(), "base-name patterns of files to rewrite")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report files that would change without writing them")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
}

// loadConfig builds the run configuration; explicit flags win over the config file
func (o *rootOpts) loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		loaded, err := config.LoadConfig(ctx, o.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Directory = o.directory
	}
	if flags.Changed("ext") {
		cfg.Extensions = o.extensions
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = o.dryRun
	}

	if err := config.Validate(ctx, cfg); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// setupLogging configures zerolog based on flags and stores it in the context
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}
