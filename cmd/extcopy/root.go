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
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/extcopy/pkg/config"
	"github.com/walteh/extcopy/pkg/convert"
	"github.com/walteh/extcopy/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// rootOpts holds the flag values shared by the root command
type rootOpts struct {
	configFile string
	dir        string
	pattern    string
	ext        string
	dryRun     bool
	debug      bool
}

// newRootCmd creates the extcopy command, writing progress to stdout
func newRootCmd(stdout io.Writer) *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "extcopy",
		Short: "Copy files matching a pattern to siblings with a new extension",
		Long: `extcopy finds files matching a glob in a directory and writes a byte-identical
copy of each next to it, with its last extension replaced.

With no flags it converts FIN???.html to .ejs in the current directory.
Originals are never modified and existing targets are overwritten.
A file that fails is reported and skipped; the exit code stays zero.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, stdout, opts)
		},
	}

	addRootFlags(cmd, opts)
	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

// addRootFlags adds the conversion flags to the root command
func addRootFlags(cmd *cobra.Command, opts *rootOpts) {
	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file path (default: discover .extcopy.{hcl,yaml,yml,json} in --dir)")
	cmd.Flags().StringVar(&opts.dir, "dir", ".", "directory the pattern is resolved in")
	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", config.DefaultPattern, "glob pattern of files to copy")
	cmd.Flags().StringVarP(&opts.ext, "ext", "e", config.DefaultOutputExtension, "extension given to the copies")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "report what would be written without writing")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging returns a context carrying a stderr zerolog logger
func setupLogging(ctx context.Context, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// resolveConfig layers flags over the config file over the defaults
func resolveConfig(ctx context.Context, cmd *cobra.Command, fsys afero.Fs, dir string, opts *rootOpts) (*config.Config, error) {
	cfg, err := config.Resolve(ctx, fsys, dir, opts.configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("pattern") {
		cfg.Pattern = opts.pattern
	}
	if cmd.Flags().Changed("ext") {
		cfg.OutputExtension = opts.ext
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = opts.dryRun
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func runConvert(cmd *cobra.Command, stdout io.Writer, opts *rootOpts) error {
	ctx := setupLogging(cmd.Context(), opts.debug)

	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return errors.Errorf("getting absolute directory path: %w", err)
	}

	osFs := afero.NewOsFs()

	cfg, err := resolveConfig(ctx, cmd, osFs, dir, opts)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("dir", dir).Stringer("config", cfg).Msg("resolved configuration")

	reporter := log.New(stdout)

	conv, err := convert.New(convert.Options{
		Fs:             afero.NewBasePathFs(osFs, dir),
		Dir:            dir,
		Logger:         reporter,
		IgnorePatterns: cfg.IgnorePatterns,
		DryRun:         cfg.DryRun,
	})
	if err != nil {
		return errors.Errorf("creating converter: %w", err)
	}

	if _, err := conv.Convert(ctx, cfg.Pattern, cfg.OutputExtension); err != nil {
		return errors.Errorf("converting files: %w", err)
	}

	return nil
}
