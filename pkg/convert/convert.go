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

package convert

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/extcopy/pkg/config"
	"github.com/walteh/extcopy/pkg/log"
	"github.com/walteh/extcopy/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding/unicode"
)

// 🔧 Options contains configuration for the converter
type Options struct {
	// Fs is rooted at the directory patterns are resolved against
	Fs afero.Fs
	// Dir labels Fs in log output
	Dir string
	// Logger reports progress to the console
	Logger *log.Logger
	// IgnorePatterns drop matches before processing
	IgnorePatterns []string
	// DryRun reports pairs without writing targets
	DryRun bool
}

// 📄 Result is the outcome for one source file
type Result struct {
	Source   string
	Target   string
	Status   status.FileStatus
	Size     int
	Checksum string
	Err      error
}

// 📋 Report describes a finished batch
type Report struct {
	Pattern         string
	OutputExtension string
	Matched         []string
	Results         []Result
}

// Failed returns the results that could not be converted
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// 🎮 Converter copies matched files to siblings with a new extension
type Converter struct {
	fs     afero.Fs
	dir    string
	logger *log.Logger
	ignore []string
	dryRun bool
}

// 🏭 New creates a new converter with the given options
func New(opts Options) (*Converter, error) {
	if opts.Fs == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	for _, p := range opts.IgnorePatterns {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid ignore pattern %q", p)
		}
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	return &Converter{
		fs:     opts.Fs,
		dir:    dir,
		logger: opts.Logger,
		ignore: opts.IgnorePatterns,
		dryRun: opts.DryRun,
	}, nil
}

// 🏃 Convert writes a copy of every file matching pattern under outputExtension.
// Per-file failures are reported and recorded on the Report; the returned
// error is only set when the batch cannot start or the context is done.
func (c *Converter) Convert(ctx context.Context, pattern, outputExtension string) (*Report, error) {
	if err := config.ValidateExtension(outputExtension); err != nil {
		return nil, errors.Errorf("output extension: %w", err)
	}

	matches, err := c.Match(ctx, pattern)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Pattern:         pattern,
		OutputExtension: outputExtension,
		Matched:         matches,
	}

	if len(matches) == 0 {
		c.logger.Infof(ctx, "no files matched pattern '%s'", pattern)
		return report, nil
	}

	c.logger.StartBatchOperation(ctx, log.BatchOperation{
		Pattern:         pattern,
		OutputExtension: outputExtension,
		Dir:             c.dir,
		Matched:         len(matches),
	})
	defer c.logger.EndBatchOperation(ctx)

	for _, source := range matches {
		if err := ctx.Err(); err != nil {
			return report, errors.Errorf("batch interrupted before %s: %w", source, err)
		}

		res := c.convertFile(ctx, source, outputExtension)
		report.Results = append(report.Results, res)

		op := log.FileOperation{
			Source:   res.Source,
			Target:   res.Target,
			Status:   res.Status.String(),
			Size:     res.Size,
			Checksum: res.Checksum,
			DryRun:   c.dryRun,
			Err:      res.Err,
		}
		if res.Err != nil {
			c.logger.LogFileFailure(ctx, op)
			continue
		}
		c.logger.LogFileOperation(ctx, op)
	}

	return report, nil
}

// 🔍 Match resolves pattern to regular files, in enumeration order,
// minus anything hit by an ignore pattern
func (c *Converter) Match(ctx context.Context, pattern string) ([]string, error) {
	if err := config.ValidatePattern(pattern); err != nil {
		return nil, errors.Errorf("pattern: %w", err)
	}

	logger := zerolog.Ctx(ctx)

	slashed := filepath.ToSlash(filepath.Clean(pattern))
	found, err := doublestar.Glob(afero.NewIOFS(c.fs), slashed, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("resolving pattern %q: %w", pattern, err)
	}

	matches := make([]string, 0, len(found))
	for _, m := range found {
		if hiddenUnlessNamed(slashed, m) {
			logger.Debug().Str("file", m).Msg("dot name not requested by pattern")
			continue
		}
		if c.shouldIgnore(ctx, m) {
			continue
		}
		matches = append(matches, filepath.FromSlash(m))
	}

	logger.Debug().Str("pattern", pattern).Int("found", len(found)).Int("matched", len(matches)).Msg("resolved pattern")

	return matches, nil
}

// hiddenUnlessNamed reports whether match has a path element starting with a
// dot that the corresponding pattern element does not also start with.
// When ** makes the element counts differ, every dot element is hidden.
func hiddenUnlessNamed(pattern, match string) bool {
	patternParts := strings.Split(pattern, "/")
	matchParts := strings.Split(match, "/")
	for i, part := range matchParts {
		if !strings.HasPrefix(part, ".") {
			continue
		}
		if len(patternParts) != len(matchParts) || !strings.HasPrefix(patternParts[i], ".") {
			return true
		}
	}
	return false
}

// 🔍 shouldIgnore checks if a file should be ignored
func (c *Converter) shouldIgnore(ctx context.Context, path string) bool {
	logger := zerolog.Ctx(ctx)
	for _, pattern := range c.ignore {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}

// 📄 convertFile processes a single file
func (c *Converter) convertFile(ctx context.Context, source, outputExtension string) Result {
	res := Result{
		Source: source,
		Target: TargetPath(source, outputExtension),
		Status: status.StatusFailed,
	}

	content, err := c.readSource(source)
	if err != nil {
		res.Err = err
		return res
	}

	res.Size = len(content)
	res.Checksum = status.Checksum(content)

	if res.Target == source {
		c.logger.Warningf(ctx, "'%s' already has the output extension, leaving it as is", source)
		res.Status = status.StatusUnchanged
		return res
	}

	fileStatus := c.classify(res.Target, content)

	if !c.dryRun {
		if err := c.writeFileAtomic(res.Target, content); err != nil {
			res.Err = errors.Errorf("writing %s: %w", res.Target, err)
			return res
		}
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", res.Source).
		Str("target", res.Target).
		Stringer("status", fileStatus).
		Bool("dry_run", c.dryRun).
		Msg("processed file")

	res.Status = fileStatus
	return res
}

// 📥 readSource reads the full source and checks it decodes as UTF-8
func (c *Converter) readSource(source string) ([]byte, error) {
	content, err := afero.ReadFile(c.fs, source)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", source, err)
	}
	// the decoder swaps ill-formed bytes for U+FFFD, so any difference is an encoding error
	decoded, err := unicode.UTF8.NewDecoder().Bytes(content)
	if err != nil {
		return nil, errors.Errorf("decoding %s as utf-8: %w", source, err)
	}
	if !bytes.Equal(decoded, content) {
		return nil, errors.Errorf("decoding %s as utf-8: invalid byte sequence", source)
	}
	return content, nil
}

// 📊 classify compares content against whatever the target holds now
func (c *Converter) classify(target string, content []byte) status.FileStatus {
	existing, err := afero.ReadFile(c.fs, target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return status.StatusNew
		}
		return status.StatusOverwritten
	}
	return status.Classify(existing, true, content)
}

// 💾 writeFileAtomic writes through a uniquely named temp file in the
// target's directory and renames it over target. An existing target keeps
// its permission bits; a new one gets 0644.
func (c *Converter) writeFileAtomic(target string, content []byte) error {
	perm := os.FileMode(0644)
	if info, err := c.fs.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(c.fs, filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = c.fs.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = c.fs.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := c.fs.Chmod(tempPath, perm); err != nil {
		_ = c.fs.Remove(tempPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}

	if err := c.fs.Rename(tempPath, target); err != nil {
		_ = c.fs.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
