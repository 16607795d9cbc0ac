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
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultPattern matches the generated FIN screens
	DefaultPattern = "FIN???.html"
	// DefaultOutputExtension is the EJS template extension
	DefaultOutputExtension = ".ejs"
)

// 🗂️ candidate config file names, checked in order
var discoverNames = []string{
	".extcopy.hcl",
	".extcopy.yaml",
	".extcopy.yml",
	".extcopy.json",
}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config represents the complete configuration
type Config struct {
	Pattern         string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	OutputExtension string   `json:"output_extension,omitempty" yaml:"output_extension,omitempty"`
	IgnorePatterns  []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`
	DryRun          bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Pattern:         DefaultPattern,
		OutputExtension: DefaultOutputExtension,
	}
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, fsys afero.Fs, filename string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", filename).Msg("loading configuration")

	data, err := afero.ReadFile(fsys, filename)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(filename)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", filename)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Discover returns the first config file present in dir, or "" if none
func Discover(ctx context.Context, fsys afero.Fs, dir string) (string, error) {
	for _, name := range discoverNames {
		candidate := filepath.Join(dir, name)
		ok, err := afero.Exists(fsys, candidate)
		if err != nil {
			return "", errors.Errorf("checking %s: %w", candidate, err)
		}
		if ok {
			zerolog.Ctx(ctx).Debug().Str("path", candidate).Msg("discovered config file")
			return candidate, nil
		}
	}
	return "", nil
}

// 🎯 Resolve loads filename when set, otherwise a discovered file in dir,
// otherwise the defaults
func Resolve(ctx context.Context, fsys afero.Fs, dir, filename string) (*Config, error) {
	if filename == "" {
		found, err := Discover(ctx, fsys, dir)
		if err != nil {
			return nil, err
		}
		if found == "" {
			zerolog.Ctx(ctx).Debug().Msg("no config file found, using defaults")
			return Default(), nil
		}
		filename = found
	}
	return Load(ctx, fsys, filename)
}

func (cfg *Config) applyDefaults() {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if cfg.OutputExtension == "" {
		cfg.OutputExtension = DefaultOutputExtension
	}
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if err := ValidatePattern(cfg.Pattern); err != nil {
		return errors.Errorf("pattern: %w", err)
	}
	if err := ValidateExtension(cfg.OutputExtension); err != nil {
		return errors.Errorf("output_extension: %w", err)
	}
	for _, p := range cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("ignore_patterns: invalid pattern %q", p)
		}
	}
	return nil
}

// 🔍 ValidatePattern checks a glob pattern can be resolved relative to a directory
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return errors.New("is required")
	}
	if path.IsAbs(filepath.ToSlash(pattern)) || filepath.IsAbs(pattern) {
		return errors.Errorf("%q must be relative to the working directory", pattern)
	}
	if clean := path.Clean(filepath.ToSlash(pattern)); clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Errorf("%q must not leave the working directory", pattern)
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return errors.Errorf("invalid pattern %q", pattern)
	}
	return nil
}

// 🔍 ValidateExtension checks an output extension like ".ejs"
func ValidateExtension(ext string) error {
	if ext == "" {
		return errors.New("is required")
	}
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return errors.Errorf("%q must start with '.' followed by a name", ext)
	}
	if strings.ContainsAny(ext, `/\`) {
		return errors.Errorf("%q must not contain a path separator", ext)
	}
	return nil
}

// String returns a one-line summary of the configuration
func (cfg *Config) String() string {
	s := fmt.Sprintf("%s -> *%s", cfg.Pattern, cfg.OutputExtension)
	if len(cfg.IgnorePatterns) > 0 {
		s += fmt.Sprintf(" (ignoring %s)", strings.Join(cfg.IgnorePatterns, ", "))
	}
	if cfg.DryRun {
		s += " [dry run]"
	}
	return s
}
