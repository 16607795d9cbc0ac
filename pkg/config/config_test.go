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
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "full_yaml_config",
			filename: ".extcopy.yaml",
			config: `
pattern: "*.htm"
output_extension: .tmpl
ignore_patterns:
  - "draft*.htm"
dry_run: true
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "*.htm", cfg.Pattern, "pattern should match")
				assert.Equal(t, ".tmpl", cfg.OutputExtension, "extension should match")
				assert.Equal(t, []string{"draft*.htm"}, cfg.IgnorePatterns, "ignore patterns should match")
				assert.True(t, cfg.DryRun, "dry run should be true")
			},
		},
		{
			name:     "empty_yaml_uses_defaults",
			filename: ".extcopy.yml",
			config:   "",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultPattern, cfg.Pattern, "pattern should default")
				assert.Equal(t, DefaultOutputExtension, cfg.OutputExtension, "extension should default")
				assert.False(t, cfg.DryRun, "dry run should be false")
			},
		},
		{
			name:     "hcl_config_with_variables",
			filename: ".extcopy.hcl",
			config: `
pattern          = default_pattern
output_extension = ".tmpl"
ignore_patterns  = ["FIN000.html"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultPattern, cfg.Pattern, "pattern should come from variable")
				assert.Equal(t, ".tmpl", cfg.OutputExtension, "extension should match")
				assert.Equal(t, []string{"FIN000.html"}, cfg.IgnorePatterns, "ignore patterns should match")
			},
		},
		{
			name:     "json_config",
			filename: ".extcopy.json",
			config:   `{"pattern": "page_*.html", "output_extension": ".ejs"}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "page_*.html", cfg.Pattern, "pattern should match")
				assert.Equal(t, ".ejs", cfg.OutputExtension, "extension should match")
			},
		},
		{
			name:        "yaml_unknown_field",
			filename:    "config.yaml",
			config:      "destination: /tmp\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "json_unknown_field",
			filename:    "config.json",
			config:      `{"destination": "/tmp"}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "hcl_unknown_attribute",
			filename:    "config.hcl",
			config:      `destination = "/tmp"`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "extension_without_dot",
			filename:    "config.yaml",
			config:      "output_extension: ejs\n",
			wantErr:     true,
			errContains: "output_extension",
		},
		{
			name:        "absolute_pattern",
			filename:    "config.yaml",
			config:      "pattern: /var/www/*.html\n",
			wantErr:     true,
			errContains: "must be relative",
		},
		{
			name:        "malformed_pattern",
			filename:    "config.yaml",
			config:      "pattern: \"FIN[.html\"\n",
			wantErr:     true,
			errContains: "invalid pattern",
		},
		{
			name:        "malformed_ignore_pattern",
			filename:    "config.yaml",
			config:      "ignore_patterns: [\"a[\"]\n",
			wantErr:     true,
			errContains: "ignore_patterns",
		},
		{
			name:        "no_parser",
			filename:    "config.toml",
			config:      `pattern = "x"`,
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.filename, []byte(tt.config), 0644), "writing config file should succeed")

			cfg, err := Load(ctx, fs, tt.filename)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), afero.NewMemMapFs(), "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults_without_file", func(t *testing.T) {
		cfg, err := Resolve(ctx, afero.NewMemMapFs(), "/work", "")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("discovers_hcl_before_yaml", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/work/.extcopy.yaml", []byte("output_extension: .yaml\n"), 0644))
		require.NoError(t, afero.WriteFile(fs, "/work/.extcopy.hcl", []byte(`output_extension = ".hcl"`), 0644))

		found, err := Discover(ctx, fs, "/work")
		require.NoError(t, err)
		assert.Equal(t, "/work/.extcopy.hcl", found)

		cfg, err := Resolve(ctx, fs, "/work", "")
		require.NoError(t, err)
		assert.Equal(t, ".hcl", cfg.OutputExtension)
		assert.Equal(t, DefaultPattern, cfg.Pattern)
	})

	t.Run("explicit_file_wins", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/work/.extcopy.hcl", []byte(`output_extension = ".hcl"`), 0644))
		require.NoError(t, afero.WriteFile(fs, "/etc/extcopy.json", []byte(`{"output_extension": ".json"}`), 0644))

		cfg, err := Resolve(ctx, fs, "/work", "/etc/extcopy.json")
		require.NoError(t, err)
		assert.Equal(t, ".json", cfg.OutputExtension)
	})

	t.Run("explicit_missing_file_errors", func(t *testing.T) {
		_, err := Resolve(ctx, afero.NewMemMapFs(), "/work", "/nope.yaml")
		require.Error(t, err)
	})
}

func TestValidateExtension(t *testing.T) {
	tests := []struct {
		ext     string
		wantErr bool
	}{
		{ext: ".ejs"},
		{ext: ".tar.gz"},
		{ext: "", wantErr: true},
		{ext: ".", wantErr: true},
		{ext: "ejs", wantErr: true},
		{ext: "./ejs", wantErr: true},
		{ext: `.a\b`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			err := ValidateExtension(tt.ext)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "defaults",
			cfg:  Default(),
			want: "FIN???.html -> *.ejs",
		},
		{
			name: "ignores_and_dry_run",
			cfg: &Config{
				Pattern:         "*.html",
				OutputExtension: ".ejs",
				IgnorePatterns:  []string{"a.html", "b.html"},
				DryRun:          true,
			},
			want: "*.html -> *.ejs (ignoring a.html, b.html) [dry run]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.String(), "String() should match")
		})
	}
}
