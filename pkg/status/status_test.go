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

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		existing []byte
		existed  bool
		content  []byte
		want     FileStatus
	}{
		{
			name:    "missing_target",
			content: []byte("<p>hi</p>"),
			want:    StatusNew,
		},
		{
			name:     "missing_target_ignores_existing_bytes",
			existing: []byte("<p>hi</p>"),
			content:  []byte("<p>hi</p>"),
			want:     StatusNew,
		},
		{
			name:     "same_content",
			existing: []byte("<p>hi</p>"),
			existed:  true,
			content:  []byte("<p>hi</p>"),
			want:     StatusUnchanged,
		},
		{
			name:     "different_content",
			existing: []byte("old"),
			existed:  true,
			content:  []byte("<p>hi</p>"),
			want:     StatusOverwritten,
		},
		{
			name:    "empty_target_empty_content",
			existed: true,
			want:    StatusUnchanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.existing, tt.existed, tt.content)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileStatusString(t *testing.T) {
	assert.Equal(t, "created", StatusNew.String())
	assert.Equal(t, "overwritten", StatusOverwritten.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
	assert.Equal(t, "unknown", FileStatus(42).String())
}

func TestChecksum(t *testing.T) {
	// sha256 of the empty string
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(nil))
	assert.Equal(t, Checksum([]byte("<p>hi</p>")), Checksum([]byte("<p>hi</p>")))
	assert.NotEqual(t, Checksum([]byte("a")), Checksum([]byte("b")))
}
