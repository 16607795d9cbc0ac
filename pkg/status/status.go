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
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// 📊 FileStatus represents the outcome of writing one target file
type FileStatus int

const (
	StatusUnknown     FileStatus = iota
	StatusNew                    // Target didn't exist before the write
	StatusOverwritten            // Target existed with different content
	StatusUnchanged              // Target existed and content matches
	StatusFailed                 // Source could not be converted
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "created"
	case StatusOverwritten:
		return "overwritten"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🔍 Classify decides the status of a target about to receive content.
// existing is ignored when existed is false.
func Classify(existing []byte, existed bool, content []byte) FileStatus {
	if !existed {
		return StatusNew
	}
	if bytes.Equal(existing, content) {
		return StatusUnchanged
	}
	return StatusOverwritten
}

// 🔍 Checksum generates a SHA-256 hash of the content
func Checksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
