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
	"path/filepath"
	"strings"
)

// 🎯 TargetPath replaces the last extension of source with ext.
// Leading dots of the base name are part of the name, so ".env" has no
// extension and becomes ".env" + ext.
func TargetPath(source, ext string) string {
	dir, base := filepath.Split(source)
	stem := base
	trimmed := strings.TrimLeft(base, ".")
	if i := strings.LastIndex(trimmed, "."); i >= 0 {
		stem = base[:len(base)-len(trimmed)+i]
	}
	return dir + stem + ext
}
