/*
 * Copyright 2026 the cudymon authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package devices

import "strings"

// TrackedDevice is one configured tracked-device entry.
type TrackedDevice struct {
	Name string
	ID   string
}

// ParseTrackedEntry parses a single entry: "FriendlyName=MAC" or a bare
// MAC, in which case the MAC doubles as the name. The boolean is false for
// blank entries.
func ParseTrackedEntry(entry string) (TrackedDevice, bool) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return TrackedDevice{}, false
	}

	if name, id, found := strings.Cut(entry, "="); found {
		return TrackedDevice{
			Name: strings.TrimSpace(name),
			ID:   strings.TrimSpace(id),
		}, true
	}

	return TrackedDevice{Name: entry, ID: entry}, true
}

// ParseTrackedList parses a comma- or newline-separated tracked-device
// list. Blank entries are skipped.
func ParseTrackedList(raw string) []TrackedDevice {
	raw = strings.ReplaceAll(raw, "\n", ",")

	var out []TrackedDevice

	for _, entry := range strings.Split(raw, ",") {
		if td, ok := ParseTrackedEntry(entry); ok {
			out = append(out, td)
		}
	}

	return out
}
