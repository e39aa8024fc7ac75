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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTrackedEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  TrackedDevice
		ok    bool
	}{
		{
			name:  "named entry",
			entry: "Kid Phone=AA:BB:CC:DD:EE:01",
			want:  TrackedDevice{Name: "Kid Phone", ID: "AA:BB:CC:DD:EE:01"},
			ok:    true,
		},
		{
			name:  "bare mac",
			entry: "aa:bb:cc:dd:ee:02",
			want:  TrackedDevice{Name: "aa:bb:cc:dd:ee:02", ID: "aa:bb:cc:dd:ee:02"},
			ok:    true,
		},
		{
			name:  "whitespace trimmed",
			entry: "  tv = AA:BB:CC:DD:EE:03 ",
			want:  TrackedDevice{Name: "tv", ID: "AA:BB:CC:DD:EE:03"},
			ok:    true,
		},
		{
			name:  "blank",
			entry: "   ",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTrackedEntry(tt.entry)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTrackedList(t *testing.T) {
	list := ParseTrackedList("phone=AA:BB:CC:DD:EE:01,\nlaptop=AA:BB:CC:DD:EE:02\nAA:BB:CC:DD:EE:03,,")

	require.Len(t, list, 3)
	assert.Equal(t, "phone", list[0].Name)
	assert.Equal(t, "laptop", list[1].Name)
	assert.Equal(t, "AA:BB:CC:DD:EE:03", list[2].ID)
}

func TestParseTrackedListEmpty(t *testing.T) {
	assert.Empty(t, ParseTrackedList(""))
}
