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

package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SignalPlaceholder is what the router renders when a device reports no
// usable signal (wired clients, stale wireless entries).
const SignalPlaceholder = "---"

// RawDevice is one row scraped from the device-list page. Signal keeps the
// page text verbatim: an empty string means the field was absent, while
// SignalPlaceholder means the router printed the placeholder itself.
type RawDevice struct {
	MAC        string  `json:"mac"`
	Hostname   string  `json:"hostname"`
	IP         string  `json:"ip"`
	Connection string  `json:"connection"`
	Signal     string  `json:"signal"`
	UpSpeed    float64 `json:"up_speed"`
	DownSpeed  float64 `json:"down_speed"`
	Online     string  `json:"online"`
}

// DeviceState is the reconciled per-device entry carried across poll
// cycles. LastSeen is epoch seconds of the last cycle the device appeared
// in a scrape; it is never reset when the device goes missing.
type DeviceState struct {
	MAC        string  `json:"mac"`
	Hostname   string  `json:"hostname"`
	IP         string  `json:"ip"`
	Connection string  `json:"connection"`
	Signal     string  `json:"signal"`
	UpSpeed    float64 `json:"up_speed"`
	DownSpeed  float64 `json:"down_speed"`
	Online     string  `json:"online"`
	LastSeen   int64   `json:"last_seen"`
}

// DeviceID normalizes a device identifier for use as a reconciliation key.
// MAC matching is case-insensitive throughout.
func DeviceID(mac string) string {
	return strings.ToLower(strings.TrimSpace(mac))
}

// DeviceMap is an insertion-ordered map of device ID to state. Iteration
// order is the order keys were first inserted, which keeps aggregate
// tie-breaks stable across runs.
type DeviceMap struct {
	keys    []string
	entries map[string]*DeviceState
}

func NewDeviceMap() *DeviceMap {
	return &DeviceMap{
		entries: make(map[string]*DeviceState),
	}
}

func (m *DeviceMap) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

func (m *DeviceMap) Get(id string) (*DeviceState, bool) {
	if m == nil {
		return nil, false
	}

	st, ok := m.entries[id]

	return st, ok
}

// Put inserts or replaces an entry. A replaced entry keeps its original
// position in the iteration order.
func (m *DeviceMap) Put(id string, st *DeviceState) {
	if m.entries == nil {
		m.entries = make(map[string]*DeviceState)
	}

	if _, exists := m.entries[id]; !exists {
		m.keys = append(m.keys, id)
	}

	m.entries[id] = st
}

// Keys returns the device IDs in insertion order.
func (m *DeviceMap) Keys() []string {
	if m == nil {
		return nil
	}

	out := make([]string, len(m.keys))
	copy(out, m.keys)

	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *DeviceMap) Range(fn func(id string, st *DeviceState) bool) {
	if m == nil {
		return
	}

	for _, id := range m.keys {
		if !fn(id, m.entries[id]) {
			return
		}
	}
}

// Clone returns a deep copy. The receiver may be nil, in which case an
// empty map is returned.
func (m *DeviceMap) Clone() *DeviceMap {
	out := NewDeviceMap()

	if m == nil {
		return out
	}

	for _, id := range m.keys {
		st := *m.entries[id]
		out.Put(id, &st)
	}

	return out
}

// MarshalJSON renders the map as a JSON object in insertion order.
func (m *DeviceMap) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, id := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(m.entries[id])
		if err != nil {
			return nil, err
		}

		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (m *DeviceMap) UnmarshalJSON(data []byte) error {
	m.keys = nil
	m.entries = make(map[string]*DeviceState)

	dec := json.NewDecoder(bytes.NewReader(data))

	// Opening brace.
	if _, err := dec.Token(); err != nil {
		return err
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		id, _ := tok.(string)

		var st DeviceState
		if err := dec.Decode(&st); err != nil {
			return err
		}

		m.Put(id, &st)
	}

	// Closing brace.
	_, err := dec.Token()

	return err
}
