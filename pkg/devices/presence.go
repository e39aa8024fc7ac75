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

// Package devices turns scraped device-list pages into reconciled
// per-device state and aggregate metrics.
package devices

import (
	"strings"
	"time"

	"github.com/cudymon/cudymon/pkg/models"
)

// signalNone is rendered by some firmware revisions instead of the usual
// "---" placeholder.
const signalNone = "None"

// IsPresent reports whether a device counts as currently connected.
//
// The rule is timeout-first: a device whose last observation is older than
// timeoutSeconds is absent no matter what. Within the timeout, wired
// devices are always present; wireless devices need a usable signal value
// unless the signal check is disabled. This is the single presence
// implementation; aggregate counters and the API layer both call it.
func IsPresent(device *models.DeviceState, now time.Time, timeoutSeconds int, signalCheck bool) bool {
	if device == nil || device.LastSeen == 0 {
		return false
	}

	if now.Unix()-device.LastSeen > int64(timeoutSeconds) {
		return false
	}

	if strings.Contains(strings.ToLower(device.Connection), "wired") {
		return true
	}

	if !signalCheck {
		return true
	}

	signal := strings.TrimSpace(device.Signal)

	return signal != "" && signal != models.SignalPlaceholder && signal != signalNone
}

// Classify buckets a connection label into wired, wireless or
// unclassified. Matching is case-insensitive substring matching.
func Classify(connection string) models.ConnectionClass {
	c := strings.ToLower(connection)

	switch {
	case strings.Contains(c, "wired"):
		return models.ConnectionWired
	case strings.Contains(c, "wifi"), strings.Contains(c, "2.4g"), strings.Contains(c, "5g"):
		return models.ConnectionWireless
	default:
		return models.ConnectionUnclassified
	}
}
