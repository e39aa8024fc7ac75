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
	"time"

	"github.com/cudymon/cudymon/pkg/models"
)

// ReconcileOptions carry the clock and presence parameters for one cycle.
type ReconcileOptions struct {
	Now             time.Time
	PresenceTimeout int
	SignalCheck     bool
}

func (o ReconcileOptions) withDefaults() ReconcileOptions {
	if o.Now.IsZero() {
		o.Now = time.Now()
	}

	if o.PresenceTimeout <= 0 {
		o.PresenceTimeout = models.DefaultPresenceTimeout
	}

	return o
}

// Reconcile merges a fresh scrape against the previous cycle's detailed
// map and recomputes aggregates.
//
// The previous map is never mutated and its entries are never dropped: a
// device absent from the current scrape keeps its prior LastSeen, so a
// single failed poll does not flap every tracked device to absent. The
// returned detailed map is always the complete observed history; filtering
// by a configured device list is a presentation concern.
func Reconcile(raw []models.RawDevice, previous *models.DeviceMap, opts ReconcileOptions) (*models.DeviceMap, models.Aggregates) {
	opts = opts.withDefaults()

	detailed := previous.Clone()
	now := opts.Now.Unix()

	for i := range raw {
		rec := &raw[i]

		id := models.DeviceID(rec.MAC)
		if id == "" {
			continue
		}

		detailed.Put(id, &models.DeviceState{
			MAC:        rec.MAC,
			Hostname:   rec.Hostname,
			IP:         rec.IP,
			Connection: rec.Connection,
			Signal:     rec.Signal,
			UpSpeed:    rec.UpSpeed,
			DownSpeed:  rec.DownSpeed,
			Online:     rec.Online,
			LastSeen:   now,
		})
	}

	return detailed, ComputeAggregates(detailed, opts)
}

// ComputeAggregates derives cycle statistics from the full detailed map.
// It is a pure function of the map and the options.
func ComputeAggregates(detailed *models.DeviceMap, opts ReconcileOptions) models.Aggregates {
	opts = opts.withDefaults()

	agg := models.Aggregates{
		DeviceCount: detailed.Len(),
		ConnectedDevices: models.ConnectedDevices{
			Devices: []models.ConnectedDevice{},
		},
	}

	detailed.Range(func(_ string, st *models.DeviceState) bool {
		agg.TotalDownSpeed += st.DownSpeed
		agg.TotalUpSpeed += st.UpSpeed

		// Strict comparison keeps the first-inserted device on ties.
		if agg.TopDownloader == nil || st.DownSpeed > agg.TopDownloader.Speed {
			agg.TopDownloader = &models.TopTalker{MAC: st.MAC, Hostname: st.Hostname, Speed: st.DownSpeed}
		}

		if agg.TopUploader == nil || st.UpSpeed > agg.TopUploader.Speed {
			agg.TopUploader = &models.TopTalker{MAC: st.MAC, Hostname: st.Hostname, Speed: st.UpSpeed}
		}

		if !IsPresent(st, opts.Now, opts.PresenceTimeout, opts.SignalCheck) {
			return true
		}

		class := Classify(st.Connection)

		agg.ConnectedDevices.Count++

		switch class {
		case models.ConnectionWired:
			agg.ConnectedDevices.Wired++
		case models.ConnectionWireless:
			agg.ConnectedDevices.Wireless++
		case models.ConnectionUnclassified:
		}

		agg.ConnectedDevices.Devices = append(agg.ConnectedDevices.Devices, models.ConnectedDevice{
			MAC:        st.MAC,
			Hostname:   st.Hostname,
			IP:         st.IP,
			Connection: st.Connection,
			Class:      class,
		})

		return true
	})

	return agg
}
