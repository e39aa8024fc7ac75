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

import "github.com/cudymon/cudymon/pkg/models"

// Observable keys consumed by the polling front end.
const (
	ObsDeviceCount        = "device_count"
	ObsTopDownloaderSpeed = "top_downloader_speed"
	ObsTopDownloaderMAC   = "top_downloader_mac"
	ObsTopDownloaderHost  = "top_downloader_hostname"
	ObsTopUploaderSpeed   = "top_uploader_speed"
	ObsTopUploaderMAC     = "top_uploader_mac"
	ObsTopUploaderHost    = "top_uploader_hostname"
	ObsTotalDownSpeed     = "total_down_speed"
	ObsTotalUpSpeed       = "total_up_speed"
	ObsConnectedDevices   = "connected_devices"
)

// Observables projects a bundle's aggregates into named observable values.
// Each observable is a plain (key, value, attributes) projection over the
// reconciled data model; there is no per-observable state.
func Observables(bundle *models.DataBundle) map[string]models.Observable {
	out := make(map[string]models.Observable)

	if bundle == nil {
		return out
	}

	agg := bundle.Devices.Aggregates

	out[ObsDeviceCount] = models.Observable{Value: agg.DeviceCount}
	out[ObsTotalDownSpeed] = models.Observable{Value: agg.TotalDownSpeed}
	out[ObsTotalUpSpeed] = models.Observable{Value: agg.TotalUpSpeed}

	if t := agg.TopDownloader; t != nil {
		out[ObsTopDownloaderSpeed] = models.Observable{Value: t.Speed}
		out[ObsTopDownloaderMAC] = models.Observable{Value: t.MAC}
		out[ObsTopDownloaderHost] = models.Observable{Value: t.Hostname}
	}

	if t := agg.TopUploader; t != nil {
		out[ObsTopUploaderSpeed] = models.Observable{Value: t.Speed}
		out[ObsTopUploaderMAC] = models.Observable{Value: t.MAC}
		out[ObsTopUploaderHost] = models.Observable{Value: t.Hostname}
	}

	out[ObsConnectedDevices] = models.Observable{
		Value: agg.ConnectedDevices.Count,
		Attributes: map[string]interface{}{
			"devices":          agg.ConnectedDevices.Devices,
			"wired_devices":    agg.ConnectedDevices.Wired,
			"wireless_devices": agg.ConnectedDevices.Wireless,
		},
	}

	return out
}
