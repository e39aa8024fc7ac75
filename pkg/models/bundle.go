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

// ConnectionClass buckets a device's connection label.
type ConnectionClass string

const (
	ConnectionWired        ConnectionClass = "wired"
	ConnectionWireless     ConnectionClass = "wireless"
	ConnectionUnclassified ConnectionClass = "unclassified"
)

// TopTalker identifies the device with the highest up or down speed.
type TopTalker struct {
	MAC      string  `json:"mac"`
	Hostname string  `json:"hostname"`
	Speed    float64 `json:"speed"`
}

// ConnectedDevice is one entry in the connected-devices aggregate.
type ConnectedDevice struct {
	MAC        string          `json:"mac"`
	Hostname   string          `json:"hostname"`
	IP         string          `json:"ip"`
	Connection string          `json:"connection"`
	Class      ConnectionClass `json:"class"`
}

// ConnectedDevices is the presence-filtered device list aggregate. Count
// is the number of devices passing the presence rule at aggregation time,
// not raw presence in the scrape.
type ConnectedDevices struct {
	Count    int               `json:"count"`
	Wired    int               `json:"wired"`
	Wireless int               `json:"wireless"`
	Devices  []ConnectedDevice `json:"devices"`
}

// Aggregates are cycle-computed statistics over the full detailed device
// map. They carry no state across cycles.
type Aggregates struct {
	DeviceCount      int              `json:"device_count"`
	TopDownloader    *TopTalker       `json:"top_downloader,omitempty"`
	TopUploader      *TopTalker       `json:"top_uploader,omitempty"`
	TotalDownSpeed   float64          `json:"total_down_speed"`
	TotalUpSpeed     float64          `json:"total_up_speed"`
	ConnectedDevices ConnectedDevices `json:"connected_devices"`
}

// DeviceData is the devices module of a poll-cycle bundle.
type DeviceData struct {
	Detailed   *DeviceMap `json:"detailed"`
	Aggregates Aggregates `json:"aggregates"`
}

// Observable is a named value with attributes, the unit the polling front
// end consumes.
type Observable struct {
	Value      interface{}            `json:"value"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// DataBundle is the per-cycle output. It is constructed fresh each poll
// cycle; the previous bundle is immutable input supplied by the caller.
// Modem data is reserved shape only; modem scraping is not implemented.
type DataBundle struct {
	Devices DeviceData            `json:"devices"`
	Modem   map[string]Observable `json:"modem,omitempty"`
}

// PreviousDetailed extracts the detailed map from a previous bundle,
// tolerating a nil bundle.
func (b *DataBundle) PreviousDetailed() *DeviceMap {
	if b == nil {
		return nil
	}

	return b.Devices.Detailed
}
