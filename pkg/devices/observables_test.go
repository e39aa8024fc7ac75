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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cudymon/cudymon/pkg/models"
)

func TestObservables(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	raw := []models.RawDevice{
		{MAC: "aa:bb:cc:dd:ee:01", Hostname: "phone", Connection: "5G", Signal: "-61", DownSpeed: 24.3, UpSpeed: 1.5},
		{MAC: "aa:bb:cc:dd:ee:02", Hostname: "laptop", Connection: "Wired", DownSpeed: 80.0, UpSpeed: 9.5},
	}

	detailed, agg := Reconcile(raw, nil, testOpts(now))

	bundle := &models.DataBundle{
		Devices: models.DeviceData{Detailed: detailed, Aggregates: agg},
	}

	obs := Observables(bundle)

	assert.Equal(t, 2, obs[ObsDeviceCount].Value)
	assert.InDelta(t, 104.3, obs[ObsTotalDownSpeed].Value.(float64), 1e-9)
	assert.Equal(t, "aa:bb:cc:dd:ee:02", obs[ObsTopDownloaderMAC].Value)
	assert.Equal(t, "laptop", obs[ObsTopUploaderHost].Value)

	connected := obs[ObsConnectedDevices]
	assert.Equal(t, 2, connected.Value)
	require.NotNil(t, connected.Attributes)
	assert.Equal(t, 1, connected.Attributes["wired_devices"])
	assert.Equal(t, 1, connected.Attributes["wireless_devices"])
}

func TestObservablesNilBundle(t *testing.T) {
	obs := Observables(nil)
	assert.Empty(t, obs)
}

func TestObservablesNoTopTalkers(t *testing.T) {
	obs := Observables(&models.DataBundle{})

	assert.Contains(t, obs, ObsDeviceCount)
	assert.NotContains(t, obs, ObsTopDownloaderSpeed)
	assert.NotContains(t, obs, ObsTopUploaderSpeed)
}
