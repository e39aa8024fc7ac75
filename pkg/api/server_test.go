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

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cudymon/cudymon/pkg/devices"
	"github.com/cudymon/cudymon/pkg/logger"
	"github.com/cudymon/cudymon/pkg/models"
	"github.com/cudymon/cudymon/pkg/poller"
)

var errRouterDown = errors.New("router down")

// fakeSource is a canned SnapshotSource.
type fakeSource struct {
	snapshot   poller.Snapshot
	refreshed  bool
	refreshErr error
	refreshes  int
}

func (f *fakeSource) Snapshot() poller.Snapshot {
	return f.snapshot
}

func (f *fakeSource) Refresh(context.Context) (bool, error) {
	f.refreshes++
	return f.refreshed, f.refreshErr
}

func testSnapshot(now time.Time) poller.Snapshot {
	m := models.NewDeviceMap()
	m.Put("aa:bb:cc:dd:ee:01", &models.DeviceState{
		MAC:        "AA:BB:CC:DD:EE:01",
		Hostname:   "phone",
		IP:         "192.168.10.2",
		Connection: "5G",
		Signal:     "-61",
		DownSpeed:  24.3,
		UpSpeed:    1.5,
		LastSeen:   now.Unix(),
	})
	m.Put("aa:bb:cc:dd:ee:02", &models.DeviceState{
		MAC:        "AA:BB:CC:DD:EE:02",
		Hostname:   "laptop",
		Connection: "Wired",
		LastSeen:   now.Add(-time.Hour).Unix(),
	})

	return poller.Snapshot{
		Bundle: &models.DataBundle{
			Devices: models.DeviceData{
				Detailed: m,
				Aggregates: models.Aggregates{
					DeviceCount: m.Len(),
					ConnectedDevices: models.ConnectedDevices{
						Count:    1,
						Wireless: 1,
						Devices:  []models.ConnectedDevice{},
					},
				},
			},
		},
		LastAttempt: now,
		LastSuccess: now,
	}
}

func newTestServer(source SnapshotSource) *Server {
	return NewServer(Config{
		ListenAddr:      ":0",
		PresenceTimeout: 180,
		SignalCheck:     true,
		Tracked: []devices.TrackedDevice{
			{Name: "Kid Phone", ID: "AA:BB:CC:DD:EE:01"},
		},
	}, source, logger.NewTestLogger())
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, http.NoBody)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	return rec
}

func TestHandleStatus(t *testing.T) {
	now := time.Now()
	s := newTestServer(&fakeSource{snapshot: testSnapshot(now)})

	rec := doRequest(t, s, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.False(t, resp.Stale)
	assert.Equal(t, 2, resp.DeviceCount)
	require.NotNil(t, resp.LastAttempt)
	assert.Equal(t, now.Unix(), resp.LastAttempt.Unix())
}

func TestHandleStatusBeforeFirstPoll(t *testing.T) {
	s := newTestServer(&fakeSource{})

	rec := doRequest(t, s, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Zero(t, resp.DeviceCount)
	assert.Nil(t, resp.LastAttempt)
	assert.Nil(t, resp.LastSuccess)
}

func TestHandleDevices(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot(time.Now())})

	rec := doRequest(t, s, http.MethodGet, "/api/devices")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Observables map[string]models.Observable   `json:"observables"`
		Detailed    map[string]*models.DeviceState `json:"detailed"`
		Stale       bool                           `json:"stale"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Len(t, resp.Detailed, 2)
	assert.Contains(t, resp.Observables, devices.ObsDeviceCount)
	assert.Contains(t, resp.Observables, devices.ObsConnectedDevices)
}

func TestHandleDevicesNoDataYet(t *testing.T) {
	s := newTestServer(&fakeSource{})

	rec := doRequest(t, s, http.MethodGet, "/api/devices")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleDevice(t *testing.T) {
	now := time.Now()
	s := newTestServer(&fakeSource{snapshot: testSnapshot(now)})

	// Device IDs match case-insensitively; the tracked name comes from the
	// configured list.
	rec := doRequest(t, s, http.MethodGet, "/api/devices/AA:BB:CC:DD:EE:01")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		MAC     string `json:"mac"`
		Name    string `json:"name"`
		Present bool   `json:"present"`
		Tracked bool   `json:"tracked"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "AA:BB:CC:DD:EE:01", resp.MAC)
	assert.Equal(t, "Kid Phone", resp.Name)
	assert.True(t, resp.Present)
	assert.True(t, resp.Tracked)
}

func TestHandleDeviceStaleUntracked(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot(time.Now())})

	// Seen an hour ago: known but absent, and not in the tracked list.
	rec := doRequest(t, s, http.MethodGet, "/api/devices/aa:bb:cc:dd:ee:02")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Present bool `json:"present"`
		Tracked bool `json:"tracked"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.False(t, resp.Present)
	assert.False(t, resp.Tracked)
}

func TestHandleDeviceNotFound(t *testing.T) {
	s := newTestServer(&fakeSource{snapshot: testSnapshot(time.Now())})

	rec := doRequest(t, s, http.MethodGet, "/api/devices/ff:ff:ff:ff:ff:ff")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleRefresh(t *testing.T) {
	source := &fakeSource{snapshot: testSnapshot(time.Now()), refreshed: true}
	s := newTestServer(source)

	rec := doRequest(t, s, http.MethodPost, "/api/refresh")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp refreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Refreshed)
	assert.Equal(t, 1, source.refreshes)
}

func TestHandleRefreshFailureStillResponds(t *testing.T) {
	source := &fakeSource{
		snapshot:   poller.Snapshot{Stale: true},
		refreshed:  true,
		refreshErr: errRouterDown,
	}
	s := newTestServer(source)

	rec := doRequest(t, s, http.MethodPost, "/api/refresh")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp refreshResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Stale)
}
