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
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cudymon/cudymon/pkg/devices"
	"github.com/cudymon/cudymon/pkg/models"
)

type statusResponse struct {
	LastAttempt *time.Time `json:"last_attempt,omitempty"`
	LastSuccess *time.Time `json:"last_success,omitempty"`
	Stale       bool       `json:"stale"`
	DeviceCount int        `json:"device_count"`
}

type devicesResponse struct {
	Observables map[string]models.Observable `json:"observables"`
	Detailed    *models.DeviceMap            `json:"detailed"`
	Stale       bool                         `json:"stale"`
}

type deviceResponse struct {
	*models.DeviceState

	Name    string `json:"name,omitempty"`
	Present bool   `json:"present"`
	Tracked bool   `json:"tracked"`
}

type refreshResponse struct {
	Refreshed bool `json:"refreshed"`
	Stale     bool `json:"stale"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	snap := s.source.Snapshot()

	resp := statusResponse{
		Stale:       snap.Stale,
		DeviceCount: snap.Bundle.PreviousDetailed().Len(),
	}

	if !snap.LastAttempt.IsZero() {
		resp.LastAttempt = &snap.LastAttempt
	}

	if !snap.LastSuccess.IsZero() {
		resp.LastSuccess = &snap.LastSuccess
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDevices(w http.ResponseWriter, _ *http.Request) {
	snap := s.source.Snapshot()
	if snap.Bundle == nil {
		s.writeError(w, http.StatusServiceUnavailable, "no data yet")
		return
	}

	detailed := snap.Bundle.Devices.Detailed
	if detailed == nil {
		detailed = models.NewDeviceMap()
	}

	s.writeJSON(w, http.StatusOK, devicesResponse{
		Observables: devices.Observables(snap.Bundle),
		Detailed:    detailed,
		Stale:       snap.Stale,
	})
}

func (s *Server) handleDevice(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Snapshot()
	if snap.Bundle == nil {
		s.writeError(w, http.StatusServiceUnavailable, "no data yet")
		return
	}

	id := models.DeviceID(chi.URLParam(r, "id"))

	st, ok := snap.Bundle.Devices.Detailed.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown device")
		return
	}

	name, tracked := s.trackedNames[id]

	s.writeJSON(w, http.StatusOK, deviceResponse{
		DeviceState: st,
		Name:        name,
		Present:     devices.IsPresent(st, time.Now(), s.config.PresenceTimeout, s.config.SignalCheck),
		Tracked:     tracked,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ran, err := s.source.Refresh(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Forced refresh failed")
	}

	s.writeJSON(w, http.StatusOK, refreshResponse{
		Refreshed: ran,
		Stale:     s.source.Snapshot().Stale,
	})
}
