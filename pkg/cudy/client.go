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

// Package cudy implements the HTTP client for a Cudy router's LuCI web
// interface: the session-cookie login flow, authenticated page fetches
// with a single re-authentication retry, and device-list retrieval.
package cudy

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cudymon/cudymon/pkg/devices"
	"github.com/cudymon/cudymon/pkg/models"
)

// DevListPath is the device-list page relative to /cgi-bin/luci/.
const DevListPath = "admin/network/devices/devlist?detail=1"

const maxPageBodyLen = 4 << 20

// FetchOptions carry the per-cycle presence parameters.
type FetchOptions struct {
	PresenceTimeout int
	SignalCheck     bool

	// Now overrides the cycle clock; zero means time.Now(). Tests use it
	// to pin timestamps.
	Now time.Time
}

// Get retrieves an authenticated page from the router. A 403 or a
// redirect means the session expired: the client re-authenticates exactly
// once and retries the same request once. Any other non-success status
// aborts.
func (c *Client) Get(ctx context.Context, path string) (string, error) {
	force := false

	for attempt := 0; attempt < 2; attempt++ {
		cookie := c.CookieHeader(ctx, force)
		if cookie == "" {
			return "", errAuthFailed
		}

		body, expired, err := c.fetchPage(ctx, path, cookie)
		if err != nil {
			return "", err
		}

		if !expired {
			return body, nil
		}

		c.state = stateExpired
		force = true

		c.logger.Debug().Str("path", path).Msg("Session expired, re-authenticating")
	}

	c.state = stateFailed

	return "", errSessionExpired
}

// fetchPage issues one authenticated GET. expired is true when the
// response indicates an invalidated session (403 or any redirect).
func (c *Client) fetchPage(ctx context.Context, path, cookie string) (body string, expired bool, err error) {
	pageURL := "http://" + c.host + loginPath + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", false, err
	}

	req.Header.Set("Cookie", cookie)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden,
		resp.StatusCode >= 300 && resp.StatusCode < 400:
		return "", true, nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", false, fmt.Errorf("%w: %d for %s", errUnexpectedStatusCode, resp.StatusCode, path)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBodyLen))
	if err != nil {
		return "", false, err
	}

	return string(data), false, nil
}

// FetchDeviceData runs one poll cycle: fetch the device-list page,
// extract raw records and reconcile them against the previous bundle's
// detailed map.
//
// On any fetch failure the returned bundle is still valid: the previous
// detailed map is carried over unchanged and aggregates are recomputed
// over it, so one failed poll never flaps every device to absent. The
// error is returned alongside so the caller can mark the data stale.
func (c *Client) FetchDeviceData(ctx context.Context, previous *models.DataBundle, opts FetchOptions) (*models.DataBundle, error) {
	ropts := devices.ReconcileOptions{
		Now:             opts.Now,
		PresenceTimeout: opts.PresenceTimeout,
		SignalCheck:     opts.SignalCheck,
	}

	prevDetailed := previous.PreviousDetailed()

	html, err := c.Get(ctx, DevListPath)
	if err != nil {
		c.logger.Error().Err(err).Str("host", c.host).Msg("Error retrieving device list")

		detailed, agg := devices.Reconcile(nil, prevDetailed, ropts)

		return newBundle(detailed, agg), err
	}

	raw := devices.ExtractDevices(html)
	if len(raw) == 0 {
		c.logger.Warn().Str("host", c.host).Msg("Device list page yielded no devices")
	}

	detailed, agg := devices.Reconcile(raw, prevDetailed, ropts)

	c.logger.Debug().
		Int("scraped", len(raw)).
		Int("known", detailed.Len()).
		Msg("Reconciled device snapshot")

	return newBundle(detailed, agg), nil
}

func newBundle(detailed *models.DeviceMap, agg models.Aggregates) *models.DataBundle {
	return &models.DataBundle{
		Devices: models.DeviceData{
			Detailed:   detailed,
			Aggregates: agg,
		},
	}
}
