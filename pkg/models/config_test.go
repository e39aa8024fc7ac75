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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCudymonConfigValidateDefaults(t *testing.T) {
	cfg := CudymonConfig{
		Host:     "192.168.10.1",
		Username: "admin",
		Password: "secret",
	}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultPresenceTimeout, cfg.PresenceTimeout)
	assert.Equal(t, 30*time.Second, time.Duration(cfg.PollInterval))
	assert.Equal(t, 300*time.Second, time.Duration(cfg.RetryInterval))
	assert.Equal(t, 15*time.Second, time.Duration(cfg.MinUpdateInterval))
	assert.Equal(t, 30*time.Second, time.Duration(cfg.RequestTimeout))
}

func TestCudymonConfigValidateRequired(t *testing.T) {
	tests := []struct {
		name string
		cfg  CudymonConfig
	}{
		{name: "missing host", cfg: CudymonConfig{Username: "admin", Password: "x"}},
		{name: "missing username", cfg: CudymonConfig{Host: "h", Password: "x"}},
		{name: "missing password", cfg: CudymonConfig{Host: "h", Username: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestCudymonConfigValidateKeepsExplicitValues(t *testing.T) {
	cfg := CudymonConfig{
		Host:            "h",
		Username:        "u",
		Password:        "p",
		PresenceTimeout: 60,
		PollInterval:    Duration(10 * time.Second),
	}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, 60, cfg.PresenceTimeout)
	assert.Equal(t, 10*time.Second, time.Duration(cfg.PollInterval))
}

func TestSignalCheckEnabled(t *testing.T) {
	var cfg CudymonConfig

	assert.True(t, cfg.SignalCheckEnabled(), "defaults to enabled")

	off := false
	cfg.PresenceSignalCheck = &off
	assert.False(t, cfg.SignalCheckEnabled())

	on := true
	cfg.PresenceSignalCheck = &on
	assert.True(t, cfg.SignalCheckEnabled())
}
