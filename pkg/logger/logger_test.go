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

package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	log, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:   "explicit level",
			config: &Config{Level: "warn"},
		},
		{
			name:   "debug flag wins",
			config: &Config{Level: "error", Debug: true},
		},
		{
			name:    "invalid level",
			config:  &Config{Level: "loud"},
			wantErr: true,
		},
		{
			name:   "stderr output",
			config: &Config{Output: "stderr"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestSetLevel(t *testing.T) {
	log, err := New(&Config{Level: "info"})
	require.NoError(t, err)

	log.SetLevel(zerolog.ErrorLevel)
	assert.False(t, log.Warn().Enabled())

	log.SetDebug(true)
	assert.True(t, log.Debug().Enabled())
}

func TestTestLoggerDiscards(t *testing.T) {
	log := NewTestLogger()
	// Must not panic and must not be enabled at any level.
	log.Info().Msg("discarded")
	assert.False(t, log.Error().Enabled())
}
