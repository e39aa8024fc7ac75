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
	"fmt"
	"time"

	"github.com/cudymon/cudymon/pkg/logger"
)

var (
	errHostRequired     = fmt.Errorf("router host is required")
	errUsernameRequired = fmt.Errorf("router username is required")
	errPasswordRequired = fmt.Errorf("router password is required")
)

const (
	// DefaultPresenceTimeout is how long a device stays present after its
	// last observation, in seconds.
	DefaultPresenceTimeout = 180

	DefaultPollInterval      = Duration(30 * time.Second)
	DefaultRetryInterval     = Duration(300 * time.Second)
	DefaultMinUpdateInterval = Duration(15 * time.Second)
	DefaultRequestTimeout    = Duration(30 * time.Second)
)

// CudymonConfig is the daemon configuration.
type CudymonConfig struct {
	Host     string `json:"host"`
	Username string `json:"username"`
	Password string `json:"password"`

	// DeviceList holds tracked-device entries, comma- or newline-separated,
	// each either "FriendlyName=MAC" or a bare MAC.
	DeviceList string `json:"device_list,omitempty"`

	PresenceTimeout     int   `json:"presence_timeout,omitempty"`
	PresenceSignalCheck *bool `json:"presence_signal_check,omitempty"`

	PollInterval      Duration `json:"poll_interval,omitempty"`
	RetryInterval     Duration `json:"retry_interval,omitempty"`
	MinUpdateInterval Duration `json:"min_update_interval,omitempty"`
	RequestTimeout    Duration `json:"request_timeout,omitempty"`

	ListenAddr string `json:"listen_addr,omitempty"`

	Logging *logger.Config `json:"logging,omitempty"`
}

// Validate checks required fields and fills defaults in place.
func (c *CudymonConfig) Validate() error {
	if c.Host == "" {
		return errHostRequired
	}

	if c.Username == "" {
		return errUsernameRequired
	}

	if c.Password == "" {
		return errPasswordRequired
	}

	if c.PresenceTimeout <= 0 {
		c.PresenceTimeout = DefaultPresenceTimeout
	}

	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}

	if c.RetryInterval <= 0 {
		c.RetryInterval = DefaultRetryInterval
	}

	if c.MinUpdateInterval <= 0 {
		c.MinUpdateInterval = DefaultMinUpdateInterval
	}

	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}

	return nil
}

// SignalCheckEnabled reports whether wireless presence requires a usable
// signal value. Defaults to true when unset.
func (c *CudymonConfig) SignalCheckEnabled() bool {
	if c.PresenceSignalCheck == nil {
		return true
	}

	return *c.PresenceSignalCheck
}
