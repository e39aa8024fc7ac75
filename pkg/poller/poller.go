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

// Package poller drives the periodic fetch cycle against the router and
// owns the previous-bundle carry-forward between cycles.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/cudymon/cudymon/pkg/cudy"
	"github.com/cudymon/cudymon/pkg/logger"
	"github.com/cudymon/cudymon/pkg/models"
)

// Config holds the poller timing and presence parameters.
type Config struct {
	// PollInterval is the normal cadence between cycles.
	PollInterval time.Duration
	// RetryInterval replaces PollInterval after a failed cycle until a
	// cycle succeeds again.
	RetryInterval time.Duration
	// MinUpdateInterval throttles forced refreshes.
	MinUpdateInterval time.Duration

	PresenceTimeout int
	SignalCheck     bool
}

// Snapshot is the poller's published state, read by the API layer.
type Snapshot struct {
	Bundle      *models.DataBundle
	LastAttempt time.Time
	LastSuccess time.Time
	// Stale is set when the most recent cycle failed; the bundle then
	// still holds the last good device state.
	Stale bool
}

// Poller runs fetch cycles on a fixed interval. Cycles are serialized:
// the router client is not safe for concurrent fetches, so there is a
// single in-flight request at any time.
type Poller struct {
	config  Config
	fetcher Fetcher
	clock   Clock
	logger  logger.Logger

	// fetchMu serializes cycles; mu guards the published snapshot.
	fetchMu sync.Mutex
	mu      sync.RWMutex

	bundle      *models.DataBundle
	lastAttempt time.Time
	lastSuccess time.Time
	stale       bool

	ticker    Ticker
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a poller. A nil clock defaults to the real clock.
func New(config Config, fetcher Fetcher, clock Clock, log logger.Logger) *Poller {
	if clock == nil {
		clock = realClock{}
	}

	if config.PollInterval <= 0 {
		config.PollInterval = time.Duration(models.DefaultPollInterval)
	}

	if config.RetryInterval <= 0 {
		config.RetryInterval = time.Duration(models.DefaultRetryInterval)
	}

	if config.MinUpdateInterval <= 0 {
		config.MinUpdateInterval = time.Duration(models.DefaultMinUpdateInterval)
	}

	return &Poller{
		config:  config,
		fetcher: fetcher,
		clock:   clock,
		logger:  log,
		done:    make(chan struct{}),
	}
}

// Start runs the poll loop until the context is canceled or Stop is
// called. After a failed cycle the loop backs off to RetryInterval and
// returns to PollInterval on the next success.
func (p *Poller) Start(ctx context.Context) error {
	p.wg.Add(1)
	defer p.wg.Done()

	interval := p.config.PollInterval
	p.ticker = p.clock.Ticker(interval)

	defer p.ticker.Stop()

	p.logger.Info().Dur("interval", interval).Msg("Starting poller")

	if err := p.poll(ctx); err != nil {
		p.logger.Error().Err(err).Msg("Error during initial poll")
	}

	for {
		interval = p.nextInterval(interval)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.done:
			return nil
		case <-p.ticker.Chan():
			if err := p.poll(ctx); err != nil {
				p.logger.Error().Err(err).Msg("Error during poll")
			}
		}
	}
}

// Stop terminates the poll loop and waits for an in-flight cycle.
func (p *Poller) Stop(_ context.Context) error {
	p.closeOnce.Do(func() {
		close(p.done)
	})

	p.wg.Wait()

	return nil
}

// Snapshot returns the latest published state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return Snapshot{
		Bundle:      p.bundle,
		LastAttempt: p.lastAttempt,
		LastSuccess: p.lastSuccess,
		Stale:       p.stale,
	}
}

// Refresh forces an immediate cycle, throttled to at most one forced
// refresh per MinUpdateInterval. Returns true when a cycle actually ran.
func (p *Poller) Refresh(ctx context.Context) (bool, error) {
	p.mu.RLock()
	last := p.lastAttempt
	p.mu.RUnlock()

	if !last.IsZero() && p.clock.Now().Sub(last) < p.config.MinUpdateInterval {
		p.logger.Debug().Msg("Forced refresh throttled")
		return false, nil
	}

	return true, p.poll(ctx)
}

// poll runs one serialized fetch cycle and publishes the result. The
// bundle is replaced even on failure: the fetcher guarantees the failed
// bundle still carries the previous detailed map.
func (p *Poller) poll(ctx context.Context) error {
	p.fetchMu.Lock()
	defer p.fetchMu.Unlock()

	now := p.clock.Now()

	p.mu.RLock()
	previous := p.bundle
	p.mu.RUnlock()

	bundle, err := p.fetcher.FetchDeviceData(ctx, previous, cudy.FetchOptions{
		PresenceTimeout: p.config.PresenceTimeout,
		SignalCheck:     p.config.SignalCheck,
		Now:             now,
	})

	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastAttempt = now
	p.stale = err != nil

	if bundle != nil {
		p.bundle = bundle
	}

	if err == nil {
		p.lastSuccess = now
	}

	return err
}

// nextInterval swaps the ticker between the normal and retry cadence
// when the staleness state changed since the last cycle.
func (p *Poller) nextInterval(current time.Duration) time.Duration {
	p.mu.RLock()
	stale := p.stale
	p.mu.RUnlock()

	want := p.config.PollInterval
	if stale {
		want = p.config.RetryInterval
	}

	if want == current {
		return current
	}

	p.ticker.Stop()
	p.ticker = p.clock.Ticker(want)

	p.logger.Info().Dur("interval", want).Bool("degraded", stale).Msg("Poll interval changed")

	return want
}
