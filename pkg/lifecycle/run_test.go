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

package lifecycle

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cudymon/cudymon/pkg/logger"
)

var errBoom = errors.New("boom")

type fakeService struct {
	startErr error
	stopErr  error
	stopped  atomic.Bool
}

func (s *fakeService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}

	<-ctx.Done()

	return ctx.Err()
}

func (s *fakeService) Stop(context.Context) error {
	s.stopped.Store(true)
	return s.stopErr
}

func TestRunReturnsFirstServiceFailure(t *testing.T) {
	healthy := &fakeService{}
	failing := &fakeService{startErr: errBoom}

	err := Run(context.Background(), logger.NewTestLogger(), healthy, failing)

	require.ErrorIs(t, err, errBoom)
	assert.True(t, healthy.stopped.Load())
	assert.True(t, failing.stopped.Load())
}

func TestRunStopsOnContextCancel(t *testing.T) {
	svc := &fakeService{}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, logger.NewTestLogger(), svc)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancel")
	}

	assert.True(t, svc.stopped.Load())
}

func TestRunReportsStopError(t *testing.T) {
	svc := &fakeService{startErr: context.Canceled, stopErr: errBoom}

	err := Run(context.Background(), logger.NewTestLogger(), svc)
	assert.ErrorIs(t, err, errBoom)
}

func TestCreateComponentLogger(t *testing.T) {
	log, err := CreateComponentLogger("test", nil)
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = CreateComponentLogger("test", &logger.Config{Level: "loud"})
	assert.Error(t, err)
}
