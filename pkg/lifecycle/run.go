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

// Package lifecycle runs long-lived services under signal-driven
// shutdown and wires their loggers.
package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cudymon/cudymon/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Service is a long-running component with a blocking Start and a
// graceful Stop.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Run starts every service and blocks until one of them fails, the
// context is canceled, or SIGINT/SIGTERM arrives. All services are then
// stopped with a bounded timeout. The first failure is returned.
func Run(ctx context.Context, log logger.Logger, services ...Service) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, len(services))

	for _, svc := range services {
		go func(svc Service) {
			errCh <- svc.Start(ctx)
		}(svc)
	}

	var runErr error

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Service failed")
			runErr = err
		}
	case <-ctx.Done():
	}

	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()

	for _, svc := range services {
		if err := svc.Stop(stopCtx); err != nil {
			log.Error().Err(err).Msg("Error stopping service")

			if runErr == nil {
				runErr = err
			}
		}
	}

	return runErr
}
