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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/cudymon/cudymon/pkg/api"
	"github.com/cudymon/cudymon/pkg/config"
	"github.com/cudymon/cudymon/pkg/cudy"
	"github.com/cudymon/cudymon/pkg/devices"
	"github.com/cudymon/cudymon/pkg/lifecycle"
	"github.com/cudymon/cudymon/pkg/logger"
	"github.com/cudymon/cudymon/pkg/models"
	"github.com/cudymon/cudymon/pkg/poller"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/cudymon/cudymon.json", "Path to cudymon config file")
	flag.Parse()

	ctx := context.Background()

	cfgLoader := config.NewConfig(nil)

	var cfg models.CudymonConfig

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = logger.DefaultConfig()
	}

	clientLogger, err := lifecycle.CreateComponentLogger("cudy", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	pollerLogger, err := lifecycle.CreateComponentLogger("poller", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	apiLogger, err := lifecycle.CreateComponentLogger("api", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	mainLogger, err := lifecycle.CreateComponentLogger("cudymon", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	client := cudy.NewClient(cfg.Host, cfg.Username, cfg.Password, nil,
		time.Duration(cfg.RequestTimeout), clientLogger)

	p := poller.New(poller.Config{
		PollInterval:      time.Duration(cfg.PollInterval),
		RetryInterval:     time.Duration(cfg.RetryInterval),
		MinUpdateInterval: time.Duration(cfg.MinUpdateInterval),
		PresenceTimeout:   cfg.PresenceTimeout,
		SignalCheck:       cfg.SignalCheckEnabled(),
	}, client, nil, pollerLogger)

	services := []lifecycle.Service{p}

	if cfg.ListenAddr != "" {
		services = append(services, api.NewServer(api.Config{
			ListenAddr:      cfg.ListenAddr,
			PresenceTimeout: cfg.PresenceTimeout,
			SignalCheck:     cfg.SignalCheckEnabled(),
			Tracked:         devices.ParseTrackedList(cfg.DeviceList),
		}, p, apiLogger))
	}

	mainLogger.Info().Str("host", cfg.Host).Msg("Starting cudymon")

	return lifecycle.Run(ctx, mainLogger, services...)
}
