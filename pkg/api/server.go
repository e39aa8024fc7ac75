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

// Package api serves the latest reconciled device bundle to the polling
// front end over a read-only HTTP API.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cudymon/cudymon/pkg/devices"
	"github.com/cudymon/cudymon/pkg/logger"
	"github.com/cudymon/cudymon/pkg/models"
	"github.com/cudymon/cudymon/pkg/poller"
)

// SnapshotSource exposes the poller's published state.
type SnapshotSource interface {
	Snapshot() poller.Snapshot
	Refresh(ctx context.Context) (bool, error)
}

// Config holds the API server settings and the presence parameters used
// for per-device presence responses.
type Config struct {
	ListenAddr      string
	PresenceTimeout int
	SignalCheck     bool
	Tracked         []devices.TrackedDevice
}

// Server is the read-only HTTP API.
type Server struct {
	config Config
	source SnapshotSource
	logger logger.Logger
	router chi.Router
	server *http.Server

	// trackedNames maps device ID to configured friendly name.
	trackedNames map[string]string
}

// NewServer creates the API server around a snapshot source.
func NewServer(config Config, source SnapshotSource, log logger.Logger) *Server {
	s := &Server{
		config:       config,
		source:       source,
		logger:       log,
		router:       chi.NewRouter(),
		trackedNames: make(map[string]string),
	}

	for _, td := range config.Tracked {
		s.trackedNames[models.DeviceID(td.ID)] = td.Name
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         config.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/devices", s.handleDevices)
		r.Get("/devices/{id}", s.handleDevice)
		r.Post("/refresh", s.handleRefresh)
	})
}

// Start begins serving. It blocks until the listener fails or Stop is
// called.
func (s *Server) Start(_ context.Context) error {
	s.logger.Info().Str("addr", s.config.ListenAddr).Msg("Starting API server")

	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug().
			Str("remote", r.RemoteAddr).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("API request")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
