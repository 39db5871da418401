// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/skulookup/core"
)

const (
	// DefaultStaticDir holds front-end assets.
	DefaultStaticDir = "public"

	// DefaultIndexFile is served for GET /.
	DefaultIndexFile = "index.html"

	// DefaultMaxConcurrentSearches is the number of searches that run at once.
	DefaultMaxConcurrentSearches = 8

	// DefaultMaxQueuedSearches is the number of searches that may wait for a worker.
	DefaultMaxQueuedSearches = 64

	// DefaultShutdownTimeout bounds the graceful shutdown in Run.
	DefaultShutdownTimeout = 10 * time.Second
)

// Searcher runs a single product search.
type Searcher interface {
	Search(ctx context.Context, partialCode string) (*core.QueryResult, error)
}

// Environment describes the configured collaborators reported by /healthcheck.
type Environment struct {
	SheetsAPI        bool `json:"sheets_api"`
	Auth             bool `json:"auth"`
	SheetsConfigured bool `json:"sheets_configured"`
}

// Server is the HTTP front of a Searcher.
type Server struct {
	searcher        Searcher
	router          *gin.Engine
	pool            *searchPool
	staticDir       string
	indexFile       string
	maxWorkers      int
	maxQueued       int
	shutdownTimeout time.Duration
	environment     Environment
	now             func() time.Time
	logger          *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithStaticDir sets the directory static assets are served from.
// An empty dir disables static assets.
func WithStaticDir(dir string) Option {
	return func(s *Server) error {
		s.staticDir = dir
		return nil
	}
}

// WithIndexFile sets the file served for GET /.
func WithIndexFile(path string) Option {
	return func(s *Server) error {
		s.indexFile = path
		return nil
	}
}

// WithSearchConcurrency bounds concurrent searches to workers, with up to
// queued further searches waiting. Requests beyond that get 503.
func WithSearchConcurrency(workers, queued int) Option {
	return func(s *Server) error {
		if workers < 1 {
			return errors.New("server: search workers must be at least 1")
		}
		if queued < 0 {
			return errors.New("server: queued searches must not be negative")
		}
		s.maxWorkers = workers
		s.maxQueued = queued
		return nil
	}
}

// WithShutdownTimeout bounds how long Run waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) error {
		s.shutdownTimeout = d
		return nil
	}
}

// WithEnvironment sets the flags reported by /healthcheck.
func WithEnvironment(env Environment) Option {
	return func(s *Server) error {
		s.environment = env
		return nil
	}
}

// New creates a server for searcher.
// Call Release when the server is no longer used.
func New(searcher Searcher, opts ...Option) (*Server, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	s := &Server{
		searcher:        searcher,
		staticDir:       DefaultStaticDir,
		indexFile:       DefaultIndexFile,
		maxWorkers:      DefaultMaxConcurrentSearches,
		maxQueued:       DefaultMaxQueuedSearches,
		shutdownTimeout: DefaultShutdownTimeout,
		now:             time.Now,
		logger:          slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	pool, err := newSearchPool(s.maxWorkers, s.maxQueued)
	if err != nil {
		return nil, err
	}
	s.pool = pool
	s.router = s.routes()

	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), requestLogger(s.logger), recovery(s.logger))

	r.GET("/search", s.handleSearch)
	r.GET("/healthcheck", s.handleHealthcheck)
	r.GET("/", s.handleIndex)
	r.NoRoute(s.handleStatic)

	return r
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr and serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Release stops the search workers. The server should not be used afterwards.
func (s *Server) Release() {
	s.pool.Release()
}
