// Package server implements the gitgraph preview server: an HTTP API that
// renders posted models, and a websocket feed that pushes a fresh SVG each
// time the watched model file changes.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/gitgraph/internal/watch"
	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
)

// MaxBodyBytes bounds the size of a posted model.
const MaxBodyBytes = 4 << 20

// MessageType identifies a websocket message.
type MessageType string

const (
	MessageTypeSVG   MessageType = "svg"
	MessageTypeError MessageType = "error"
)

// Message is the websocket payload.
type Message struct {
	Type MessageType `json:"type"`
	Data string      `json:"data"`
}

// Options configures a Server.
type Options struct {
	// Path is the model file served at /api/model and watched for changes.
	// Empty disables both.
	Path      string
	Direction string
	Config    config.Config
	// Debounce is the quiet period after a file event before re-rendering.
	Debounce time.Duration
	Logger   *log.Logger
}

// Server serves the preview API. Renders of the watched model are
// serialised; posted models render concurrently.
type Server struct {
	runner *pipeline.Runner
	opts   Options
	logger *log.Logger

	renderMu sync.Mutex // serialises Refresh

	mu      sync.RWMutex
	current []byte
	lastErr error

	clientsMu sync.Mutex // guards clients and every write to them
	clients   map[*websocket.Conn]bool
	broadcast chan Message
	upgrader  websocket.Upgrader
}

// New creates a server that renders through runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Server{
		runner:    runner,
		opts:      opts,
		logger:    opts.Logger,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Message, 64),
		upgrader: websocket.Upgrader{
			// Local preview tool: any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID(s.logger))

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/model", s.handleModel)
		r.Get("/ws", s.handleWebSocket)
	})
	return r
}

// Start launches the broadcaster and, when a path is configured, renders
// the model once and begins watching it. Background work stops with ctx.
func (s *Server) Start(ctx context.Context) {
	go s.fanOut(ctx)
	if s.opts.Path == "" {
		return
	}
	s.Refresh(ctx)
	go func() {
		err := watch.File(ctx, s.opts.Path, s.opts.Debounce, s.logger, func() { s.Refresh(ctx) })
		if err != nil {
			s.logger.Error("watch failed", "path", s.opts.Path, "err", err)
		}
	}()
}

// ListenAndServe starts the server on addr and blocks until ctx is
// cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.Start(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("preview server listening", "addr", addr, "model", s.opts.Path)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.closeClients()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// Refresh re-renders the watched model, stores the result and broadcasts
// it to connected clients. A failed render keeps the previous SVG and
// broadcasts the error instead.
func (s *Server) Refresh(ctx context.Context) error {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	cfg := s.opts.Config
	res, err := s.runner.Execute(ctx, pipeline.Options{
		Path:      s.opts.Path,
		Direction: s.opts.Direction,
		Config:    &cfg,
		Formats:   []string{pipeline.FormatSVG},
		Partial:   true,
	})

	var svg []byte
	if res != nil {
		svg = res.Artifacts[pipeline.FormatSVG]
	}

	s.mu.Lock()
	s.lastErr = err
	if svg != nil {
		s.current = svg
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("render failed", "path", s.opts.Path, "err", err)
		s.send(Message{Type: MessageTypeError, Data: err.Error()})
	}
	if svg != nil {
		s.logger.Debug("model rendered", "bytes", len(svg))
		s.send(Message{Type: MessageTypeSVG, Data: string(svg)})
	}
	return err
}

// Current returns the latest rendered SVG of the watched model and the
// error of the last refresh.
func (s *Server) Current() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.lastErr
}
