// Package server exposes the bentpixel engine over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /api/presets
//	PUT    /api/presets/{name}
//	DELETE /api/presets/{name}
//	GET    /api/cells?w=&h=
//	POST   /api/render    multipart "image" plus parameters
//	POST   /api/sonify    same inputs, returns audio/wav
//
// Parameters are read from the query string or form fields: the slider
// names (bitShift, dataOffset, ...), preset, t, grid.<kind>=0,4,8, format
// and overlay.
package server

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gogpu/bentpixel/internal/cache"
	"github.com/gogpu/bentpixel/internal/config"
	"github.com/gogpu/bentpixel/internal/presetstore"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP front end. It holds no per-request state and is safe
// for concurrent use.
type Server struct {
	cfg    *config.Config
	store  *presetstore.Store
	audio  *cache.Cache[[sha256.Size]byte, []byte]
	logger *slog.Logger
	router chi.Router
}

// New builds a server. store holds user presets; cfg limits uploads and
// sizes the audio cache.
func New(cfg *config.Config, store *presetstore.Store, logger *slog.Logger) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		cfg:    cfg,
		store:  store,
		audio:  cache.New[[sha256.Size]byte, []byte](cfg.CacheEntries),
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", s.handleListPresets)
		r.Put("/presets/{name}", s.handlePutPreset)
		r.Delete("/presets/{name}", s.handleDeletePreset)
		r.Get("/cells", s.handleCells)
		r.Post("/render", s.handleRender)
		r.Post("/sonify", s.handleSonify)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// CacheStats reports the audio cache counters.
func (s *Server) CacheStats() cache.Stats {
	return s.audio.Stats()
}

// Run serves on cfg.Listen until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server: listening", "addr", s.cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("server: shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("server: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"elapsed", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
