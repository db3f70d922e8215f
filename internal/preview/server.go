// Package preview serves the browser live-preview: a minimal editor page
// backed by a render endpoint. It is a thin shell over the pipeline; all
// diagram semantics live in the engine.
package preview

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	sketcherrors "github.com/iishyfishyy/sketchflow/pkg/errors"
	"github.com/iishyfishyy/sketchflow/pkg/pipeline"
)

// maxBodyBytes bounds the accepted diagram payload.
const maxBodyBytes = 1 << 20

// Server is the live-preview HTTP server.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates a preview server over the given runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Router builds the chi router with logging and recovery middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/render", s.handleRender)
	return r
}

// requestLogger tags each request with a short id and logs its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()[:8]
		ww := chimiddleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		s.logger.Info("request",
			"id", reqID,
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// handleIndex serves the editor page.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

// handleRender accepts a diagram definition and responds with the SVG.
// Schema problems map to 400, layout failures to 502.
func (s *Server) handleRender(w http.ResponseWriter, req *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	style := req.URL.Query().Get("style")
	result, err := s.runner.Generate(req.Context(), raw, pipeline.Options{Style: style})
	if err != nil {
		status := http.StatusBadRequest
		if sketcherrors.Is(err, sketcherrors.ErrCodeLayout) {
			status = http.StatusBadGateway
		}
		http.Error(w, sketcherrors.UserMessage(err), status)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(result.SVG)
}
