// Package server implements the iconsvg HTTP API.
//
// Routes:
//
//	GET /healthz                  liveness probe
//	GET /{prefix}.json?icons=a,b  icon set subset as Iconify JSON
//	GET /{prefix}/{name}.svg      rendered icon; query carries customisations
//	GET /{prefix}                 names in a set
//
// Every route accepts an optional provider query parameter. Rendering goes
// through a [pipeline.Runner], so rendered icons share its cache.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	iconerrors "github.com/matzehuels/iconsvg/pkg/errors"
	"github.com/matzehuels/iconsvg/pkg/iconset"
	"github.com/matzehuels/iconsvg/pkg/pipeline"
)

const (
	// maxIconsPerRequest bounds ?icons= lists.
	maxIconsPerRequest = 256

	// iconMaxAge is the Cache-Control max-age for rendered icons.
	iconMaxAge = 7 * 24 * time.Hour

	shutdownTimeout = 5 * time.Second
)

// customisationParams are the query parameters forwarded to the renderer.
var customisationParams = []string{
	"width", "height", "flip", "rotate", "align", "inline",
	"hFlip", "vFlip", "hAlign", "vAlign", "slice",
}

// Server serves icons from a runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil logger uses log.Default().
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/{set}", s.handleSet)
	r.Get("/{prefix}/{icon}", s.handleIcon)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, iconerrors.New(iconerrors.ErrCodeNotFound, "no route for %s", r.URL.Path))
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleSet serves /{prefix}.json subsets and /{prefix} name lists.
func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	provider := r.URL.Query().Get("provider")
	if err := iconerrors.ValidateProvider(provider); err != nil {
		s.writeError(w, r, err)
		return
	}

	seg := chi.URLParam(r, "set")
	if prefix, ok := strings.CutSuffix(seg, ".json"); ok {
		s.handleSubset(w, r, provider, prefix)
		return
	}
	if err := iconerrors.ValidateIconPart("prefix", seg); err != nil {
		s.writeError(w, r, err)
		return
	}

	set, ok := s.runner.Registry.Set(provider, seg)
	if !ok {
		s.writeError(w, r, iconerrors.New(iconerrors.ErrCodeNotFound, "icon set %s is not loaded", seg))
		return
	}
	names := set.Names()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"prefix": seg,
		"total":  len(names),
		"icons":  names,
	})
}

func (s *Server) handleSubset(w http.ResponseWriter, r *http.Request, provider, prefix string) {
	if err := iconerrors.ValidateIconPart("prefix", prefix); err != nil {
		s.writeError(w, r, err)
		return
	}
	raw := r.URL.Query().Get("icons")
	if raw == "" {
		s.writeError(w, r, iconerrors.New(iconerrors.ErrCodeInvalidInput, "icons parameter is required"))
		return
	}
	names := strings.Split(raw, ",")
	if len(names) > maxIconsPerRequest {
		s.writeError(w, r, iconerrors.New(iconerrors.ErrCodeInvalidInput, "too many icons (max %d)", maxIconsPerRequest))
		return
	}

	wanted := make([]iconset.Name, 0, len(names))
	for _, n := range names {
		name := iconset.Name{Provider: provider, Prefix: prefix, Name: n}
		if err := name.Validate(); err != nil {
			s.writeError(w, r, err)
			return
		}
		wanted = append(wanted, name)
	}
	if s.runner.Loader != nil {
		if _, _, err := s.runner.Loader.Load(r.Context(), s.runner.Registry, wanted); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	set, ok := s.runner.Registry.Set(provider, prefix)
	if !ok {
		s.writeError(w, r, iconerrors.New(iconerrors.ErrCodeNotFound, "icon set %s is not loaded", prefix))
		return
	}
	s.writeJSON(w, http.StatusOK, set.Subset(names))
}

// handleIcon serves /{prefix}/{name}.svg.
func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name, ok := strings.CutSuffix(chi.URLParam(r, "icon"), ".svg")
	if !ok {
		s.writeError(w, r, iconerrors.New(iconerrors.ErrCodeNotFound, "no route for %s", r.URL.Path))
		return
	}

	icon := iconset.Name{Provider: q.Get("provider"), Prefix: chi.URLParam(r, "prefix"), Name: name}
	if err := icon.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	attrs := make(map[string]string)
	for _, key := range customisationParams {
		if v := q.Get(key); v != "" {
			attrs[key] = v
		}
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Icon:   icon.String(),
		Format: "svg",
		Attrs:  attrs,
		Color:  q.Get("color"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(iconMaxAge.Seconds())))
	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	if q.Get("download") == "1" || q.Get("download") == "true" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.svg"`)
	}
	_, _ = w.Write(res.Data)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

type errorResponse struct {
	Error string          `json:"error"`
	Code  iconerrors.Code `json:"code,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context(), s.logger).Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{
		Error: iconerrors.UserMessage(err),
		Code:  iconerrors.GetCode(err),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch iconerrors.GetCode(err) {
	case iconerrors.ErrCodeInvalidInput, iconerrors.ErrCodeInvalidIconName, iconerrors.ErrCodeInvalidColor,
		iconerrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case iconerrors.ErrCodeNotFound, iconerrors.ErrCodeIconNotFound, iconerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case iconerrors.ErrCodeNetwork, iconerrors.ErrCodeTimeout, iconerrors.ErrCodeRateLimited,
		iconerrors.ErrCodeInvalidIconSet:
		return http.StatusBadGateway
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusInternalServerError
	}
}
