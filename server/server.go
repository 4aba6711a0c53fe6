// SPDX-License-Identifier: GPL-2.0-or-later

// Package server exposes the cursor pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"anicursor/anierr"
	"anicursor/conlog"
	"anicursor/export"
	"anicursor/fetch"
	"anicursor/image"
	"anicursor/loader"
	"anicursor/style"
	"anicursor/theme"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBody bounds POSTed frame data.
const maxBody = 32 << 20

// Server holds the HTTP handler dependencies
type Server struct {
	loader *loader.Loader
	theme  *theme.Theme
	opts   loader.Options
}

func New(l *loader.Loader, th *theme.Theme, opts loader.Options) *Server {
	return &Server{loader: l, theme: th, opts: opts}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.Health)
	r.Get("/theme.css", s.ThemeCSS)
	r.Route("/api/cursor", func(r chi.Router) {
		r.Get("/", s.GetCursor)
		r.Post("/", s.PostCursor)
		r.Get("/export", s.ExportCursor)
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		conlog.Printf("serving cursors on http://%s", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	conlog.Printf("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

func status(err error) int {
	switch anierr.KindOf(err) {
	case anierr.InvalidInput:
		return http.StatusBadRequest
	case anierr.NetworkError:
		return http.StatusBadGateway
	case anierr.MalformedHeader, anierr.NoFramesFound, anierr.ImageDecodeError:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, status(err), errorResponse{Error: err.Error(), Kind: anierr.KindOf(err).String()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"cached": s.loader.Cache().Len(),
	})
}

// options reads type, w and h over the server defaults.
func (s *Server) options(r *http.Request) (loader.Options, error) {
	o := s.opts
	q := r.URL.Query()
	if t := q.Get("type"); t != "" {
		o.CursorType = t
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"w", &o.Width}, {"h", &o.Height}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 512 {
			return o, anierr.New(anierr.InvalidInput, "bad %s %q", p.name, v)
		}
		*p.dst = n
	}
	return o, nil
}

// absPath reports local paths that would escape the base directory.
func absPath(src string) bool {
	if filepath.IsAbs(src) || strings.HasPrefix(src, "/") || strings.HasPrefix(src, `\`) {
		return true
	}
	// drive letters
	return len(src) >= 2 && src[1] == ':' && !strings.Contains(src, "://")
}

// source reads the src parameter. Clients may name URLs, data URLs and
// files below the base directory, never absolute paths.
func (s *Server) source(r *http.Request) (string, loader.Options, error) {
	src := r.URL.Query().Get("src")
	if src == "" {
		return "", loader.Options{}, anierr.New(anierr.InvalidInput, "src is required")
	}
	if !fetch.IsURL(src) && !image.IsDataURL(src) && absPath(src) {
		return "", loader.Options{}, anierr.New(anierr.InvalidInput, "src must be a URL or a relative path")
	}
	o, err := s.options(r)
	return src, o, err
}

// GetCursor handles GET /api/cursor?src=
func (s *Server) GetCursor(w http.ResponseWriter, r *http.Request) {
	src, o, err := s.source(r)
	if err != nil {
		writeError(w, err)
		return
	}
	d, err := s.loader.Load(r.Context(), src, o)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// PostCursor handles POST /api/cursor with precomputed frame data.
func (s *Server) PostCursor(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, anierr.Wrap(anierr.InvalidInput, err, "read body"))
		return
	}
	d, err := s.loader.LoadJSON(r.Context(), b)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ExportCursor handles GET /api/cursor/export?src=
func (s *Server) ExportCursor(w http.ResponseWriter, r *http.Request) {
	src, o, err := s.source(r)
	if err != nil {
		writeError(w, err)
		return
	}
	d, err := s.loader.Load(r.Context(), src, o)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.DefaultFilename+`"`)
	if err := export.HTML(w, d); err != nil {
		conlog.Printf("export %s: %v", src, err)
	}
}

// ThemeCSS handles GET /theme.css. Roles that fail are left out.
func (s *Server) ThemeCSS(w http.ResponseWriter, r *http.Request) {
	if s.theme == nil {
		http.NotFound(w, r)
		return
	}
	sheet := style.NewSheet()
	if err := s.theme.Apply(r.Context(), s.loader, sheet, s.opts); err != nil {
		conlog.Printf("theme: %v", err)
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	sheet.WriteTo(w)
}
