// Package server serves rendered figures over HTTP for previewing.
//
// Routes:
//
//	GET /healthz                  liveness
//	GET /figures                  the catalog as JSON
//	GET /figures/{id}.{format}    one figure, rendered on demand
//
// Figure requests accept ?dpi=N for raster formats and ?refresh=1 to skip
// the cache. Nothing is written to disk.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/eborriello/genfigs/pkg/catalog"
	"github.com/eborriello/genfigs/pkg/errors"
	"github.com/eborriello/genfigs/pkg/figure/sink"
	"github.com/eborriello/genfigs/pkg/observability"
	"github.com/eborriello/genfigs/pkg/pipeline"
)

// Renderer produces encoded figures. *pipeline.Runner implements it.
type Renderer interface {
	Artifact(ctx context.Context, job pipeline.Job) ([]byte, error)
}

// JobFunc builds the job for a figure id, applying the server's data
// directory and defaults.
type JobFunc func(id string) (pipeline.Job, error)

// Server routes figure requests to a Renderer.
type Server struct {
	renderer Renderer
	job      JobFunc
	logger   *log.Logger
	router   chi.Router
}

// New creates a server. A nil job func uses pipeline.NewJob.
func New(r Renderer, job JobFunc, logger *log.Logger) *Server {
	if job == nil {
		job = pipeline.NewJob
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{renderer: r, job: job, logger: logger}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(observe)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Route("/figures", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{id}.{format}", s.handleFigure)
	})
	s.router = router
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// FigureInfo is one entry of the catalog listing.
type FigureInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kinds       []string `json:"kinds"`
	Input       string   `json:"input,omitempty"`
	URL         string   `json:"url"`
}

// CatalogInfo is the body of GET /figures.
type CatalogInfo struct {
	Revision string       `json:"revision"`
	Formats  []string     `json:"formats"`
	Figures  []FigureInfo `json:"figures"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	info := CatalogInfo{Revision: catalog.Revision}
	for _, f := range sink.Formats() {
		info.Formats = append(info.Formats, string(f))
	}
	for _, spec := range catalog.All() {
		fi := FigureInfo{
			ID:          spec.ID,
			Name:        spec.Name,
			Description: spec.Description,
			Kinds:       spec.Kinds(),
			URL:         "/figures/" + spec.ID + sink.PDF.Ext(),
		}
		if spec.NeedsInput() {
			fi.Input = spec.Input
			if job, err := s.job(spec.ID); err == nil && job.Input != "" {
				fi.Input = job.Input
			}
		}
		info.Figures = append(info.Figures, fi)
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	id, format := chi.URLParam(r, "id"), chi.URLParam(r, "format")

	job, err := s.job(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f, err := sink.ParseFormat(format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	job.Format = f
	job.Output = ""
	job.Show = false
	if v := r.URL.Query().Get("dpi"); v != "" {
		dpi, err := strconv.Atoi(v)
		if err != nil || dpi <= 0 || dpi > 1200 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "dpi must be an integer in 1..1200"))
			return
		}
		job.DPI = dpi
	}
	job.Refresh, _ = strconv.ParseBool(r.URL.Query().Get("refresh"))

	data, err := s.renderer.Artifact(r.Context(), job)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", `inline; filename="`+pipeline.WithExt(job.Figure.Output, f)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeFigureNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidInput:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// observe reports every request to the registered serve hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Serve()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}
