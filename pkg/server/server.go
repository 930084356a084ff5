// Package server exposes a grouped catalog over HTTP.
//
// The API is read-mostly and unauthenticated:
//
//	GET  /healthz              liveness probe
//	GET  /api/subjects         the full ordered subject -> courses mapping
//	GET  /api/subjects/{code}  one subject with its course numbers
//	POST /api/group            group a raw listing sent as the request body
//
// Responses are JSON. Errors use a single envelope shape with the
// machine-readable codes from pkg/errors:
//
//	{"error": {"code": "SUBJECT_NOT_FOUND", "message": "..."}}
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lmarten/coursemap/pkg/catalog"
	apperrors "github.com/lmarten/coursemap/pkg/errors"
)

// maxListingBytes caps the body size accepted by POST /api/group.
const maxListingBytes = 1 << 20

// Server serves a catalog over HTTP.
type Server struct {
	catalog *catalog.Catalog
	logger  *log.Logger
	router  chi.Router
}

// New creates a server for the given catalog.
// A nil logger falls back to log.Default().
func New(c *catalog.Catalog, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{catalog: c, logger: logger}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes builds the chi router with middleware and all endpoints.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/subjects", s.handleSubjects)
		r.Get("/subjects/{code}", s.handleSubject)
		r.Post("/group", s.handleGroup)
	})
	return r
}

// requestLogger logs one line per request at debug level.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debugf("%s %s -> %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// handleSubjects returns the full mapping in catalog order, the same shape
// the group command exports.
func (s *Server) handleSubjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog)
}

// subjectResponse is the payload for a single subject.
type subjectResponse struct {
	Subject string   `json:"subject"`
	Courses []string `json:"courses"`
}

func (s *Server) handleSubject(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	courses, ok := s.catalog.Courses(code)
	if !ok {
		writeError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeSubjectNotFound, "unknown subject: %s", code))
		return
	}
	writeJSON(w, http.StatusOK, subjectResponse{Subject: code, Courses: courses})
}

// handleGroup groups a raw listing from the request body and returns the
// resulting mapping without persisting anything.
func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxListingBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidListing, err, "read body"))
		return
	}

	c, err := catalog.Parse(string(body))
	if err != nil {
		var mle *catalog.MalformedLineError
		if errors.As(err, &mle) {
			writeError(w, http.StatusUnprocessableEntity, apperrors.Wrap(apperrors.ErrCodeInvalidLine, err, "malformed listing"))
			return
		}
		writeError(w, http.StatusBadRequest, apperrors.Wrap(apperrors.ErrCodeInvalidListing, err, "group listing"))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// errorEnvelope is the JSON shape for all error responses.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

// writeJSON writes v as an indented JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// writeError writes an error envelope, defaulting to INTERNAL_ERROR for
// errors without a code.
func writeError(w http.ResponseWriter, status int, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: apperrors.UserMessage(err)}})
}
