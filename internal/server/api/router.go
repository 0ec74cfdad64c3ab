// Package api serves the LocalBoost auth API over HTTP:
//
//	GET  /
//	POST /api/v1/auth/register
//	POST /api/v1/auth/login
//	POST /api/v1/auth/google-oauth
//	GET  /api/v1/auth/me
//
// Errors are JSON objects with a "detail" field: a string, or for 422 a
// list of {loc, msg, type} entries.
package api

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/localboost/internal/logging"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const requestIDHeader = "X-Request-ID"

func NewRouter(h *Handlers, log logging.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(recoverer(log), requestLogger(log))

	r.HandleFunc("/", h.Root).Methods("GET")

	auth := r.PathPrefix("/api/v1/auth").Subrouter()
	auth.HandleFunc("/register", h.Register).Methods("POST")
	auth.HandleFunc("/login", h.Login).Methods("POST")
	auth.HandleFunc("/google-oauth", h.GoogleOAuth).Methods("POST")
	auth.HandleFunc("/me", h.Me).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// requestLogger tags every request with an id (the caller's, if sent) and
// logs it once it has been served.
func requestLogger(log logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			log.Info(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
				"request_id", id,
			)
		})
	}
}

func recoverer(log logging.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					log.Error(r.Context(), "handler panic", "path", r.URL.Path, "panic", v)
					writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
