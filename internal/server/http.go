// Package server builds the HTTP server for the authentication routes.
package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"auth-service/internal/auth/handler"
	"auth-service/internal/auth/service"
)

const readHeaderTimeout = 5 * time.Second

// New returns an HTTP server serving the authentication routes on addr,
// with request logging.
func New(addr string, svc *service.Service, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	handler.New(svc, log).Register(mux)
	return &http.Server{
		Addr:              addr,
		Handler:           requestLogger(log, mux),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger logs one line per request: method, path, status, duration.
// Bodies and cookies never reach the log.
func requestLogger(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
