package router

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/dan13ram/cknft-bridge/metrics"
)

type contextKey string

const ContextKeyCaller contextKey = "caller"

// WithCaller stores the authenticated principal forwarded by the proxy in
// the request context.
func WithCaller(header string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			if caller := r.Header.Get(header); caller != "" {
				r = r.WithContext(context.WithValue(r.Context(), ContextKeyCaller, caller))
			}
			next.ServeHTTP(rw, r)
		})
	}
}

func callerFrom(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(ContextKeyCaller).(string)
	return caller, ok && caller != ""
}

type responseWriterLogger struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseWriterLogger) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.statusCode = statusCode
}

func wrap(rw http.ResponseWriter) *responseWriterLogger {
	if logged, ok := rw.(*responseWriterLogger); ok {
		return logged
	}
	return &responseWriterLogger{ResponseWriter: rw, statusCode: http.StatusOK}
}

// WithLogging logs every response that is not a 200.
func WithLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		logged := wrap(rw)
		h.ServeHTTP(logged, r)

		if logged.statusCode != http.StatusOK {
			log.Warn("[HTTP] ", r.Method, " ", r.URL.Path, " returned ", logged.statusCode)
		}
	})
}

// WithMetrics counts responses of route by status code.
func WithMetrics(route string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			logged := wrap(rw)
			next.ServeHTTP(logged, r)
			metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(logged.statusCode)).Inc()
		})
	}
}
