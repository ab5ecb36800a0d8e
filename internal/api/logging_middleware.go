package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tradejournal/pkg/tradejournal"
)

// requestOutcome is what a handler reports about a request beyond its status.
type requestOutcome struct {
	resultCode string
	errorCode  string
	message    string
}

type outcomeRecorder interface {
	recordOutcome(o requestOutcome)
}

type loggingResponseWriter struct {
	middleware.WrapResponseWriter
	outcome requestOutcome
}

func newLoggingResponseWriter(w http.ResponseWriter, r *http.Request) *loggingResponseWriter {
	return &loggingResponseWriter{WrapResponseWriter: middleware.NewWrapResponseWriter(w, r.ProtoMajor)}
}

func (w *loggingResponseWriter) recordOutcome(o requestOutcome) {
	w.outcome = o
}

func (w *loggingResponseWriter) Flush() {
	if flusher, ok := w.WrapResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// recordOutcome forwards o to the logging writer when w is one.
func recordOutcome(w http.ResponseWriter, o requestOutcome) {
	if rec, ok := w.(outcomeRecorder); ok {
		rec.recordOutcome(o)
	}
}

// requestLoggingMiddleware logs one record per request. 5xx is logged at
// Error, 4xx at Warn and the rest at Info. Journal and stock path params and
// the ledger result code are attached when present.
func requestLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newLoggingResponseWriter(w, r)

			next.ServeHTTP(wrapped, r)

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := []any{
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"route", routePattern(r),
				"status", status,
				"bytes", wrapped.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_ip", r.RemoteAddr,
			}
			if r.URL.RawQuery != "" {
				fields = append(fields, "query", r.URL.RawQuery)
			}
			fields = appendPathParams(fields, r)

			o := wrapped.outcome
			if o.resultCode != "" {
				fields = append(fields, "result_code", o.resultCode)
			}
			if o.errorCode != "" {
				fields = append(fields, "error_code", o.errorCode)
			}
			if o.message != "" {
				fields = append(fields, "error_message", o.message)
			}

			switch {
			case status >= http.StatusInternalServerError:
				logger.Error("http request completed", fields...)
			case status >= http.StatusBadRequest:
				logger.Warn("http request completed", fields...)
			default:
				logger.Info("http request completed", fields...)
			}
		})
	}
}

// recoveryLoggingMiddleware turns a handler panic into a 500 INTERNAL_ERROR
// response unless headers were already sent.
func recoveryLoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}
				fields := []any{
					"request_id", middleware.GetReqID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"route", routePattern(r),
					"panic", fmt.Sprint(recovered),
					"stack", string(debug.Stack()),
				}
				logger.Error("panic recovered", appendPathParams(fields, r)...)

				if sw, ok := w.(interface{ Status() int }); ok && sw.Status() != 0 {
					return
				}
				writeErrorResponse(w, r, tradejournal.NewError(tradejournal.ErrCodeInternal, "internal server error"))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func appendPathParams(fields []any, r *http.Request) []any {
	if id := chi.URLParam(r, "id"); id != "" {
		fields = append(fields, "journal_id", id)
	}
	if symbol := chi.URLParam(r, "symbol"); symbol != "" {
		fields = append(fields, "symbol", symbol)
	}
	return fields
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
