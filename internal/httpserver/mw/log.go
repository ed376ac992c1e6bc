package mw

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/index/internal/logger"
	"github.com/MrSnakeDoc/index/internal/utils"
)

// statusWriter captures status code and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// Log emits one http_request line per request. 5xx are logged at error,
// 4xx at warn, and probe paths (quiet) only at debug.
func Log(log logger.Logger, quiet ...string) func(http.Handler) http.Handler {
	quietPaths := make(map[string]struct{}, len(quiet))
	for _, p := range quiet {
		quietPaths[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(ww, r)

			if ww.status == 0 {
				ww.status = http.StatusOK
			}
			fields := []logger.Field{
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", ww.status),
				logger.Int("bytes", ww.bytes),
				logger.Duration("duration", time.Since(start)),
				logger.String("remote_ip", utils.ParseHostNoPort(r.RemoteAddr)),
				logger.String("user_agent", r.UserAgent()),
				logger.String("request_id", middleware.GetReqID(r.Context())),
			}

			switch {
			case ww.status >= 500:
				log.Error("http_request", fields...)
			case ww.status >= 400:
				log.Warn("http_request", fields...)
			default:
				if _, ok := quietPaths[r.URL.Path]; ok {
					log.Debug("http_request", fields...)
					return
				}
				log.Info("http_request", fields...)
			}
		})
	}
}
