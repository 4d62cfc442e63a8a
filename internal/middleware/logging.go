package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Logger is the package-level zerolog logger used throughout the application.
var Logger = zerolog.Nop()

// InitLogger sets up the global zerolog logger with structured JSON output on stdout.
// Level is parsed from the given string ("debug", "info", "warn", "error"); unknown levels mean info.
func InitLogger(level, service string) zerolog.Logger {
	return initLogger(os.Stdout, level, service)
}

func initLogger(w io.Writer, level, service string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	Logger = zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Logger()
	return Logger
}

// RequestLogger logs one structured line per request.
// Raw client IPs are never logged, only a short hash.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			evt := log.Info()
			if status >= 500 {
				evt = log.Error()
			} else if status >= 400 {
				evt = log.Warn()
			}

			evt.
				Str("request_id", chimw.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Int("status", status).
				Dur("duration_ms", time.Since(start)).
				Str("ip_hash", hashIPForLog(clientIP(r))).
				Int("bytes_sent", ww.BytesWritten()).
				Msg("request")
		})
	}
}

// routePattern is the matched chi pattern, which keeps ids out of logs and labels.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func hashIPForLog(ip string) string {
	h := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(h[:])[:12]
}
