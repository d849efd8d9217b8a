package middleware

import (
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"time"
)

// responseWriter records the status and body size of a response.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
	wroteHeader  bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// LoggingConfig holds configuration for the logging middleware
type LoggingConfig struct {
	SkipPaths       []string
	SkipExtensions  []string
	LogStaticFiles  bool
	LogHealthChecks bool
	// Output defaults to standard error.
	Output io.Writer
}

// DefaultLoggingConfig logs everything but static assets. Card URLs carry
// no extension, so they are never skipped.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		SkipPaths:       []string{},
		SkipExtensions:  []string{".css", ".js", ".ico", ".png", ".jpg", ".jpeg", ".svg", ".ttf", ".txt"},
		LogHealthChecks: true,
	}
}

// w3cFields is the field order of every line, announced by Header.
var w3cFields = []string{
	"date", "time", "c-ip", "cs-method", "cs-uri-stem", "cs-uri-query",
	"sc-status", "sc-bytes", "time-taken", "sc(X-Cache)", "cs(User-Agent)", "cs(Referer)",
}

var healthCheckPaths = map[string]bool{
	"/health":  true,
	"/healthz": true,
	"/livez":   true,
	"/readyz":  true,
}

// W3CLogger writes requests in the W3C Extended Log Format.
type W3CLogger struct {
	config     LoggingConfig
	extensions map[string]bool
	out        *log.Logger
}

// NewW3CLogger creates a new W3C format logger
func NewW3CLogger(config LoggingConfig) *W3CLogger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	extensions := make(map[string]bool, len(config.SkipExtensions))
	for _, ext := range config.SkipExtensions {
		extensions[strings.ToLower(ext)] = true
	}
	return &W3CLogger{
		config:     config,
		extensions: extensions,
		out:        log.New(out, "", 0),
	}
}

// Header returns the #Fields directive describing each logged line.
func (l *W3CLogger) Header() string {
	return "#Fields: " + strings.Join(w3cFields, " ")
}

// Logger returns HTTP logging middleware using W3C Extended Log Format
func Logger(config LoggingConfig) func(http.Handler) http.Handler {
	logger := NewW3CLogger(config)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger.skip(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)
			logger.logRequest(r, wrapped, time.Since(start))
		})
	}
}

func (l *W3CLogger) skip(urlPath string) bool {
	for _, prefix := range l.config.SkipPaths {
		if strings.HasPrefix(urlPath, prefix) {
			return true
		}
	}
	if !l.config.LogHealthChecks && healthCheckPaths[urlPath] {
		return true
	}
	return !l.config.LogStaticFiles && l.extensions[strings.ToLower(path.Ext(urlPath))]
}

func (l *W3CLogger) logRequest(r *http.Request, rw *responseWriter, duration time.Duration) {
	now := time.Now().UTC()

	userAgent := sanitizeLogField(r.Header.Get("User-Agent"))
	if userAgent != "" {
		userAgent = escapeW3CField(userAgent)
	}

	// Every request-controlled field goes through sanitizeLogField.
	line := []string{
		now.Format("2006-01-02"),
		now.Format("15:04:05"),
		sanitizeLogField(getClientIP(r)),
		sanitizeLogField(r.Method),
		sanitizeLogField(r.URL.Path),
		orDash(sanitizeLogField(r.URL.RawQuery)),
		strconv.Itoa(rw.statusCode),
		strconv.FormatInt(rw.bytesWritten, 10),
		strconv.FormatInt(duration.Milliseconds(), 10),
		orDash(rw.Header().Get("X-Cache")),
		orDash(userAgent),
		orDash(escapeW3CField(sanitizeLogField(r.Header.Get("Referer")))),
	}

	l.out.Println(strings.Join(line, " "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// sanitizeLogField turns CR/LF into spaces and drops other control
// characters (tab excepted) so a request cannot forge log lines or emit
// terminal escapes.
func sanitizeLogField(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r':
			return ' '
		case r == '\t':
			return r
		case r < 0x20:
			return -1
		default:
			return r
		}
	}, s)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// escapeW3CField quotes values containing whitespace or quotes, doubling
// embedded quotes.
func escapeW3CField(s string) string {
	if !strings.ContainsAny(s, " \t\"") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
