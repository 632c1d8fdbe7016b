package middleware

import (
	"log"
	"net/http"
	"time"
)

// RequestLoggingMiddleware logs API requests asynchronously so slow log
// sinks never sit on the request path
type RequestLoggingMiddleware struct {
	logChan chan requestRecord
}

type requestRecord struct {
	method   string
	path     string
	status   int
	bytes    int
	duration time.Duration
}

// responseWriter wraps http.ResponseWriter to capture status code and size
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

func NewRequestLoggingMiddleware() *RequestLoggingMiddleware {
	m := &RequestLoggingMiddleware{
		logChan: make(chan requestRecord, 1000), // Buffer for async logging
	}
	go m.asyncLogWriter()
	return m
}

func (m *RequestLoggingMiddleware) asyncLogWriter() {
	for rec := range m.logChan {
		log.Printf("[API] %s %s -> %d (%dB, %s)", rec.method, rec.path, rec.status, rec.bytes, rec.duration)
	}
}

func (m *RequestLoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: 200}

		next.ServeHTTP(wrapped, r)

		rec := requestRecord{
			method:   r.Method,
			path:     r.URL.Path,
			status:   wrapped.statusCode,
			bytes:    wrapped.bytesWritten,
			duration: time.Since(start),
		}
		select {
		case m.logChan <- rec:
		default:
			// Drop rather than block the request when the buffer is full
		}
	})
}
