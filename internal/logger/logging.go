package logger

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"go.uber.org/zap"
)

// Log до вызова Initialize ничего не пишет
var Log *zap.Logger = zap.NewNop()

func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	Log = zl
	return nil
}

// RequestLine строка вида "[2024-01-02T15:04:05.000Z] GET /abc - 307 - 3ms"
func RequestLine(finished time.Time, method, uri string, status int, elapsed time.Duration) string {
	return fmt.Sprintf("[%s] %s %s - %d - %dms",
		finished.UTC().Format("2006-01-02T15:04:05.000Z"), method, uri, status, elapsed.Milliseconds())
}

// LoggerMiddleware пишет одну строку на каждый завершённый запрос
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		recorder := &responseLogger{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(recorder, r)

		duration := time.Since(startTime)
		Log.Info(RequestLine(time.Now(), r.Method, r.URL.RequestURI(), recorder.statusCode, duration),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", duration),
			zap.Int("status_code", recorder.statusCode),
			zap.Int("content_length", recorder.contentLength),
		)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				Log.Error("Panic recovered",
					zap.Any("panic", rec),
					zap.String("path", r.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseLogger struct {
	http.ResponseWriter
	statusCode    int
	contentLength int
	wroteHeader   bool
}

func (l *responseLogger) WriteHeader(code int) {
	if !l.wroteHeader {
		l.statusCode = code
		l.wroteHeader = true
	}
	l.ResponseWriter.WriteHeader(code)
}

func (l *responseLogger) Write(data []byte) (int, error) {
	l.wroteHeader = true
	n, err := l.ResponseWriter.Write(data)
	l.contentLength += n
	return n, err
}
