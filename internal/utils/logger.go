package utils

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger is the logging surface shared by handlers and the server binary
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	With(args ...any) Logger

	// LogRequest logs a finished HTTP request; the level follows the status code
	LogRequest(method, path string, statusCode int, latency time.Duration, args ...any)
	LogError(err error, msg string, args ...any)

	Slog() *slog.Logger
}

type SlogLogger struct {
	logger *slog.Logger
}

func NewSlogLogger(logger *slog.Logger) Logger {
	return &SlogLogger{logger: logger}
}

// NewDefaultLogger writes JSON at info level to stdout
func NewDefaultLogger() Logger {
	return NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}

// NewLogger picks the JSON handler in production and the debug text handler elsewhere
func NewLogger(environment string) Logger {
	if environment == "production" {
		return NewDefaultLogger()
	}
	return NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

func (l *SlogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *SlogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *SlogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *SlogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

func (l *SlogLogger) LogRequest(method, path string, statusCode int, latency time.Duration, args ...any) {
	level := slog.LevelInfo
	switch {
	case statusCode >= 500:
		level = slog.LevelError
	case statusCode >= 400:
		level = slog.LevelWarn
	}

	attrs := append([]any{
		"method", method,
		"path", path,
		"status_code", statusCode,
		"latency", latency,
	}, args...)
	l.logger.Log(context.Background(), level, "HTTP request", attrs...)
}

func (l *SlogLogger) LogError(err error, msg string, args ...any) {
	l.logger.Error(msg, append([]any{"error", err}, args...)...)
}

func (l *SlogLogger) Slog() *slog.Logger {
	return l.logger
}

// ===== GIN MIDDLEWARE =====

const (
	RequestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// ContextLogger stores a request-scoped logger in the Gin context, assigning a
// request ID when the caller did not send one.
func ContextLogger(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(RequestIDHeader, requestID)
		}
		c.Header(RequestIDHeader, requestID)

		c.Set(loggerKey, logger.With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		))
		c.Next()
	}
}

// LoggerMiddleware logs every request once it completes. It must run after ContextLogger.
func LoggerMiddleware(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		GetLoggerFromContext(c, logger).LogRequest(
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			"client_ip", c.ClientIP(),
			"route", c.FullPath(),
			"errors", len(c.Errors),
		)
	}
}

// GetLoggerFromContext returns the request logger, then fallback, then a default logger
func GetLoggerFromContext(c *gin.Context, fallback Logger) Logger {
	if value, exists := c.Get(loggerKey); exists {
		if logger, ok := value.(Logger); ok {
			return logger
		}
	}
	if fallback != nil {
		return fallback
	}
	return NewDefaultLogger()
}
