package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/models"
)

// LogLevel represents different log levels for service operations
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// Logger exposes the underlying slog logger with the service attributes attached
func (l *ServiceLogger) Logger() *slog.Logger {
	return l.logger
}

// ===== OPERATION LOGGING =====

func (l *ServiceLogger) LogOperation(ctx context.Context, operation string, resourceID uint, resourceType string, duration time.Duration, err error) {
	logLevel := LogLevelInfo
	status := "success"

	if err != nil {
		logLevel = LogLevelError
		status = "error"

		// Adjust log level based on error type
		if IsValidation(err) || IsBusinessRule(err) || IsConstructionFailed(err) {
			logLevel = LogLevelWarn
			status = "validation_error"
		} else if IsNotFound(err) {
			logLevel = LogLevelInfo
			status = "not_found"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Uint64("resource_id", uint64(resourceID)),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		detail := FormatError(err)
		attrs = append(attrs,
			slog.String("error", err.Error()),
			slog.Any("error_type", detail["type"]),
		)
		if count, ok := detail["count"]; ok {
			attrs = append(attrs, slog.Any("validation_errors_count", count))
		}
		if rule, ok := detail["rule"]; ok {
			attrs = append(attrs, slog.Any("business_rule", rule))
		}
	}

	// Add request context if available
	if requestID, ok := ctx.Value("request_id").(string); ok {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	// Add caller information for unexpected errors
	if logLevel == LogLevelError {
		if pc, file, line, ok := runtime.Caller(2); ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				attrs = append(attrs,
					slog.String("caller_func", fn.Name()),
					slog.String("caller_file", file),
					slog.Int("caller_line", line),
				)
			}
		}
	}

	message := fmt.Sprintf("%s operation %s", operation, status)

	switch logLevel {
	case LogLevelDebug:
		if l.config.EnableDebug {
			l.logger.LogAttrs(ctx, slog.LevelDebug, message, attrs...)
		}
	case LogLevelInfo:
		l.logger.LogAttrs(ctx, slog.LevelInfo, message, attrs...)
	case LogLevelWarn:
		l.logger.LogAttrs(ctx, slog.LevelWarn, message, attrs...)
	case LogLevelError:
		l.logger.LogAttrs(ctx, slog.LevelError, message, attrs...)
	}
}

func (l *ServiceLogger) LogValidationError(ctx context.Context, operation string, validationErrors ValidationErrors) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Int("error_count", len(validationErrors)),
	}

	for i, err := range validationErrors {
		if i < 5 { // Limit to first 5 errors to avoid log spam
			attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
				slog.String("field", err.Field),
				slog.String("message", err.Message),
				slog.Any("value", err.Value),
			))
		}
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Validation failed", attrs...)
}

func (l *ServiceLogger) LogBusinessRuleViolation(ctx context.Context, operation string, rule *BusinessRuleError) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("rule", rule.Rule),
		slog.String("message", rule.Message),
	}

	for key, value := range rule.Context {
		attrs = append(attrs, slog.Any(fmt.Sprintf("context_%s", key), value))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Business rule violation", attrs...)
}

// ===== DOMAIN EVENTS =====

// LogReview records the outcome of a graded card.
func (l *ServiceLogger) LogReview(ctx context.Context, record *models.ReviewRecord) {
	l.logger.LogAttrs(ctx, slog.LevelInfo, "Card reviewed",
		slog.Uint64("note_id", uint64(record.NoteID)),
		slog.Int("card_ordinal", record.CardOrdinal),
		slog.String("kind", string(record.Kind)),
		slog.String("verdict", string(record.Verdict)),
		slog.Int("suggested_ease", record.SuggestedEase),
	)
}

func (l *ServiceLogger) LogImport(ctx context.Context, source, deck string, summary *models.ImportSummary) {
	level := slog.LevelInfo
	if summary.ErrorCount > 0 {
		level = slog.LevelWarn
	}
	l.logger.LogAttrs(ctx, level, "Note import completed",
		slog.String("source", source),
		slog.String("deck", deck),
		slog.Int("total_rows", summary.TotalRows),
		slog.Int("success_count", summary.SuccessCount),
		slog.Int("error_count", summary.ErrorCount),
		slog.Duration("duration", summary.ProcessingTime),
	)
}

// ===== MIDDLEWARE AND HELPERS =====

// ContextualLogger wraps operations with automatic logging
type ContextualLogger struct {
	logger    *ServiceLogger
	operation string
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation string) *ContextualLogger {
	return &ContextualLogger{
		logger:    l,
		operation: operation,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (cl *ContextualLogger) LogResult(resourceID uint, resourceType string, err error) {
	duration := time.Since(cl.startTime)
	cl.logger.LogOperation(cl.ctx, cl.operation, resourceID, resourceType, duration, err)

	if err != nil {
		if validationErrors, ok := err.(ValidationErrors); ok {
			cl.logger.LogValidationError(cl.ctx, cl.operation, validationErrors)
		} else if businessErr, ok := err.(*BusinessRuleError); ok {
			cl.logger.LogBusinessRuleViolation(cl.ctx, cl.operation, businessErr)
		}
	}
}

// ===== ERROR FORMATTING HELPERS =====

func FormatError(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	result := map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}

	switch e := err.(type) {
	case ValidationErrors:
		result["type"] = "validation"
		result["count"] = len(e)

		fields := make([]map[string]interface{}, len(e))
		for i, validationErr := range e {
			fields[i] = map[string]interface{}{
				"field":   validationErr.Field,
				"message": validationErr.Message,
				"value":   validationErr.Value,
			}
		}
		result["errors"] = fields

	case *BusinessRuleError:
		result["type"] = "business_rule"
		result["rule"] = e.Rule
		result["context"] = e.Context

	default:
		if IsConstructionFailed(err) {
			result["type"] = "construction_failed"
		} else if IsNotFound(err) {
			result["type"] = "not_found"
		} else if IsValidation(err) {
			result["type"] = "validation"
		}
	}

	return result
}
