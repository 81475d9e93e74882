package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/flashcard-quiz-service/internal/services"
	"github.com/SAP-F-2025/flashcard-quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// ListResponse wraps a page of results
type ListResponse struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and error mapping for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// requestLogger prefers the per-request logger set by utils.ContextLogger
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return utils.GetLoggerFromContext(c, h.logger)
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"remote_addr", c.ClientIP(),
		"user_agent", c.Request.UserAgent(),
	}
	fields = append(fields, additionalFields...)

	h.requestLogger(c).Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.requestLogger(c).LogError(err, message, additionalFields...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Warn(message, additionalFields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode)
	}

	c.JSON(statusCode, errorResp)
}

// ===== SERVICE ERROR MAPPING =====

func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	// Construction failures carry a fixed body
	if services.IsConstructionFailed(err) {
		h.LogWarn(c, "No valid quiz type", "error", err)
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "No valid quiz type",
		})
		return
	}

	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, services.ValidationErrors{*validationError})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, businessRuleError.Message, err, map[string]interface{}{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrNoteNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Note not found", err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Resource not found", err)
	case errors.Is(err, services.ErrInvalidCardOrdinal):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid card ordinal", err, err.Error())
	case errors.Is(err, services.ErrUnsupportedFileType):
		h.RespondWithError(c, http.StatusBadRequest, "Unsupported file type", err, err.Error())
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request", err, err.Error())
	case errors.Is(err, services.ErrSessionStore):
		h.RespondWithError(c, http.StatusServiceUnavailable, "Review session store unavailable", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// ===== PARAMETER HELPERS =====

func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		details := "ID must be a positive integer"
		if err != nil {
			details = err.Error()
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: details,
		})
		return 0
	}
	return uint(id)
}

// parseOrdinalParam returns -1 after writing a 400 response
func (h *BaseHandler) parseOrdinalParam(c *gin.Context) int {
	ordinal, err := strconv.Atoi(c.Param("ordinal"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid ordinal",
			Details: err.Error(),
		})
		return -1
	}
	return ordinal
}

func (h *BaseHandler) parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// parsePage reads page/size query params into limit and offset
func (h *BaseHandler) parsePage(c *gin.Context) (page, size int) {
	page = h.parseIntQuery(c, "page", 1)
	size = h.parseIntQuery(c, "size", 20)
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	return page, size
}
