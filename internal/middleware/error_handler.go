package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"approval-matrix-service/internal/services"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contains the error information
type ErrorDetails struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	TraceID   string                 `json:"trace_id"`
}

// CustomError represents an error raised by the HTTP layer itself
type CustomError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
}

func (e CustomError) Error() string {
	return e.Message
}

// Error codes
const (
	ErrCodeApprovalTypeNotFound = "APPROVAL_TYPE_NOT_FOUND"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeInvalidDecision      = "INVALID_DECISION"
	ErrCodeUnauthorizedApprover = "UNAUTHORIZED_APPROVER"
	ErrCodeAlreadyDecided       = "ALREADY_DECIDED"
	ErrCodeResolution           = "RESOLUTION_ERROR"
	ErrCodeConfiguration        = "CONFIGURATION_ERROR"

	ErrCodeInternalServer = "INTERNAL_SERVER_ERROR"
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeNotFound       = "NOT_FOUND"
)

// serviceErrors maps resolver sentinels onto HTTP responses, first match wins
var serviceErrors = []struct {
	target error
	code   string
	status int
}{
	{services.ErrApprovalTypeNotFound, ErrCodeApprovalTypeNotFound, http.StatusNotFound},
	{services.ErrInvalidAmount, ErrCodeInvalidAmount, http.StatusBadRequest},
	{services.ErrInvalidDecision, ErrCodeInvalidDecision, http.StatusBadRequest},
	{services.ErrUnauthorizedApprover, ErrCodeUnauthorizedApprover, http.StatusForbidden},
	{services.ErrAlreadyDecided, ErrCodeAlreadyDecided, http.StatusConflict},
	{services.ErrNoThreshold, ErrCodeResolution, http.StatusInternalServerError},
	{services.ErrInvalidMatrix, ErrCodeConfiguration, http.StatusInternalServerError},
}

// ErrorHandler renders the last error a handler attached with c.Error
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			handleError(c, logger, c.Errors.Last().Err)
		}
	}
}

func handleError(c *gin.Context, logger *logrus.Logger, err error) {
	traceID := c.GetString("trace_id")
	if traceID == "" {
		traceID = uuid.New().String()
	}

	statusCode, details := describe(err)
	details.Timestamp = time.Now().UTC()
	details.TraceID = traceID

	entry := logger.WithError(err).WithFields(logrus.Fields{
		"trace_id": traceID,
		"code":     details.Code,
		"path":     c.Request.URL.Path,
		"method":   c.Request.Method,
	})
	if statusCode >= http.StatusInternalServerError {
		entry.Error("request error")
	} else {
		entry.Warn("request error")
	}

	c.JSON(statusCode, ErrorResponse{Error: details})
}

func describe(err error) (int, ErrorDetails) {
	var customErr CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode, ErrorDetails{
			Code:    customErr.Code,
			Message: customErr.Message,
			Details: customErr.Details,
		}
	}

	for _, mapping := range serviceErrors {
		if errors.Is(err, mapping.target) {
			return mapping.status, ErrorDetails{Code: mapping.code, Message: err.Error()}
		}
	}

	return http.StatusInternalServerError, ErrorDetails{
		Code:    ErrCodeInternalServer,
		Message: "An unexpected error occurred",
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details map[string]interface{}) CustomError {
	return CustomError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) CustomError {
	return CustomError{
		Code:       ErrCodeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}
