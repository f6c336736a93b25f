package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"approval-matrix-service/internal/services"
)

func setupTestRouter(logger *logrus.Logger, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), ErrorHandler(logger))
	r.GET("/test", handler)
	return r
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	logger, _ := test.NewNullLogger()
	var seen string
	router := setupTestRouter(logger, func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_KeepsCallerID(t *testing.T) {
	logger, _ := test.NewNullLogger()
	router := setupTestRouter(logger, func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("trace_id"))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

func TestErrorHandler_MapsServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unknown type", fmt.Errorf("%w: %q", services.ErrApprovalTypeNotFound, "invoices"), http.StatusNotFound, ErrCodeApprovalTypeNotFound},
		{"invalid amount", fmt.Errorf("%w: -1", services.ErrInvalidAmount), http.StatusBadRequest, ErrCodeInvalidAmount},
		{"invalid decision", services.ErrInvalidDecision, http.StatusBadRequest, ErrCodeInvalidDecision},
		{"unauthorized approver", services.ErrUnauthorizedApprover, http.StatusForbidden, ErrCodeUnauthorizedApprover},
		{"already decided", services.ErrAlreadyDecided, http.StatusConflict, ErrCodeAlreadyDecided},
		{"no threshold", services.ErrNoThreshold, http.StatusInternalServerError, ErrCodeResolution},
		{"bad request", NewBadRequestError("bad body", nil), http.StatusBadRequest, ErrCodeBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := test.NewNullLogger()
			router := setupTestRouter(logger, func(c *gin.Context) {
				_ = c.Error(tt.err)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(RequestIDHeader, "trace-1")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)

			var response ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.code, response.Error.Code)
			assert.Equal(t, "trace-1", response.Error.TraceID)
			assert.False(t, response.Error.Timestamp.IsZero())
		})
	}
}

func TestErrorHandler_HidesUnexpectedMessages(t *testing.T) {
	logger, hook := test.NewNullLogger()
	router := setupTestRouter(logger, func(c *gin.Context) {
		_ = c.Error(errors.New("database password is hunter2"))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.NotContains(t, w.Body.String(), "hunter2")

	var logged bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "request error" {
			logged = true
			assert.Equal(t, logrus.ErrorLevel, entry.Level)
			assert.Contains(t, entry.Data[logrus.ErrorKey].(error).Error(), "hunter2")
		}
	}
	assert.True(t, logged)
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		status int
		level  logrus.Level
	}{
		{http.StatusOK, logrus.InfoLevel},
		{http.StatusNotFound, logrus.WarnLevel},
		{http.StatusInternalServerError, logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			router := setupTestRouter(logger, func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/test", nil)
			router.ServeHTTP(w, req)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, "/test", entry.Data["path"])
			assert.Equal(t, tt.status, entry.Data["status"])
			assert.NotEmpty(t, entry.Data["request_id"])
		})
	}
}

func TestCORS_AllowsAnyOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
