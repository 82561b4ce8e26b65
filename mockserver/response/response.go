/*
Package response - envelope writers for the mock backend

Every handler answers with the same envelope the client decodes:

	success: { success: true,  message: "...", data: {...}, meta?: {...} }
	failure: { success: false, message: "user-visible message", data: null, errors?: {...} }

HTTP status codes are derived from the error code here and nowhere else.
Internal errors never leak their message; the real cause is only logged.
*/
package response

import (
	"net/http"

	"backoffice/domain/shared"
	"backoffice/pkg/errors"
	"backoffice/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDKey gin context key holding the request id
const RequestIDKey = "request_id"

// Body is the wire envelope. Data stays in the output even when nil so the
// shape matches the real backend.
type Body struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    any                    `json:"data"`
	Meta    *shared.PaginationMeta `json:"meta,omitempty"`
	Errors  map[string]string      `json:"errors,omitempty"`
}

var httpStatusMap = map[errors.ErrorCode]int{
	errors.CodeInternal:     http.StatusInternalServerError,
	errors.CodeServer:       http.StatusInternalServerError,
	errors.CodeUnauthorized: http.StatusUnauthorized,
	errors.CodeNotFound:     http.StatusNotFound,
	errors.CodeValidation:   http.StatusBadRequest,
	errors.CodeLogical:      http.StatusUnprocessableEntity,
}

func statusFor(err *errors.AppError) int {
	if err.Status > 0 {
		return err.Status
	}
	if status, ok := httpStatusMap[err.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// RequestID returns the id set by the request id middleware.
func RequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// OK 200 with data
func OK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, &Body{Success: true, Message: message, Data: data})
}

// Created 201 with data
func Created(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, &Body{Success: true, Message: message, Data: data})
}

// Paginated 200 with a page of items and its meta block
func Paginated(c *gin.Context, items any, meta shared.PaginationMeta, message string) {
	c.JSON(http.StatusOK, &Body{Success: true, Message: message, Data: items, Meta: &meta})
}

// BadRequest reports a body or parameter that could not be bound.
func BadRequest(c *gin.Context, err error, message string) {
	logger.Warn(message,
		zap.String("request_id", RequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err))

	c.JSON(http.StatusBadRequest, &Body{Success: false, Message: message})
}

// Fail maps err onto a status code and writes the failure envelope.
func Fail(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)
	status := statusFor(appErr)

	fields := []zap.Field{
		zap.String("request_id", RequestID(c)),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", status),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}

	message := appErr.Message
	if status >= http.StatusInternalServerError {
		logger.Error(message, fields...)
		if appErr.Code == errors.CodeInternal {
			message = "internal server error"
		}
	} else {
		logger.Warn(message, fields...)
	}

	c.AbortWithStatusJSON(status, &Body{Success: false, Message: message, Errors: appErr.Fields})
}
