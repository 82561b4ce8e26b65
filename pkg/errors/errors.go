/*
Package errors - unified application error

Every failure surfaced by the API client and the state containers is an
*AppError, so callers branch on Code and show Message, never on
transport-library error shapes.

Taxonomy:

	TRANSPORT_ERROR   no response reached the client
	SETUP_ERROR       the request could not be built or sent
	SERVER_ERROR      non-2xx status, or 2xx with success=false
	UNAUTHORIZED      401 from the backend
	VALIDATION_ERROR  rejected client-side before any network call
	LOGICAL_ERROR     operation not allowed in the current state
	STALE_RESPONSE    response of a superseded fetch, discarded
*/
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorCode 错误码
type ErrorCode string

const (
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeTransport     ErrorCode = "TRANSPORT_ERROR"
	CodeSetup         ErrorCode = "SETUP_ERROR"
	CodeServer        ErrorCode = "SERVER_ERROR"
	CodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeLogical       ErrorCode = "LOGICAL_ERROR"
	CodeStaleResponse ErrorCode = "STALE_RESPONSE"
)

// Messages shown when the backend did not supply one.
const (
	MsgNoResponse   = "No response received from the server"
	MsgSetupFailure = "Error setting up the request"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Status  int               `json:"status,omitempty"` // HTTP status when a response arrived
	Fields  map[string]string `json:"fields,omitempty"` // per-field validation messages
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient from the client's point of view.
func (e *AppError) Retryable() bool {
	switch e.Code {
	case CodeTransport:
		return true
	case CodeServer:
		return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
	default:
		return false
	}
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Transport request was sent but nothing came back.
func Transport(err error) *AppError {
	return Wrap(err, CodeTransport, MsgNoResponse)
}

// Setup request never left the client.
func Setup(err error) *AppError {
	msg := MsgSetupFailure
	if err != nil {
		msg = MsgSetupFailure + ": " + err.Error()
	}
	return Wrap(err, CodeSetup, msg)
}

// Server builds the error for a response the backend rejected.
func Server(status int, message string) *AppError {
	code := CodeServer
	switch status {
	case http.StatusUnauthorized:
		code = CodeUnauthorized
	case http.StatusNotFound:
		code = CodeNotFound
	}
	if strings.TrimSpace(message) == "" {
		message = fmt.Sprintf("Request failed with status code %d", status)
	}
	return &AppError{Code: code, Message: message, Status: status}
}

// Validation carries per-field messages; Message summarises them.
func Validation(fields map[string]string) *AppError {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return &AppError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(parts, "; "),
		Fields:  fields,
	}
}

func Logical(message string) *AppError {
	return New(CodeLogical, message)
}

func Stale() *AppError {
	return New(CodeStaleResponse, "response superseded by a newer request")
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, err.Error())
}

// Message returns the human-readable text to show for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return AsAppError(err).Message
}
