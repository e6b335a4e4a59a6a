// Package errors provides custom error types for the Hot Mess Coach chat client.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
)

// Sentinel errors for common cases
var (
	ErrInvalidResponse  = errors.New("invalid response format")
	ErrEmptyMessage     = errors.New("message cannot be empty")
	ErrClientClosed     = errors.New("client is closed")
	ErrResponseTooLarge = errors.New("response body too large")
)

// APIError represents a non-2xx answer from the chat backend
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
	Body       string // truncated response body, diagnostics only
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("API error at %s: %s", e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}

// WithBody attaches the (already truncated) response body.
func (e *APIError) WithBody(body string) *APIError {
	e.Body = body
	return e
}

// NetworkError represents a transport failure before any HTTP status was received
type NetworkError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *NetworkError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("network error during %s at %s: %v", e.Operation, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("network error during %s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkErrorWithEndpoint creates a NetworkError for the given endpoint
func NewNetworkErrorWithEndpoint(operation, endpoint string, err error) *NetworkError {
	return &NetworkError{Operation: operation, Endpoint: endpoint, Err: err}
}

// ParseError represents a response parsing error
type ParseError struct {
	Message string
	Path    string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse error at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// NewParseError creates a new ParseError
func NewParseError(message, path string) *ParseError {
	return &ParseError{Message: message, Path: path}
}

// Is allows comparison with sentinel errors
func (e *ParseError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ParseError)
	return ok
}

// GetHTTPStatus returns the HTTP status carried by err, or 0.
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint carried by err, or "".
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Endpoint
	}
	return ""
}

// GetResponseBody returns the response body attached to an APIError, or "".
func GetResponseBody(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Body
	}
	return ""
}

// IsNetworkError reports whether err is a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsTimeoutError reports whether err was caused by a deadline or transport timeout
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}

// IsParseError reports whether err is a response parsing failure
func IsParseError(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}

// Hint suggests a fix for the failures a user can act on, or "".
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case IsTimeoutError(err):
		return "request timed out, try again or raise timeout_seconds"
	case IsNetworkError(err):
		return "is the coach backend running? check --api-url or HOTMESS_API_URL"
	case IsParseError(err):
		return "the backend answered with something that is not JSON"
	case errors.Is(err, ErrResponseTooLarge):
		return "the reply is larger than the client accepts"
	}
	switch status := GetHTTPStatus(err); {
	case status == 404 || status == 405:
		return "no chat route at this address, check --api-url"
	case status >= 500:
		return "the backend failed, check its logs"
	}
	return ""
}

// Describe renders err with every diagnostic detail available, for logs.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if body := GetResponseBody(err); body != "" {
		msg += " body=" + body
	}
	if hint := Hint(err); hint != "" {
		msg += " (" + hint + ")"
	}
	return msg
}
