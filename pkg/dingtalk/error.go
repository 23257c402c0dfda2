package dingtalk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a DingTalk API error envelope. The v1.0 platform uses
// string error codes such as "Forbidden.AccessDenied.AccessTokenPermissionDenied".
type Error struct {
	// Code is the platform error code.
	Code string `json:"code"`

	// Message is the error message.
	Message string `json:"message"`

	// HTTPStatus is the HTTP status code of the response.
	HTTPStatus int `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("dingtalk: %s (code=%s, http_status=%d)", e.Message, e.Code, e.HTTPStatus)
}

// IsAuthError returns true if the access token was rejected or the
// application lacks the required permission.
func (e *Error) IsAuthError() bool {
	return e.HTTPStatus == http.StatusUnauthorized ||
		e.HTTPStatus == http.StatusForbidden ||
		strings.HasPrefix(e.Code, "Forbidden.") ||
		strings.HasPrefix(e.Code, "InvalidAuthentication")
}

// IsRateLimit returns true if this is a throttling error.
func (e *Error) IsRateLimit() bool {
	return e.HTTPStatus == http.StatusTooManyRequests ||
		strings.HasPrefix(e.Code, "Throttling")
}

// AsError extracts *Error from an error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// parseAPIError maps a non-2xx response body to an error. A body that does
// not carry the {code, message} envelope fails closed as a transport-style
// error built from the status code.
func parseAPIError(statusCode int, body []byte) error {
	var envelope struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Code != "" {
		return &Error{
			Code:       envelope.Code,
			Message:    envelope.Message,
			HTTPStatus: statusCode,
		}
	}
	return fmt.Errorf("dingtalk: unexpected status %d: %s", statusCode, strings.TrimSpace(string(body)))
}

// wrapError wraps transport-level failures with context.
func wrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
