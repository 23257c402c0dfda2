package baidu

import (
	"errors"
	"fmt"
)

// Error represents a Baidu vendor error envelope: the provider returned a
// structured error body instead of the expected payload.
type Error struct {
	// Code is the vendor error code (error_code or err_no).
	Code int `json:"error_code"`

	// Message is the vendor error message (error_msg or err_msg).
	Message string `json:"error_msg"`

	// HTTPStatus is the HTTP status code of the response.
	HTTPStatus int `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("baidu: %s (code=%d)", e.Message, e.Code)
}

// IsTokenError returns true if the access token was rejected or has expired.
func (e *Error) IsTokenError() bool {
	return e.Code == 110 || e.Code == 111
}

// IsRateLimit returns true if this is a QPS or quota limit error.
func (e *Error) IsRateLimit() bool {
	return e.Code == 4 || e.Code == 17 || e.Code == 18 || e.Code == 19
}

// IsServerError returns true if this is a provider-side error.
func (e *Error) IsServerError() bool {
	return e.Code == 282000 || e.HTTPStatus >= 500
}

// AsError extracts *Error from an error.
//
// Example:
//
//	if e, ok := baidu.AsError(err); ok && e.IsTokenError() {
//	    client.InvalidateToken(ctx, scope)
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AuthError represents a failed token exchange: the token endpoint returned
// a non-success status or an error/error_description pair.
type AuthError struct {
	// Code is the OAuth error code, e.g. "invalid_client".
	Code string

	// Description is the human-readable error description.
	Description string

	// HTTPStatus is the HTTP status code of the response.
	HTTPStatus int
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("baidu: token exchange failed: %s (%s)", e.Description, e.Code)
}

// AsAuthError extracts *AuthError from an error.
func AsAuthError(err error) (*AuthError, bool) {
	var e *AuthError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// wrapError wraps transport-level failures with context.
func wrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
