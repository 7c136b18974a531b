package generator

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingCredential is returned when no API key is configured.
var ErrMissingCredential = errors.New("generator API key is not configured")

// Code classifies a generation failure.
type Code string

const (
	CodeAuthentication Code = "authentication_failure"
	CodeQuotaExceeded  Code = "remote_quota_exceeded"
	CodeUnclassified   Code = "unclassified"
)

// Error is a classified failure from the remote provider.
type Error struct {
	Code       Code
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsCode reports whether err is a generator Error with the given code.
func IsCode(err error, code Code) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Code == code
}

// codeForStatus maps an HTTP status and provider error status to a Code,
// falling back to the error message when neither is conclusive.
func codeForStatus(status int, providerStatus, message string) Code {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return CodeAuthentication
	case status == http.StatusTooManyRequests:
		return CodeQuotaExceeded
	}

	switch strings.ToUpper(providerStatus) {
	case "RESOURCE_EXHAUSTED", "RATE_LIMIT_ERROR":
		return CodeQuotaExceeded
	case "UNAUTHENTICATED", "PERMISSION_DENIED", "AUTHENTICATION_ERROR", "PERMISSION_ERROR":
		return CodeAuthentication
	}
	return codeForText(message)
}

func codeForText(msg string) Code {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "429"),
		strings.Contains(lower, "quota"),
		strings.Contains(lower, "rate limit"),
		strings.Contains(lower, "resource_exhausted"):
		return CodeQuotaExceeded
	case strings.Contains(lower, "401"),
		strings.Contains(lower, "403"),
		strings.Contains(lower, "api key"),
		strings.Contains(lower, "unauthenticated"):
		return CodeAuthentication
	}
	return CodeUnclassified
}

// Classify turns any error into an *Error. Errors that already carry a code are
// returned as is; others are matched on their text, for clients that cannot
// report a structured status.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}

	msg := err.Error()
	return &Error{Code: codeForText(msg), Message: msg, Err: err}
}
