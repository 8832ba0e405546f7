package freshdesk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents different categories of Freshdesk API errors
type ErrorType string

const (
	ErrorTypeAuth        ErrorType = "authentication"
	ErrorTypePermission  ErrorType = "permission"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeConflict    ErrorType = "conflict"
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeUnavailable ErrorType = "unavailable"
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeDecode      ErrorType = "decode"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// FieldError is a single entry of a Freshdesk validation error body
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// errorBody is the JSON error document Freshdesk returns on 4xx responses
type errorBody struct {
	Description string       `json:"description"`
	Message     string       `json:"message"`
	Errors      []FieldError `json:"errors"`
}

// APIError is a failed Freshdesk call. StatusCode is 0 when no response was
// received; Body holds the raw response body otherwise.
type APIError struct {
	Type       ErrorType    `json:"type"`
	Message    string       `json:"message"`
	Resource   string       `json:"resource,omitempty"`
	StatusCode int          `json:"status_code,omitempty"`
	Body       string       `json:"body,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Cause      error        `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	var b strings.Builder
	if e.Resource != "" {
		fmt.Fprintf(&b, "%s error for %s: %s", e.Type, e.Resource, e.Message)
	} else {
		fmt.Fprintf(&b, "%s error: %s", e.Type, e.Message)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is a Freshdesk 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeNotFound
}

// newResponseError classifies a non-success response
func newResponseError(resource string, statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		Resource:   resource,
		StatusCode: statusCode,
		Body:       string(body),
	}

	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)
	apiErr.Errors = parsed.Errors

	switch {
	case statusCode == http.StatusUnauthorized:
		apiErr.Type = ErrorTypeAuth
		apiErr.Message = "Authentication failed. Please check your FRESHDESK_TOKEN"
	case statusCode == http.StatusForbidden:
		apiErr.Type = ErrorTypePermission
		apiErr.Message = "Insufficient permissions. The agent behind the token cannot manage contacts"
	case statusCode == http.StatusNotFound:
		apiErr.Type = ErrorTypeNotFound
		apiErr.Message = "Resource not found"
	case statusCode == http.StatusConflict:
		apiErr.Type = ErrorTypeConflict
		apiErr.Message = "Resource conflict occurred"
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		apiErr.Type = ErrorTypeValidation
		apiErr.Message = "Validation failed"
	case statusCode == http.StatusTooManyRequests:
		apiErr.Type = ErrorTypeRateLimit
		apiErr.Message = "Freshdesk API rate limit exceeded"
	case statusCode >= 500:
		apiErr.Type = ErrorTypeUnavailable
		apiErr.Message = "Freshdesk API is temporarily unavailable. Please try again later"
	default:
		apiErr.Type = ErrorTypeUnknown
		apiErr.Message = fmt.Sprintf("unexpected status %d %s", statusCode, http.StatusText(statusCode))
	}

	if len(parsed.Errors) > 0 {
		var details []string
		for _, e := range parsed.Errors {
			if e.Field != "" {
				details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Message))
			} else {
				details = append(details, e.Message)
			}
		}
		apiErr.Message = fmt.Sprintf("%s: %s", apiErr.Message, strings.Join(details, "; "))
	} else if detail := firstNonEmpty(parsed.Description, parsed.Message); detail != "" && apiErr.Type == ErrorTypeUnknown {
		apiErr.Message = fmt.Sprintf("%s: %s", apiErr.Message, detail)
	}

	return apiErr
}

// newTransportError wraps a failure that produced no HTTP response
func newTransportError(resource string, err error) *APIError {
	return &APIError{
		Type:     ErrorTypeNetwork,
		Message:  "Network error occurred. Please check your connection and try again",
		Resource: resource,
		Cause:    err,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
