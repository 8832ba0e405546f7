package github

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
)

// ErrorType represents different categories of GitHub API errors
type ErrorType string

const (
	ErrorTypeAuth        ErrorType = "authentication"
	ErrorTypePermission  ErrorType = "permission"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeUnavailable ErrorType = "unavailable"
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// APIError is a failed GitHub call. StatusCode is 0 when no response was
// received; Body holds the raw response body otherwise.
type APIError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Resource   string    `json:"resource,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Body       string    `json:"body,omitempty"`
	Cause      error     `json:"-"`
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

// IsNotFound reports whether err is a GitHub 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrorTypeNotFound
}

// WrapError converts an error returned by go-github into an *APIError
func WrapError(err error, resource string) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Resource == "" {
			apiErr.Resource = resource
		}
		return apiErr
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &APIError{
			Type:       ErrorTypeRateLimit,
			Message:    fmt.Sprintf("Rate limit exceeded. Reset at %v", rateErr.Rate.Reset.Time),
			Resource:   resource,
			StatusCode: statusOf(rateErr.Response),
			Body:       readBody(rateErr.Response),
			Cause:      err,
		}
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		return parseErrorResponse(ghErr, resource)
	}

	if isNetworkError(err) {
		return &APIError{
			Type:     ErrorTypeNetwork,
			Message:  "Network error occurred. Please check your connection and try again",
			Resource: resource,
			Cause:    err,
		}
	}

	return &APIError{
		Type:     ErrorTypeUnknown,
		Message:  err.Error(),
		Resource: resource,
		Cause:    err,
	}
}

// parseErrorResponse classifies a GitHub error response by status code
func parseErrorResponse(ghErr *github.ErrorResponse, resource string) *APIError {
	apiErr := &APIError{
		Resource:   resource,
		StatusCode: statusOf(ghErr.Response),
		Body:       readBody(ghErr.Response),
		Cause:      ghErr,
	}

	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Type = ErrorTypeAuth
		apiErr.Message = "Authentication failed. Please check your GitHub token"
		if strings.Contains(ghErr.Message, "credentials") || strings.Contains(ghErr.Message, "token") {
			apiErr.Message = "Invalid or expired GitHub token. Please update your GITHUB_TOKEN environment variable or configuration"
		}

	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(ghErr.Message), "rate limit") {
			apiErr.Type = ErrorTypeRateLimit
			apiErr.Message = "GitHub API rate limit exceeded. Please wait before retrying"
		} else {
			apiErr.Type = ErrorTypePermission
			apiErr.Message = "Insufficient permissions. Your token may not have the required scopes"
		}

	case http.StatusNotFound:
		apiErr.Type = ErrorTypeNotFound
		if strings.Contains(resource, "user") {
			apiErr.Message = "User not found. Please verify the username is correct"
		} else {
			apiErr.Message = "Resource not found"
		}

	case http.StatusUnprocessableEntity:
		apiErr.Type = ErrorTypeValidation
		apiErr.Message = "Validation failed"
		if len(ghErr.Errors) > 0 {
			var details []string
			for _, e := range ghErr.Errors {
				if e.Field != "" {
					details = append(details, fmt.Sprintf("%s: %s", e.Field, e.Message))
				} else {
					details = append(details, e.Message)
				}
			}
			apiErr.Message = fmt.Sprintf("Validation failed: %s", strings.Join(details, "; "))
		}

	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		apiErr.Type = ErrorTypeUnavailable
		apiErr.Message = "GitHub API is temporarily unavailable. Please try again later"

	default:
		apiErr.Type = ErrorTypeUnknown
		apiErr.Message = ghErr.Message
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(apiErr.StatusCode)
		}
	}

	return apiErr
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

// readBody returns the raw error body. go-github repopulates Body after
// decoding the error, so it can be read again here.
func readBody(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return ""
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	return string(data)
}

// isNetworkError checks if an error is a network-related error
func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no such host",
		"i/o timeout",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
