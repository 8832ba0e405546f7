package freshdesk

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResponseError(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedType ErrorType
		expectedMsg  string
	}{
		{
			name:         "unauthorized",
			status:       http.StatusUnauthorized,
			body:         `{"code":"invalid_credentials","message":"You have to be logged in to perform this action."}`,
			expectedType: ErrorTypeAuth,
			expectedMsg:  "Authentication failed",
		},
		{
			name:         "forbidden",
			status:       http.StatusForbidden,
			expectedType: ErrorTypePermission,
			expectedMsg:  "Insufficient permissions",
		},
		{
			name:         "not found",
			status:       http.StatusNotFound,
			expectedType: ErrorTypeNotFound,
			expectedMsg:  "Resource not found",
		},
		{
			name:         "duplicate value",
			status:       http.StatusConflict,
			body:         `{"description":"Validation failed","errors":[{"field":"email","message":"It should be a unique value","code":"duplicate_value"}]}`,
			expectedType: ErrorTypeConflict,
			expectedMsg:  "Resource conflict occurred: email: It should be a unique value",
		},
		{
			name:         "validation without field",
			status:       http.StatusBadRequest,
			body:         `{"description":"Validation failed","errors":[{"message":"Unexpected/invalid field in request","code":"invalid_field"}]}`,
			expectedType: ErrorTypeValidation,
			expectedMsg:  "Validation failed: Unexpected/invalid field in request",
		},
		{
			name:         "rate limited",
			status:       http.StatusTooManyRequests,
			expectedType: ErrorTypeRateLimit,
			expectedMsg:  "rate limit exceeded",
		},
		{
			name:         "bad gateway",
			status:       http.StatusBadGateway,
			body:         "<html>bad gateway</html>",
			expectedType: ErrorTypeUnavailable,
			expectedMsg:  "temporarily unavailable",
		},
		{
			name:         "unexpected status with description",
			status:       http.StatusMethodNotAllowed,
			body:         `{"message":"GET method is not allowed"}`,
			expectedType: ErrorTypeUnknown,
			expectedMsg:  "unexpected status 405 Method Not Allowed: GET method is not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := newResponseError("contact", tt.status, []byte(tt.body))

			assert.Equal(t, tt.expectedType, apiErr.Type)
			assert.Contains(t, apiErr.Message, tt.expectedMsg)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.body, apiErr.Body)
			assert.Equal(t, "contact", apiErr.Resource)
		})
	}
}

func TestAPIErrorString(t *testing.T) {
	err := &APIError{Type: ErrorTypeNotFound, Message: "Resource not found", Resource: "contact 7", StatusCode: 404}
	assert.Equal(t, "not_found error for contact 7: Resource not found (status 404)", err.Error())

	err = &APIError{Type: ErrorTypeNetwork, Message: "offline"}
	assert.Equal(t, "network error: offline", err.Error())
}

func TestTransportErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	apiErr := newTransportError("contact", cause)

	assert.ErrorIs(t, apiErr, cause)
	assert.Equal(t, ErrorTypeNetwork, apiErr.Type)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("update: %w", &APIError{Type: ErrorTypeNotFound})))
	assert.False(t, IsNotFound(&APIError{Type: ErrorTypeConflict}))
	assert.False(t, IsNotFound(errors.New("plain")))
}
