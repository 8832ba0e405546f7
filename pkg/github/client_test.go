package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResponse struct {
	status int
	body   interface{}
}

// recordedRequests collects the requests seen by a mock server
type recordedRequests struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (r *recordedRequests) add(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
}

func (r *recordedRequests) all() []*http.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*http.Request(nil), r.requests...)
}

// mockGitHubServer creates a test HTTP server that mocks GitHub API responses
func mockGitHubServer(_ *testing.T, responses map[string]mockResponse) (*httptest.Server, *recordedRequests) {
	recorded := &recordedRequests{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorded.add(r.Clone(context.Background()))
		w.Header().Set("Content-Type", "application/json")

		key := fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		if response, exists := responses[key]; exists {
			w.WriteHeader(response.status)
			if s, ok := response.body.(string); ok {
				_, _ = w.Write([]byte(s))
				return
			}
			_ = json.NewEncoder(w).Encode(response.body)
			return
		}

		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	}))
	return server, recorded
}

// createTestClient creates a GitHub client configured to use the test server
func createTestClient(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()
	client := NewClient("test-token", opts...)

	serverURL, err := url.Parse(server.URL + "/")
	if err != nil {
		t.Fatalf("Failed to parse server URL: %v", err)
	}

	client.client.BaseURL = serverURL

	return client
}

func johnDoe() map[string]interface{} {
	return map[string]interface{}{
		"login":            "john_doe",
		"id":               123456,
		"name":             "John Doe",
		"company":          "ABC Company",
		"location":         "New York",
		"email":            "john.doe@example.com",
		"twitter_username": "johndoe",
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-token")

	require.NotNil(t, client)
	require.NotNil(t, client.client)
	assert.Equal(t, "https://api.github.com/", client.BaseURL())
}

func TestGetUser(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		response      mockResponse
		expectedUser  *User
		expectedType  ErrorType
		expectedError bool
	}{
		{
			name:     "successful get user",
			username: "john_doe",
			response: mockResponse{status: http.StatusOK, body: johnDoe()},
			expectedUser: &User{
				Login:           "john_doe",
				ID:              123456,
				Name:            "John Doe",
				Company:         "ABC Company",
				Location:        "New York",
				Email:           "john.doe@example.com",
				TwitterUsername: "johndoe",
			},
		},
		{
			name:     "optional fields absent",
			username: "ghost",
			response: mockResponse{status: http.StatusOK, body: map[string]interface{}{
				"login":   "ghost",
				"id":      10137,
				"name":    nil,
				"company": nil,
			}},
			expectedUser: &User{Login: "ghost", ID: 10137},
		},
		{
			name:          "user not found",
			username:      "nobody",
			response:      mockResponse{status: http.StatusNotFound, body: `{"message":"Not Found"}`},
			expectedType:  ErrorTypeNotFound,
			expectedError: true,
		},
		{
			name:          "bad credentials",
			username:      "john_doe",
			response:      mockResponse{status: http.StatusUnauthorized, body: `{"message":"Bad credentials"}`},
			expectedType:  ErrorTypeAuth,
			expectedError: true,
		},
		{
			name:          "server error",
			username:      "john_doe",
			response:      mockResponse{status: http.StatusBadGateway, body: `{"message":"Server Error"}`},
			expectedType:  ErrorTypeUnavailable,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := map[string]mockResponse{
				fmt.Sprintf("GET /users/%s", tt.username): tt.response,
			}

			server, recorded := mockGitHubServer(t, responses)
			defer server.Close()

			client := createTestClient(t, server)

			user, err := client.GetUser(context.Background(), tt.username)

			assert.Len(t, recorded.all(), 1, "exactly one request per lookup")

			if tt.expectedError {
				require.Error(t, err)
				assert.Nil(t, user)

				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.expectedType, apiErr.Type)
				assert.Equal(t, tt.response.status, apiErr.StatusCode)
				assert.Equal(t, tt.response.body, apiErr.Body)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedUser, user)
		})
	}
}

func TestGetUserSendsAuthHeaders(t *testing.T) {
	server, recorded := mockGitHubServer(t, map[string]mockResponse{
		"GET /users/john_doe": {status: http.StatusOK, body: johnDoe()},
	})
	defer server.Close()

	client := createTestClient(t, server)

	_, err := client.GetUser(context.Background(), "john_doe")
	require.NoError(t, err)

	requests := recorded.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "Bearer test-token", requests[0].Header.Get("Authorization"))
	assert.Equal(t, "application/vnd.github.v3+json", requests[0].Header.Get("Accept"))
}

func TestGetUserEmptyUsername(t *testing.T) {
	server, recorded := mockGitHubServer(t, nil)
	defer server.Close()

	client := createTestClient(t, server)

	user, err := client.GetUser(context.Background(), "   ")

	require.Error(t, err)
	assert.Nil(t, user)
	assert.Empty(t, recorded.all(), "no request should be sent for an empty username")
}

func TestGetUserLogsFailure(t *testing.T) {
	server, _ := mockGitHubServer(t, map[string]mockResponse{
		"GET /users/nobody": {status: http.StatusNotFound, body: `{"message":"User not found"}`},
	})
	defer server.Close()

	var buf bytes.Buffer
	client := createTestClient(t, server, WithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)))

	_, err := client.GetUser(context.Background(), "nobody")
	require.Error(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.EqualValues(t, 404, entry["status"])
	assert.Equal(t, `{"message":"User not found"}`, entry["body"])
	assert.Contains(t, entry["message"], "Error retrieving GitHub user nobody")
}

func TestGetUserNetworkError(t *testing.T) {
	server, _ := mockGitHubServer(t, nil)
	client := createTestClient(t, server)
	server.Close()

	_, err := client.GetUser(context.Background(), "john_doe")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrorTypeNetwork, apiErr.Type)
	assert.Zero(t, apiErr.StatusCode)
}

func TestSetBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		expected string
		wantErr  bool
	}{
		{
			name:     "adds trailing slash",
			rawURL:   "https://github.example.com/api/v3",
			expected: "https://github.example.com/api/v3/",
		},
		{
			name:     "keeps trailing slash",
			rawURL:   "http://127.0.0.1:8080/",
			expected: "http://127.0.0.1:8080/",
		},
		{
			name:    "missing scheme",
			rawURL:  "github.example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient("test-token")
			err := client.SetBaseURL(tt.rawURL)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, "https://api.github.com/", client.BaseURL())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, client.BaseURL())
		})
	}
}
