package freshdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// subdomainPattern matches a single DNS label
var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// Client talks to the Freshdesk v2 API of one account
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     zerolog.Logger
}

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	timeout    time.Duration
}

// Option configures a Client
type Option func(*clientOptions)

// WithBaseURL replaces the https://{subdomain}.freshdesk.com/api/v2/ root
func WithBaseURL(rawURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = rawURL
	}
}

// WithHTTPClient sets the client whose transport carries the requests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request tracing and failures
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithTimeout bounds each HTTP request. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// BaseURL returns the API root of a Freshdesk account
func BaseURL(subdomain string) string {
	return fmt.Sprintf("https://%s.freshdesk.com/api/v2/", subdomain)
}

// ValidateSubdomain checks that subdomain is usable as a DNS label
func ValidateSubdomain(subdomain string) error {
	if subdomain == "" {
		return fmt.Errorf("Freshdesk subdomain cannot be empty")
	}
	if !subdomainPattern.MatchString(subdomain) {
		return fmt.Errorf("invalid Freshdesk subdomain %q: use lowercase letters, digits and hyphens only", subdomain)
	}
	return nil
}

// NewClient creates a client for the given account subdomain
func NewClient(subdomain, token string, opts ...Option) (*Client, error) {
	options := clientOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&options)
	}

	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if err := ValidateSubdomain(subdomain); err != nil {
		return nil, err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("Freshdesk token cannot be empty")
	}

	rawURL := options.baseURL
	if rawURL == "" {
		rawURL = BaseURL(subdomain)
	}
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}
	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Freshdesk API URL %q: %w", rawURL, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid Freshdesk API URL %q: scheme and host are required", rawURL)
	}

	ctx := context.Background()
	if options.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, options.httpClient)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(ctx, ts)
	if options.timeout > 0 {
		httpClient.Timeout = options.timeout
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     options.logger,
	}, nil
}

// URL returns the API root the client sends requests to
func (c *Client) URL() string {
	return c.baseURL.String()
}

// SearchContacts finds contacts whose email matches exactly.
// No match is reported by Freshdesk as 200 with total 0; any other status,
// 404 included, is a failure.
func (c *Client) SearchContacts(ctx context.Context, email string) (*SearchResult, error) {
	u := c.endpoint("search/contacts")
	values, err := query.Values(searchOptions{Query: "email:" + email})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}
	u.RawQuery = values.Encode()

	var result SearchResult
	err = c.do(ctx, http.MethodGet, u, nil, http.StatusOK, &result, requestInfo{
		resource: fmt.Sprintf("contact search %s", email),
		action:   "Error searching Freshdesk contacts",
	})
	if err != nil {
		var apiErr *APIError
		if IsNotFound(err) && errors.As(err, &apiErr) {
			apiErr.Message = "Search returned 404; only HTTP 200 with total 0 is treated as no match"
		}
		return nil, err
	}

	if result.Results == nil {
		result.Results = []Contact{}
	}
	return &result, nil
}

// CreateContact creates a new contact
func (c *Client) CreateContact(ctx context.Context, payload ContactPayload) (*Contact, error) {
	var contact Contact
	err := c.do(ctx, http.MethodPost, c.endpoint("contacts"), payload, http.StatusCreated, &contact, requestInfo{
		resource: "contact",
		action:   "Error creating Freshdesk contact",
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateContact replaces the fields of an existing contact
func (c *Client) UpdateContact(ctx context.Context, id int64, payload ContactPayload) (*Contact, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid Freshdesk contact id %d", id)
	}

	var contact Contact
	err := c.do(ctx, http.MethodPut, c.endpoint(fmt.Sprintf("contacts/%d", id)), payload, http.StatusOK, &contact, requestInfo{
		resource: fmt.Sprintf("contact %d", id),
		action:   "Error updating Freshdesk contact",
	})
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// endpoint resolves path against the account's API root
func (c *Client) endpoint(path string) *url.URL {
	return c.baseURL.ResolveReference(&url.URL{Path: path})
}

type requestInfo struct {
	resource string
	action   string
}

// do sends one request and decodes the response into v when the status is
// wantStatus. Every failure is logged here with its status and raw body.
func (c *Client) do(ctx context.Context, method string, u *url.URL, body interface{}, wantStatus int, v interface{}, info requestInfo) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", info.resource, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", info.resource, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("method", method).Str("url", u.String()).Msg("Calling Freshdesk")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := newTransportError(info.resource, err)
		c.logFailure(apiErr, info.action)
		return apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := newTransportError(info.resource, err)
		apiErr.StatusCode = resp.StatusCode
		c.logFailure(apiErr, info.action)
		return apiErr
	}

	if resp.StatusCode != wantStatus {
		apiErr := newResponseError(info.resource, resp.StatusCode, data)
		c.logFailure(apiErr, info.action)
		return apiErr
	}

	if v != nil {
		if err := json.Unmarshal(data, v); err != nil {
			apiErr := &APIError{
				Type:       ErrorTypeDecode,
				Message:    fmt.Sprintf("failed to decode response: %v", err),
				Resource:   info.resource,
				StatusCode: resp.StatusCode,
				Body:       string(data),
				Cause:      err,
			}
			c.logFailure(apiErr, info.action)
			return apiErr
		}
	}

	return nil
}

func (c *Client) logFailure(apiErr *APIError, action string) {
	event := c.logger.Error().
		Int("status", apiErr.StatusCode).
		Str("body", apiErr.Body).
		Str("type", string(apiErr.Type))
	if apiErr.Cause != nil {
		event = event.Err(apiErr.Cause)
	}
	event.Msg(action)
}
