package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Client reads user profiles from the GitHub REST API
type Client struct {
	client *github.Client
	logger zerolog.Logger
}

type clientOptions struct {
	logger  zerolog.Logger
	timeout time.Duration
}

// Option configures a Client
type Option func(*clientOptions)

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

// NewClient creates a new GitHub API client with the provided token
func NewClient(token string, opts ...Option) *Client {
	options := clientOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&options)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = options.timeout

	return &Client{
		client: github.NewClient(tc),
		logger: options.logger,
	}
}

// SetBaseURL points the client at a different API root, such as a GitHub
// Enterprise server. A trailing slash is added when missing.
func (c *Client) SetBaseURL(rawURL string) error {
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid GitHub API URL %q: %w", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid GitHub API URL %q: scheme and host are required", rawURL)
	}

	c.client.BaseURL = u
	return nil
}

// BaseURL returns the API root the client sends requests to
func (c *Client) BaseURL() string {
	return c.client.BaseURL.String()
}

// GetUser retrieves the public profile of the given user
func (c *Client) GetUser(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		// go-github treats an empty name as the authenticated user
		return nil, fmt.Errorf("GitHub username cannot be empty")
	}

	c.logger.Debug().Str("username", username).Msg("Fetching GitHub user")

	user, _, err := c.client.Users.Get(ctx, username)
	if err != nil {
		apiErr := WrapError(err, fmt.Sprintf("user %s", username))
		c.logger.Error().
			Int("status", apiErr.StatusCode).
			Str("body", apiErr.Body).
			Str("type", string(apiErr.Type)).
			Msgf("Error retrieving GitHub user %s", username)
		return nil, apiErr
	}

	return convertGitHubUser(user), nil
}

// convertGitHubUser converts a GitHub API user to our internal type
func convertGitHubUser(user *github.User) *User {
	return &User{
		Login:           user.GetLogin(),
		ID:              user.GetID(),
		Name:            user.GetName(),
		Company:         user.GetCompany(),
		Location:        user.GetLocation(),
		Email:           user.GetEmail(),
		TwitterUsername: user.GetTwitterUsername(),
	}
}
