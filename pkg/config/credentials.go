package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables holding the API tokens
const (
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvFreshdeskToken = "FRESHDESK_TOKEN"
)

// LookupFunc reports the value of an environment variable, like os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Credentials holds the bearer tokens for both remote services
type Credentials struct {
	GitHubToken    string
	FreshdeskToken string
}

// ResolveCredentials resolves both tokens. The environment takes precedence
// over the config file; a token missing from both is a validation error.
func ResolveCredentials(cfg *Config, lookup LookupFunc) (*Credentials, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	creds := &Credentials{
		GitHubToken:    resolveToken(lookup, EnvGitHubToken, cfg.GitHub.Token),
		FreshdeskToken: resolveToken(lookup, EnvFreshdeskToken, cfg.Freshdesk.Token),
	}

	var errs ValidationErrors
	if creds.GitHubToken == "" {
		errs.Add(EnvGitHubToken, "", "no GitHub token found: set GITHUB_TOKEN or github.token in the config file")
	}
	if creds.FreshdeskToken == "" {
		errs.Add(EnvFreshdeskToken, "", "no Freshdesk token found: set FRESHDESK_TOKEN or freshdesk.token in the config file")
	}
	if errs.HasErrors() {
		return nil, errs
	}

	return creds, nil
}

func resolveToken(lookup LookupFunc, key, fallback string) string {
	if lookup != nil {
		if v, ok := lookup(key); ok {
			if token := strings.TrimSpace(v); token != "" {
				return token
			}
		}
	}
	return strings.TrimSpace(fallback)
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}
