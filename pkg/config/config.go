package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the gitdesk configuration
type Config struct {
	GitHub    GitHubConfig    `yaml:"github"`
	Freshdesk FreshdeskConfig `yaml:"freshdesk"`
}

// GitHubConfig represents GitHub-specific configuration
type GitHubConfig struct {
	Token string `yaml:"token,omitempty"`
	// APIURL points the client at a GitHub Enterprise API root
	APIURL string `yaml:"api_url,omitempty"`
}

// FreshdeskConfig represents Freshdesk-specific configuration
type FreshdeskConfig struct {
	Token string `yaml:"token,omitempty"`
	// BaseURL replaces https://{subdomain}.freshdesk.com/api/v2/ when set
	BaseURL string `yaml:"base_url,omitempty"`
}

// LoadConfig loads configuration from the default location
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil // Return empty config if file doesn't exist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to the default location
func (c *Config) SaveConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveConfigToPath(configPath)
}

// SaveConfigToPath saves configuration to a specific path.
// The file may hold API tokens, so it is written owner-readable only.
func (c *Config) SaveConfigToPath(path string) error {
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".gitdesk", "config.yaml"), nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.GitHub.APIURL != "" {
		if err := validateHTTPURL(c.GitHub.APIURL); err != nil {
			errs.Add("github.api_url", c.GitHub.APIURL, err.Error())
		}
	}

	if c.Freshdesk.BaseURL != "" {
		if err := validateHTTPURL(c.Freshdesk.BaseURL); err != nil {
			errs.Add("freshdesk.base_url", c.Freshdesk.BaseURL, err.Error())
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("URL must include a host")
	}
	return nil
}
