package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitdesk/pkg/config"
	"gitdesk/pkg/contactsync"
	"gitdesk/pkg/freshdesk"
	"gitdesk/pkg/github"
)

func runSync(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return cmd.Usage()
	}
	username, subdomain := args[0], args[1]

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	creds, err := config.ResolveCredentials(cfg, os.LookupEnv)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), verbose)

	ghClient := github.NewClient(creds.GitHubToken,
		github.WithLogger(logger),
		github.WithTimeout(requestTimeout),
	)
	if cfg.GitHub.APIURL != "" {
		if err := ghClient.SetBaseURL(cfg.GitHub.APIURL); err != nil {
			return err
		}
	}

	fdOpts := []freshdesk.Option{
		freshdesk.WithLogger(logger),
		freshdesk.WithTimeout(requestTimeout),
	}
	if cfg.Freshdesk.BaseURL != "" {
		fdOpts = append(fdOpts, freshdesk.WithBaseURL(cfg.Freshdesk.BaseURL))
	}
	fdClient, err := freshdesk.NewClient(subdomain, creds.FreshdeskToken, fdOpts...)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("github", ghClient.BaseURL()).
		Str("freshdesk", fdClient.URL()).
		Msg("Clients configured")

	syncer := contactsync.NewSyncer(ghClient, fdClient, contactsync.Options{
		Out:          cmd.OutOrStdout(),
		Logger:       &logger,
		RequireEmail: requireEmail,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if dryRun {
		_, err = syncer.DryRun(ctx, username)
	} else {
		_, err = syncer.Run(ctx, username)
	}
	if err != nil {
		logger.Debug().Err(err).Msg("Sync did not complete")
		if failOnError {
			return err
		}
	}
	return nil
}

// loadConfig reads the --config file or the default one and validates it
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadConfigFromPath(configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
