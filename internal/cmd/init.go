package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gitdesk/pkg/config"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gitdesk configuration",
	Long:  "Create a default configuration file for gitdesk",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	out := cmd.OutOrStdout()

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "⚠️  Configuration file already exists at: %s\n", path)
		fmt.Fprint(out, "Do you want to overwrite it? (y/N): ")
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n') // Ignore error for user input
		response = strings.TrimSpace(response)
		if response != "y" && response != "Y" {
			fmt.Fprintln(out, "Configuration initialization cancelled.")
			return nil
		}
	}

	// Tokens are left empty; GITHUB_TOKEN and FRESHDESK_TOKEN are preferred
	defaultConfig := &config.Config{}

	var err error
	if configPath == "" {
		err = defaultConfig.SaveConfig()
	} else {
		err = defaultConfig.SaveConfigToPath(path)
	}
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(out, "✅ Configuration file created at: %s\n", path)
	fmt.Fprintln(out, "📝 Set GITHUB_TOKEN and FRESHDESK_TOKEN, or add the tokens to this file.")

	return nil
}
