// Package cli configuration management commands.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/releasekit/jira-release-sync/internal/config"
)

// newConfigCmd creates the 'config' command group.
func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage stored Jira credentials",
		Long: `Credential management for jira-release-sync.

Commands:
  init - Interactive credentials setup
  show - Display stored credentials (token redacted)
  path - Show credentials file path`,
	}

	configCmd.AddCommand(newConfigInitCmd())
	configCmd.AddCommand(newConfigShowCmd())
	configCmd.AddCommand(newConfigPathCmd())

	return configCmd
}

// newConfigInitCmd creates the 'config init' command.
func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize stored credentials interactively",
		Long: `Interactive credentials setup.

Stores email, API token, and tenant subdomain in
~/.config/jira-release-sync/config with user-only permissions.
Use --force to overwrite an existing file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultCredentialsPath()
			if err != nil {
				return err
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					fmt.Printf("Credentials already exist at: %s\n", path)
					fmt.Println("Use --force to overwrite or 'config show' to view them.")
					return nil
				}
			}

			fmt.Println("Jira Credentials Setup")
			fmt.Println("======================")
			fmt.Println()

			reader := bufio.NewReader(os.Stdin)

			var email string
			for email == "" {
				fmt.Print("Account email (required): ")
				input, _ := reader.ReadString('\n')
				email = strings.TrimSpace(input)
				if email == "" {
					fmt.Println("  Error: email is required")
				}
			}

			var subdomain string
			for subdomain == "" {
				fmt.Print("Tenant subdomain, {subdomain}.atlassian.net (required): ")
				input, _ := reader.ReadString('\n')
				subdomain = strings.TrimSpace(input)
				if subdomain == "" {
					fmt.Println("  Error: subdomain is required")
				}
			}

			token, err := promptToken(reader)
			if err != nil {
				return err
			}

			creds := &config.Credentials{
				Email:     email,
				APIToken:  token,
				Subdomain: subdomain,
			}
			if err := config.SaveCredentials(creds, path); err != nil {
				return err
			}

			fmt.Printf("\nCredentials saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing credentials")
	return cmd
}

// promptToken reads the API token, with hidden input when stdin is a TTY.
func promptToken(reader *bufio.Reader) (string, error) {
	for {
		fmt.Print("API token (required): ")

		var token string
		if term.IsTerminal(int(os.Stdin.Fd())) {
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Println()
			if err != nil {
				return "", fmt.Errorf("failed to read token: %w", err)
			}
			token = strings.TrimSpace(string(raw))
		} else {
			input, err := reader.ReadString('\n')
			if err != nil {
				return "", fmt.Errorf("failed to read token: %w", err)
			}
			token = strings.TrimSpace(input)
		}

		if token != "" {
			return token, nil
		}
		fmt.Println("  Error: API token is required")
	}
}

// newConfigShowCmd creates the 'config show' command.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := config.LoadCredentials("")
			if err != nil {
				return err
			}

			token := "(not set)"
			if creds.APIToken != "" {
				token = "****"
			}
			email := creds.Email
			if email == "" {
				email = "(not set)"
			}
			subdomain := creds.Subdomain
			if subdomain == "" {
				subdomain = "(not set)"
			}

			fmt.Printf("email:     %s\n", email)
			fmt.Printf("api_token: %s\n", token)
			fmt.Printf("subdomain: %s\n", subdomain)
			return nil
		},
	}
}

// newConfigPathCmd creates the 'config path' command.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show credentials file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultCredentialsPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}
