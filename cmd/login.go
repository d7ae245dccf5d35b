// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"

	"tumblr-repl/cli/internal/credentials"
	"tumblr-repl/cli/internal/keychain"
	"tumblr-repl/cli/internal/terminal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// loginCmd stores OAuth credentials in the OS keychain.
// The console falls back to them when no credentials file is found.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save Tumblr OAuth credentials to the OS keychain",
	Long: `The login command asks for the consumer key and secret of a registered
Tumblr application, and optionally for a user token and token secret, then stores
them in the OS keychain.

When the token fields are left blank, the API console is opened in the browser so
user tokens can be generated. Run login again afterwards to save them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := promptCredentials(terminal.NewPrompter())
		if err != nil {
			return err
		}
		if creds.ConsumerKey == "" || creds.ConsumerSecret == "" {
			return fmt.Errorf("consumer key and consumer secret are required")
		}

		data, err := json.Marshal(creds)
		if err != nil {
			return err
		}
		km, err := keychain.GetManager()
		if err != nil {
			return err
		}
		if err := km.SaveCredentials(data); err != nil {
			return err
		}
		fmt.Println("✅ Credentials saved to the OS keychain")

		if creds.Token != "" && creds.TokenSecret != "" {
			return nil
		}
		if u, ok := creds.ConsoleAuthURL(); ok {
			fmt.Println()
			fmt.Println("You can generate user tokens by going to the API console:")
			fmt.Println(pterm.NewStyle(pterm.FgMagenta).Sprint(u))
			_ = openBrowser(u)
			fmt.Println()
			fmt.Println("Then run 'tumblr-repl login' again with the token and token secret.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

// promptCredentials reads the four OAuth values. Secrets are read without echo
// and their prompt lines are cleared afterwards.
func promptCredentials(p *terminal.Prompter) (credentials.Credentials, error) {
	ck, err := p.Prompt("Consumer key: ")
	if err != nil {
		return credentials.Credentials{}, err
	}
	cs, err := secret(p, "Consumer secret: ")
	if err != nil {
		return credentials.Credentials{}, err
	}
	token, err := p.Prompt("Token (optional): ")
	if err != nil {
		return credentials.Credentials{}, err
	}
	tokenSecret, err := secret(p, "Token secret (optional): ")
	if err != nil {
		return credentials.Credentials{}, err
	}
	return credentials.New(ck, cs, token, tokenSecret), nil
}

func secret(p *terminal.Prompter, label string) (string, error) {
	v, err := p.Secret(label)
	if err != nil {
		return "", err
	}
	if terminal.IsInteractive() {
		terminal.ClearPreviousLines(len(label))
		fmt.Println(label + "********")
	}
	return v, nil
}
