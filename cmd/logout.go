// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"tumblr-repl/cli/internal/keychain"

	"github.com/spf13/cobra"
)

// logoutCmd removes the credentials saved by login.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the OAuth credentials saved in the OS keychain",
	Long: `The logout command deletes the credentials stored by 'tumblr-repl login'.
Credential files on disk and environment variables are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		km, err := keychain.GetManager()
		if err != nil {
			return err
		}
		if err := km.ClearCredentials(); err != nil {
			return err
		}
		fmt.Println("✅ Keychain credentials have been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
