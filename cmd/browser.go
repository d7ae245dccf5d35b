// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os/exec"
	"runtime"
)

// openBrowser attempts to open url in the user's default browser.
// It starts the platform opener but does not wait for it.
func openBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
