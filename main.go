// Package main is the entry point for the tumblr-repl console.
// It starts an interactive shell around an OAuth1-signed Tumblr API client.
package main

import (
	"tumblr-repl/cli/cmd"
)

// main is the entry point for the tumblr-repl application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
