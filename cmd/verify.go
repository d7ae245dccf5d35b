// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tumblr-repl/cli/internal/config"
	"tumblr-repl/cli/internal/httperrors"
	"tumblr-repl/cli/internal/logging"
	"tumblr-repl/cli/internal/tumblr"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
)

// verify calls userInfo behind a spinner and reports the outcome.
// A failed check is reported but does not prevent the console from starting.
func verify(ctx context.Context, client tumblr.Requester, cfg config.Config) {
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout+5*time.Second)
	defer cancel()

	cursor.Hide()
	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start("Verifying tokens")

	resp, err := userInfo(ctx, client)

	if spinner != nil {
		_ = spinner.Stop()
	}
	cursor.Show()

	if err != nil {
		var apiErr *tumblr.APIError
		if errors.As(err, &apiErr) {
			logging.PresentAPIError(err)
			return
		}
		_ = httperrors.FormatNetworkError(err, "verifying tokens")
		return
	}

	if name := userName(resp); name != "" {
		pterm.Println(pterm.NewStyle(pterm.FgGreen).Sprint("✅ Authenticated as " + name))
	} else {
		pterm.Println(pterm.NewStyle(pterm.FgGreen).Sprint("✅ Tokens accepted"))
	}
	fmt.Println()
}

func userInfo(ctx context.Context, client tumblr.Requester) (any, error) {
	m, _ := tumblr.Lookup("userInfo")

	type outcome struct {
		resp any
		err  error
	}
	done := make(chan outcome, 1)
	if _, err := m.Invoke(ctx, client, nil, nil, func(err error, resp any) {
		done <- outcome{resp, err}
	}); err != nil {
		return nil, err
	}

	select {
	case o := <-done:
		return o.resp, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// userName digs response.user.name out of a userInfo payload.
func userName(resp any) string {
	m, ok := resp.(map[string]any)
	if !ok {
		return ""
	}
	user, ok := m["user"].(map[string]any)
	if !ok {
		return ""
	}
	name, _ := user["name"].(string)
	return name
}
