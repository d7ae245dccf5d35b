// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It includes functions for masking OAuth secrets in log messages, a small
// zerolog wrapper for the diagnostics log, and formatting of API errors for
// user-friendly display.
//
// The package helps ensure that consumer secrets, token secrets and request
// signatures are not accidentally exposed in logs or error messages.
package logging

import (
	"regexp"
)

var (
	reOAuthParam = regexp.MustCompile(`(?i)(oauth_(?:token|signature|consumer_key|nonce)=)("?)([^\s",&;]+)`)
	reSecretKey  = regexp.MustCompile(`(?i)((?:consumer_secret|token_secret|api_key)=)([^\s&;]+)`)
	reJSONSecret = regexp.MustCompile(`(?i)("(?:consumer_key|consumer_secret|token|token_secret)"\s*:\s*")([^"]*)(")`)
	reBearer     = regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9._-]+)`)
)

// Mask replaces sensitive values in the input string with "***".
// OAuth header parameters, query-style secrets and credential JSON members are covered.
func Mask(s string) string {
	out := s
	out = reOAuthParam.ReplaceAllString(out, "$1$2***")
	out = reSecretKey.ReplaceAllString(out, "$1***")
	out = reJSONSecret.ReplaceAllString(out, "$1***$3")
	out = reBearer.ReplaceAllString(out, "$1***")
	return out
}
