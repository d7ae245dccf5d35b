// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pterm/pterm"
)

// APIErrorType represents the category of a Tumblr API failure
type APIErrorType int

const (
	APIErrorUnknown APIErrorType = iota
	APIErrorAuth
	APIErrorNotFound
	APIErrorRateLimited
	APIErrorServer
)

// statusCoder is satisfied by remote errors that carry an HTTP status.
type statusCoder interface {
	StatusCode() int
}

// ClassifyAPIError categorizes an error by the HTTP status it carries.
func ClassifyAPIError(err error) APIErrorType {
	var sc statusCoder
	if !errors.As(err, &sc) {
		return APIErrorUnknown
	}
	switch code := sc.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return APIErrorAuth
	case code == http.StatusNotFound:
		return APIErrorNotFound
	case code == http.StatusTooManyRequests:
		return APIErrorRateLimited
	case code >= 500:
		return APIErrorServer
	}
	return APIErrorUnknown
}

// FormatAPIError formats a Tumblr API error in a user-friendly way
func FormatAPIError(err error) string {
	if err == nil {
		return ""
	}

	var builder strings.Builder

	builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Request failed"))
	builder.WriteString("\n\n")

	switch ClassifyAPIError(err) {
	case APIErrorAuth:
		builder.WriteString("Tumblr rejected the OAuth signature.\n")
		builder.WriteString("This usually means:\n")
		builder.WriteString("  • The token or token secret is missing or was revoked\n")
		builder.WriteString("  • The consumer key and secret do not belong together\n")
		builder.WriteString("\n")
		builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Generate fresh tokens in the API console or run 'tumblr-repl login'"))
	case APIErrorNotFound:
		builder.WriteString("The requested blog, post or endpoint does not exist.\n")
	case APIErrorRateLimited:
		builder.WriteString("The API rate limit for this consumer key has been reached.\n")
		builder.WriteString(pterm.NewStyle(pterm.FgYellow).Sprint("→ Wait a moment before issuing more requests"))
	case APIErrorServer:
		builder.WriteString("Tumblr encountered an internal error. Try again in a few minutes.\n")
	default:
		builder.WriteString("The request could not be completed.\n")
	}

	builder.WriteString("\n")
	builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(err.Error())))

	return builder.String()
}

// PresentAPIError displays a formatted API error
func PresentAPIError(err error) {
	fmt.Println()
	fmt.Println(FormatAPIError(err))
	fmt.Println()
}
