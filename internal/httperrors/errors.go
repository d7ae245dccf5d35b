// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns transport failures into troubleshooting hints.
package httperrors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Kind classifies a transport failure.
type Kind int

const (
	KindGeneric Kind = iota
	KindTimeout
	KindDNS
	KindRefused
	KindTLS
	KindServer
)

// Classify inspects err and reports its Kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindGeneric
	case isTimeoutError(err):
		return KindTimeout
	case isDNSError(err):
		return KindDNS
	case isConnectionRefusedError(err):
		return KindRefused
	case isSSLError(err):
		return KindTLS
	case isServerError(err.Error()):
		return KindServer
	}
	return KindGeneric
}

type hint struct {
	icon    string
	title   string
	lead    string
	bullets []string
	footer  string
}

var hints = map[Kind]hint{
	KindTimeout: {
		icon:  "⏱️ ",
		title: "Connection timeout",
		lead:  "api.tumblr.com took too long to respond. This could mean:",
		bullets: []string{
			"Slow internet connection",
			"The API is under heavy load",
			"Network firewall is blocking the connection",
		},
		footer: "Try again in a few moments, or raise TUMBLR_REPL_TIMEOUT.",
	},
	KindDNS: {
		icon:  "🌐",
		title: "Cannot resolve server address",
		lead:  "Unable to look up the API host. Please check:",
		bullets: []string{
			"Your internet connection is working",
			"DNS settings are correct",
			"TUMBLR_API_BASE_URL, if set, names a real host",
		},
	},
	KindRefused: {
		icon:  "🚫",
		title: "Connection refused",
		lead:  "The server is not accepting connections. This could mean:",
		bullets: []string{
			"The API is temporarily down",
			"Firewall is blocking the connection",
			"Wrong server address or port",
		},
	},
	KindTLS: {
		icon:  "🔒",
		title: "Secure connection failed",
		lead:  "Cannot establish a secure HTTPS connection. This could mean:",
		bullets: []string{
			"SSL/TLS certificate issue",
			"Network proxy interfering with HTTPS",
			"System clock is incorrect",
		},
	},
	KindServer: {
		icon:  "⚠️ ",
		title: "Server error",
		lead:  "Tumblr encountered an internal error. This is not a problem with your setup.",
		bullets: []string{
			"Please try again in a few minutes",
		},
	},
	KindGeneric: {
		icon:  "❌",
		title: "Cannot reach the Tumblr API",
		lead:  "Please check:",
		bullets: []string{
			"Your internet connection",
			"Whether api.tumblr.com is accessible from your network",
			"Firewall settings that might block HTTPS requests",
		},
	},
}

// FormatNetworkError prints troubleshooting text for err to stdout and
// returns err wrapped for logging.
func FormatNetworkError(err error, context string) error {
	return WriteNetworkError(os.Stdout, err, context)
}

// WriteNetworkError is FormatNetworkError with an explicit writer.
func WriteNetworkError(w io.Writer, err error, context string) error {
	if err == nil {
		return nil
	}

	kind := Classify(err)
	h := hints[kind]

	fmt.Fprintf(w, "%s %s while %s\n\n", h.icon, h.title, context)
	fmt.Fprintln(w, h.lead)
	for _, b := range h.bullets {
		fmt.Fprintf(w, "  • %s\n", b)
	}
	fmt.Fprintln(w)
	if h.footer != "" {
		fmt.Fprintf(w, "%s\n\n", h.footer)
	}
	if kind == KindGeneric {
		details := err.Error()
		if len(details) > 100 {
			details = details[:100] + "..."
		}
		fmt.Fprintln(w, pterm.NewStyle(pterm.FgGray).Sprint("Technical details: "+details))
		fmt.Fprintln(w)
	}

	return fmt.Errorf("network error: %w", err)
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError checks if the error text indicates a 5xx response.
func isServerError(errStr string) bool {
	lower := strings.ToLower(errStr)
	return strings.Contains(lower, "internal server error") ||
		strings.Contains(lower, "bad gateway") ||
		strings.Contains(lower, "service unavailable") ||
		strings.Contains(lower, "gateway timeout")
}
