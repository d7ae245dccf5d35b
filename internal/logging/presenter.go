// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"

	apperrors "tumblr-repl/cli/internal/errors"
)

// PresentError formats err for the console with secrets masked. Typed errors
// render their message and cause; the machine-readable kind is left to the log.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	var e *apperrors.E
	if errors.As(err, &e) {
		msg = e.Message
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
	}
	msg = Mask(msg)
	if context == "" {
		return msg
	}
	return context + ": " + msg
}
