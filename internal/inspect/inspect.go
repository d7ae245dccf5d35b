// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package inspect renders API payloads for the console.
package inspect

import (
	"fmt"
	"io"

	prettyjson "github.com/hokaccha/go-prettyjson"
)

// Inspect renders v at unlimited depth. JSON-compatible values are pretty
// printed; errors render as their message; anything else uses %+v.
func Inspect(v any, color bool) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}

	f := prettyjson.NewFormatter()
	f.DisabledColor = !color
	f.Indent = 2
	out, err := f.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(out)
}

// Fprint writes the inspected form of v followed by a newline.
func Fprint(w io.Writer, v any, color bool) {
	fmt.Fprintln(w, Inspect(v, color))
}
