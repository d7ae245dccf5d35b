// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"fmt"
	"io"
	"strings"

	"tumblr-repl/cli/internal/tumblr"

	"github.com/pterm/pterm"
)

type palette struct {
	blue, cyan, yellow, green, magenta func(a ...any) string
}

func newPalette(color bool) palette {
	if !color {
		return palette{fmt.Sprint, fmt.Sprint, fmt.Sprint, fmt.Sprint, fmt.Sprint}
	}
	return palette{
		blue:    pterm.NewStyle(pterm.FgBlue).Sprint,
		cyan:    pterm.NewStyle(pterm.FgCyan).Sprint,
		yellow:  pterm.NewStyle(pterm.FgYellow).Sprint,
		green:   pterm.NewStyle(pterm.FgGreen).Sprint,
		magenta: pterm.NewStyle(pterm.FgMagenta).Sprint,
	}
}

// Help writes the listing of client methods. The raw request methods are omitted.
func Help(w io.Writer, color bool) {
	p := newPalette(color)

	fmt.Fprintf(w, "\n%s has the following methods:\n\n", p.blue(NameTumblr))
	for _, m := range tumblr.Methods {
		if m.Name == tumblr.MethodGetRequest || m.Name == tumblr.MethodPostRequest {
			continue
		}
		fmt.Fprintln(w, formatMethod(m, p))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s stores the response from the last API request response.\n", p.magenta(NameResponse))
	fmt.Fprintln(w)
}

func formatMethod(m tumblr.Method, p palette) string {
	args := make([]string, len(m.Args))
	for i, a := range m.Args {
		if a == tumblr.ArgParams || a == tumblr.ArgCallback {
			args[i] = p.yellow(a)
		} else {
			args[i] = p.green(a)
		}
	}
	return fmt.Sprintf("  %s(%s)", p.cyan(m.Name), strings.Join(args, ", "))
}
