// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package credentials

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

var (
	magenta = pterm.NewStyle(pterm.FgMagenta).Sprint
	yellow  = pterm.NewStyle(pterm.FgYellow).Sprint
	red     = pterm.NewStyle(pterm.FgRed).Sprint
	cyan    = pterm.NewStyle(pterm.FgCyan).Sprint
)

// Report prints where credentials came from and which keys are missing.
// Warnings go to errOut; everything else goes to out.
func Report(out, errOut io.Writer, c Credentials, src Source) {
	fmt.Fprintf(out, "\nUsing OAuth creds from %s\n\n", magenta(src.String()))

	missing := c.Missing()
	if len(missing) == 0 {
		return
	}
	fmt.Fprintln(errOut, yellow("Credentials is missing keys:"))
	for _, k := range missing {
		fmt.Fprintln(errOut, yellow("  * "+k))
	}

	if u, ok := c.ConsoleAuthURL(); ok {
		fmt.Fprint(out, "\nYou can generate user tokens by going to the API console:\n\n")
		fmt.Fprintln(out, magenta(u))
	}
}

// ReportFailure prints the load failure diagnostic for the attempted location.
func ReportFailure(errOut io.Writer, attempted string) {
	if attempted == "" {
		attempted = DefaultFile
	}
	fmt.Fprintln(errOut, red("Error loading credentials!"))
	fmt.Fprintf(errOut, "Make sure %s exists or specify %s\n",
		cyan(attempted), cyan("--credentials=path/to/credentials.json"))
}
