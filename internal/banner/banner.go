// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package banner renders the intro message shown when the console starts.
package banner

import (
	_ "embed"
	"regexp"

	"github.com/pterm/pterm"
)

//go:embed ascii.md
var ascii string

var (
	reLogo          = regexp.MustCompile("(?s)```\n?(.*?)```\n?")
	reReplVersion   = regexp.MustCompile(`(?m)^(.* |)(tumblr-repl v)(0\.0\.0)(.*)`)
	reClientVersion = regexp.MustCompile(`(?m)^(.* |)(tumblr api v)(0\.0\.0)(.*)`)
	reIndented      = regexp.MustCompile(`(?m)^(\s{4}\S.*)`)
	reHighlight     = regexp.MustCompile("(^|\\s)`([^`]+)`(\\s|$)")
)

var (
	blue  = pterm.NewStyle(pterm.FgBlue).Sprint
	white = pterm.NewStyle(pterm.FgWhite).Sprint
	gray  = pterm.NewStyle(pterm.FgGray).Sprint
	green = pterm.NewStyle(pterm.FgGreen).Sprint
)

// Render returns the colorized banner with the given versions substituted.
func Render(replVersion, clientVersion string) string {
	return render(ascii, replVersion, clientVersion)
}

func render(src, replVersion, clientVersion string) string {
	out := replaceFirst(reLogo, src, func(m []string) string {
		return blue(m[1])
	})
	out = replaceFirst(reReplVersion, out, func(m []string) string {
		return white(m[1]+m[2]+replVersion) + m[4]
	})
	out = replaceFirst(reClientVersion, out, func(m []string) string {
		return white(m[1]+m[2]+clientVersion) + m[4]
	})
	out = reIndented.ReplaceAllStringFunc(out, func(s string) string {
		return gray(s)
	})
	out = reHighlight.ReplaceAllStringFunc(out, func(s string) string {
		m := reHighlight.FindStringSubmatch(s)
		return green(m[1] + m[2] + m[3])
	})
	return out
}

// replaceFirst substitutes only the leftmost match of re.
func replaceFirst(re *regexp.Regexp, s string, fn func(groups []string) string) string {
	idx := re.FindStringSubmatchIndex(s)
	if idx == nil {
		return s
	}
	groups := make([]string, len(idx)/2)
	for i := range groups {
		if idx[2*i] >= 0 {
			groups[i] = s[idx[2*i]:idx[2*i+1]]
		}
	}
	return s[:idx[0]] + fn(groups) + s[idx[1]:]
}
