// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tumblr-repl/cli/internal/terminal"
	"tumblr-repl/cli/internal/tumblr"

	"github.com/mattn/go-shellwords"
)

// Action tells the loop what to do after a line has been evaluated.
type Action int

const (
	Continue Action = iota
	Exit
)

// Evaluator runs one console command at a time against a Namespace.
type Evaluator struct {
	ns     *Namespace
	out    io.Writer
	errOut io.Writer
	pal    palette
}

// NewEvaluator returns an Evaluator writing to out and errOut.
func NewEvaluator(ns *Namespace, out, errOut io.Writer, color bool) *Evaluator {
	return &Evaluator{ns: ns, out: out, errOut: errOut, pal: newPalette(color)}
}

// Call is a parsed tumblr.<method> invocation.
type Call struct {
	Method     string
	Positional []string
	Params     tumblr.Params
}

// ParseCall splits method arguments into positional values and key=value parameters.
// Repeated keys collect into a list.
func ParseCall(method string, args []string) Call {
	c := Call{Method: method, Params: tumblr.Params{}}
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			c.Positional = append(c.Positional, a)
			continue
		}
		switch prev := c.Params[k].(type) {
		case nil:
			c.Params[k] = v
		case string:
			c.Params[k] = []string{prev, v}
		case []string:
			c.Params[k] = append(prev, v)
		}
	}
	return c
}

// Eval evaluates one input line.
func (e *Evaluator) Eval(ctx context.Context, line string) Action {
	line = strings.TrimSpace(line)
	if line == "" {
		return Continue
	}
	tokens, err := tokenize(line)
	if err != nil {
		e.warn("Cannot parse input: %v", err)
		return Continue
	}
	if len(tokens) == 0 {
		return Continue
	}

	head, rest := tokens[0], tokens[1:]
	switch head {
	case "exit", ".exit", "quit":
		return Exit
	case "clear", ".clear":
		terminal.ClearScreen(e.out)
	case NameHelp, ".help", NameTumblr:
		e.ns.Help()
	case NameResponse:
		e.show(NameResponse)
	case NamePrint:
		if len(rest) != 1 {
			e.warn("usage: print <name>")
			return Continue
		}
		e.show(rest[0])
	case NameSet:
		e.set(ctx, rest)
	default:
		if method, ok := strings.CutPrefix(head, NameTumblr+"."); ok {
			e.call(ctx, ParseCall(method, rest), nil)
			return Continue
		}
		if len(rest) > 0 {
			e.warn("Unknown command: %s", head)
			return Continue
		}
		e.show(head)
	}
	return Continue
}

// tokenize splits line into words. The parser stops at an unquoted shell
// operator without failing, so any unconsumed input is reported as an error
// instead of sending a truncated call.
func tokenize(line string) ([]string, error) {
	p := shellwords.NewParser()
	tokens, err := p.Parse(line)
	if err != nil {
		return nil, err
	}
	if p.Position != -1 {
		rest := []rune(line)
		if p.Position >= 0 && p.Position < len(rest) {
			rest = rest[p.Position:]
		}
		return nil, fmt.Errorf("unquoted shell operator in %q; quote values containing & ; | < >", string(rest))
	}
	return tokens, nil
}

// show prints a named value. An unset last response prints nothing.
func (e *Evaluator) show(name string) {
	if name == NameHelp {
		e.ns.Help()
		return
	}
	v, ok := e.ns.Lookup(name)
	if !ok {
		if name != NameResponse {
			e.warn("%s is not defined", name)
		}
		return
	}
	e.ns.Print(v)
}

func (e *Evaluator) set(ctx context.Context, args []string) {
	name := DefaultVar
	if len(args) > 0 && !strings.HasPrefix(args[0], NameTumblr+".") {
		name, args = args[0], args[1:]
	}
	if len(args) == 0 {
		e.warn("usage: set [name] tumblr.<method> [args...] [key=value...]")
		return
	}
	if IsReserved(name) {
		e.warn("%s is reserved", name)
		return
	}
	method, ok := strings.CutPrefix(args[0], NameTumblr+".")
	if !ok {
		e.warn("set expects a tumblr.<method> call, got %s", args[0])
		return
	}
	e.call(ctx, ParseCall(method, args[1:]), e.ns.Set(name))
}

func (e *Evaluator) call(ctx context.Context, c Call, cb tumblr.Callback) {
	m, ok := tumblr.Lookup(c.Method)
	if !ok {
		e.warn("tumblr.%s is not a function", c.Method)
		return
	}
	if _, err := m.Invoke(ctx, e.ns.Client(), c.Positional, c.Params, cb); err != nil {
		e.warn("%v\nusage: tumblr.%s", err, m.Usage())
	}
}

func (e *Evaluator) warn(format string, a ...any) {
	fmt.Fprintln(e.errOut, e.pal.yellow(fmt.Sprintf(format, a...)))
}
