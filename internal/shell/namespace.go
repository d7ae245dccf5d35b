// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"tumblr-repl/cli/internal/bridge"
	"tumblr-repl/cli/internal/inspect"
	"tumblr-repl/cli/internal/tumblr"
)

// Reserved names of the console namespace.
const (
	NameTumblr   = "tumblr"
	NamePrint    = "print"
	NameSet      = "set"
	NameResponse = "_response"
	NameHelp     = "help"

	// DefaultVar receives results stored by set when no name is given.
	DefaultVar = "result"
)

// Namespace is what the user sees at the prompt: the bridged client, the
// print and set helpers, the last response and user variables.
//
// All console output goes through the bridge so it serializes with bridged
// completion records.
type Namespace struct {
	bridge *bridge.Bridge
	color  bool

	mu   sync.RWMutex
	vars map[string]any
}

// NewNamespace returns a namespace routing calls and output through b.
func NewNamespace(b *bridge.Bridge, color bool) *Namespace {
	return &Namespace{
		bridge: b,
		color:  color,
		vars:   map[string]any{},
	}
}

// Client is the requester every console method call goes through.
func (n *Namespace) Client() tumblr.Requester { return n.bridge }

// Print is the structured-print helper.
func (n *Namespace) Print(v any) {
	n.bridge.Write(func(out, _ io.Writer) { inspect.Fprint(out, v, n.color) })
}

// Response reads the last-response slot.
func (n *Namespace) Response() (any, bool) { return n.bridge.Slot().Load() }

// Help writes the method listing.
func (n *Namespace) Help() {
	n.bridge.Write(func(out, _ io.Writer) { Help(out, n.color) })
}

// Set returns a callback storing its result under name, or DefaultVar when name is empty.
// On error the error is printed and nothing is stored.
func (n *Namespace) Set(name string) tumblr.Callback {
	if name == "" {
		name = DefaultVar
	}
	return func(err error, resp any) {
		if err == nil {
			n.mu.Lock()
			n.vars[name] = resp
			n.mu.Unlock()
		}
		n.bridge.Record(func(out, _ io.Writer) {
			if err != nil {
				fmt.Fprintln(out, err)
				return
			}
			inspect.Fprint(out, resp, n.color)
			fmt.Fprintf(out, "Stored in variable: '%s'\n", name)
		})
	}
}

// Lookup returns a user variable or the last response.
func (n *Namespace) Lookup(name string) (any, bool) {
	if name == NameResponse {
		return n.Response()
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.vars[name]
	return v, ok
}

// Vars lists the user variable names, sorted.
func (n *Namespace) Vars() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	names := make([]string, 0, len(n.vars))
	for k := range n.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsReserved reports whether name may not be used as a variable.
func IsReserved(name string) bool {
	switch name {
	case NameTumblr, NamePrint, NameSet, NameResponse, NameHelp:
		return true
	}
	return false
}
