// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package bridge wraps a tumblr.Requester so that calls made without a
// completion handler still produce visible output. The outcome of such calls
// is printed to the console, kept in a last-response slot and followed by a
// prompt redraw.
//
// Calls that carry their own callback are forwarded untouched.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"tumblr-repl/cli/internal/inspect"
	"tumblr-repl/cli/internal/logging"
	"tumblr-repl/cli/internal/tumblr"

	"github.com/pterm/pterm"
)

// Prompter redraws the interactive prompt after asynchronous output.
type Prompter interface {
	Refresh()
}

// Config holds the verb label printed for each wrapped method.
type Config struct {
	GetVerb  string
	PostVerb string
}

// DefaultConfig labels read calls GET and write calls POST.
func DefaultConfig() Config {
	return Config{GetVerb: "GET", PostVerb: "POST"}
}

// Options configures a Bridge. Zero values fall back to the process streams
// and DefaultConfig.
type Options struct {
	Config   Config
	Out      io.Writer
	Err      io.Writer
	Color    bool
	Prompter Prompter
	Logger   *logging.Logger
}

// Bridge decorates a Requester. It satisfies tumblr.Requester itself.
type Bridge struct {
	next   tumblr.Requester
	cfg    Config
	slot   *Slot
	out    io.Writer
	errOut io.Writer
	color  bool
	prompt Prompter
	log    *logging.Logger

	// mu keeps each completion record contiguous on the console.
	mu sync.Mutex
}

var _ tumblr.Requester = (*Bridge)(nil)

// New wraps next.
func New(next tumblr.Requester, opts Options) *Bridge {
	if opts.Config.GetVerb == "" {
		opts.Config.GetVerb = DefaultConfig().GetVerb
	}
	if opts.Config.PostVerb == "" {
		opts.Config.PostVerb = DefaultConfig().PostVerb
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &Bridge{
		next:   next,
		cfg:    opts.Config,
		slot:   &Slot{},
		out:    opts.Out,
		errOut: opts.Err,
		color:  opts.Color,
		prompt: opts.Prompter,
		log:    opts.Logger,
	}
}

// Slot returns the bridge's last-response slot.
func (b *Bridge) Slot() *Slot { return b.slot }

// SetPrompter replaces the prompter used after each bridged completion.
func (b *Bridge) SetPrompter(p Prompter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prompt = p
}

// Redirect sends subsequent completion records to out and errOut.
func (b *Bridge) Redirect(out, errOut io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out = out
	b.errOut = errOut
}

// GetRequest forwards to the wrapped client. Without cb the call is bridged and nil is returned.
func (b *Bridge) GetRequest(ctx context.Context, apiPath string, params tumblr.Params, cb tumblr.Callback) *tumblr.Pending {
	if cb != nil {
		return b.next.GetRequest(ctx, apiPath, params, cb)
	}
	desc := b.cfg.GetVerb + " " + apiPath
	if q := params.Encode(); q != "" {
		desc += "?" + q
	}
	b.next.GetRequest(ctx, apiPath, params, b.complete(desc))
	return nil
}

// PostRequest forwards to the wrapped client. Without cb the call is bridged and nil is returned.
func (b *Bridge) PostRequest(ctx context.Context, apiPath string, params tumblr.Params, cb tumblr.Callback) *tumblr.Pending {
	if cb != nil {
		return b.next.PostRequest(ctx, apiPath, params, cb)
	}
	b.next.PostRequest(ctx, apiPath, params, b.complete(b.cfg.PostVerb+" "+apiPath))
	return nil
}

// Write runs write with the console streams while holding the record lock,
// so its output never interleaves with a completion record.
func (b *Bridge) Write(write func(out, errOut io.Writer)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	write(b.out, b.errOut)
}

// Record is Write for asynchronous output: the prompt is redrawn afterwards.
func (b *Bridge) Record(write func(out, errOut io.Writer)) {
	b.mu.Lock()
	write(b.out, b.errOut)
	prompt := b.prompt
	b.mu.Unlock()

	if prompt != nil {
		prompt.Refresh()
	}
}

// complete builds the synthetic handler for a bridged call described by desc.
func (b *Bridge) complete(desc string) tumblr.Callback {
	return func(err error, resp any) {
		b.Record(func(out, errOut io.Writer) {
			if err != nil {
				b.slot.Store(err)
				b.writeFailure(errOut, desc, err)
				return
			}
			b.slot.Store(resp)
			b.writeSuccess(out, desc, resp)
		})
		b.log.Debug().Str("request", logging.Mask(desc)).Bool("ok", err == nil).Msg("bridged response")
	}
}

func (b *Bridge) writeFailure(w io.Writer, desc string, err error) {
	red := b.style(pterm.FgRed)
	fmt.Fprintf(w, "\n %s\n", red(desc))
	fmt.Fprintln(w, red(err.Error()))

	var apiErr *tumblr.APIError
	if errors.As(err, &apiErr) && apiErr.Detail() != "" {
		fmt.Fprintln(w, red(apiErr.Detail()))
	}
}

func (b *Bridge) writeSuccess(w io.Writer, desc string, resp any) {
	green := b.style(pterm.FgGreen)
	fmt.Fprintf(w, "\n %s\n", green(desc))
	inspect.Fprint(w, resp, b.color)
}

func (b *Bridge) style(c pterm.Color) func(a ...any) string {
	if !b.color {
		return fmt.Sprint
	}
	return pterm.NewStyle(c).Sprint
}

// Slot holds the most recent bridged outcome: a response or an error.
type Slot struct {
	mu  sync.RWMutex
	v   any
	set bool
}

// Load returns the stored value and whether anything has been stored yet.
func (s *Slot) Load() (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v, s.set
}

// Store replaces the stored value.
func (s *Slot) Store(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v = v
	s.set = true
}
