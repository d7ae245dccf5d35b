// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package shell implements the interactive console: line editing, history,
// the command grammar and the namespace exposed to the user.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"tumblr-repl/cli/internal/bridge"
	"tumblr-repl/cli/internal/logging"
	"tumblr-repl/cli/internal/tumblr"

	"github.com/chzyer/readline"
)

// HistoryFileName is stored in the user's home directory.
const HistoryFileName = ".tumblr_repl_history"

// DefaultHistoryFile returns ~/.tumblr_repl_history, or "" when the home directory is unknown.
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, HistoryFileName)
}

// Options configures a Shell.
type Options struct {
	Prompt      string
	HistoryFile string
	Color       bool
	Stdin       io.ReadCloser
	Logger      *logging.Logger
}

// Shell is the read-eval-print loop.
type Shell struct {
	rl   *readline.Instance
	ns   *Namespace
	eval *Evaluator
	log  *logging.Logger

	closeOnce sync.Once
}

// New opens the line editor and wires b's output through it, so asynchronous
// responses are printed above the prompt.
func New(b *bridge.Bridge, opts Options) (*Shell, error) {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            opts.Prompt,
		HistoryFile:       opts.HistoryFile,
		AutoComplete:      completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdin:             opts.Stdin,
	})
	if err != nil {
		return nil, err
	}

	out, errOut := rl.Stdout(), rl.Stderr()
	b.Redirect(out, errOut)
	b.SetPrompter(rl)

	ns := NewNamespace(b, opts.Color)
	return &Shell{
		rl:   rl,
		ns:   ns,
		eval: NewEvaluator(ns, out, errOut, opts.Color),
		log:  opts.Logger,
	}, nil
}

// Run reads lines until exit, EOF or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	defer s.close()

	stop := context.AfterFunc(ctx, s.close)
	defer stop()

	for {
		line, err := s.rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		s.log.Debug().Str("line", logging.Mask(line)).Msg("eval")
		if s.eval.Eval(ctx, line) == Exit {
			return nil
		}
	}
}

func (s *Shell) close() {
	s.closeOnce.Do(func() { _ = s.rl.Close() })
}

func completer() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(NameHelp),
		readline.PcItem(NamePrint, readline.PcItem(NameResponse)),
		readline.PcItem(NameResponse),
		readline.PcItem("clear"),
		readline.PcItem("exit"),
	}
	var methods []readline.PrefixCompleterInterface
	for _, m := range tumblr.Methods {
		methods = append(methods, readline.PcItem(NameTumblr+"."+m.Name))
	}
	items = append(items, methods...)
	items = append(items, readline.PcItem(NameSet, methods...))
	return readline.NewPrefixCompleter(items...)
}
