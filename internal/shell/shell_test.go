// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"tumblr-repl/cli/internal/bridge"
	"tumblr-repl/cli/internal/tumblr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentCall struct {
	verb   string
	path   string
	params tumblr.Params
	cb     tumblr.Callback
}

type stubRequester struct{ calls []sentCall }

func (s *stubRequester) GetRequest(_ context.Context, p string, params tumblr.Params, cb tumblr.Callback) *tumblr.Pending {
	s.calls = append(s.calls, sentCall{"GET", p, params, cb})
	return &tumblr.Pending{}
}

func (s *stubRequester) PostRequest(_ context.Context, p string, params tumblr.Params, cb tumblr.Callback) *tumblr.Pending {
	s.calls = append(s.calls, sentCall{"POST", p, params, cb})
	return &tumblr.Pending{}
}

type env struct {
	next   *stubRequester
	bridge *bridge.Bridge
	ns     *Namespace
	eval   *Evaluator
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newEnv() *env {
	e := &env{next: &stubRequester{}, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	e.bridge = bridge.New(e.next, bridge.Options{Out: e.out, Err: e.errOut})
	e.ns = NewNamespace(e.bridge, false)
	e.eval = NewEvaluator(e.ns, e.out, e.errOut, false)
	return e
}

func (e *env) run(lines ...string) Action {
	a := Continue
	for _, l := range lines {
		a = e.eval.Eval(context.Background(), l)
	}
	return a
}

func TestHelp_Listing(t *testing.T) {
	var buf bytes.Buffer
	Help(&buf, false)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "\ntumblr has the following methods:\n\n"))
	assert.True(t, strings.HasSuffix(out, "\n_response stores the response from the last API request response.\n\n"))
	assert.Contains(t, out, "  userInfo(callback)\n")
	assert.Contains(t, out, "  blogPosts(blogIdentifier, params, callback)\n")
	assert.Contains(t, out, "  deletePost(blogIdentifier, id, callback)\n")
	assert.NotContains(t, out, "getRequest")
	assert.NotContains(t, out, "postRequest")

	var listed []string
	for _, line := range strings.Split(out, "\n") {
		if name, _, ok := strings.Cut(strings.TrimPrefix(line, "  "), "("); ok && strings.HasPrefix(line, "  ") {
			listed = append(listed, name)
		}
	}
	var want []string
	for _, m := range tumblr.Methods {
		if m.Name != tumblr.MethodGetRequest && m.Name != tumblr.MethodPostRequest {
			want = append(want, m.Name)
		}
	}
	assert.Equal(t, want, listed)
}

func TestFormatMethod(t *testing.T) {
	p := newPalette(false)
	assert.Equal(t, "  ping()", formatMethod(tumblr.Method{Name: "ping"}, p))
	assert.Equal(t, "  x(a, params)", formatMethod(tumblr.Method{Name: "x", Args: []string{"a", "params"}}, p))
}

func TestParseCall(t *testing.T) {
	c := ParseCall("blogPosts", []string{"staff", "limit=2", "tag=a", "tag=b", "=odd", "url=http://x?y=z"})
	assert.Equal(t, "blogPosts", c.Method)
	assert.Equal(t, []string{"staff", "=odd"}, c.Positional)
	assert.Equal(t, tumblr.Params{"limit": "2", "tag": []string{"a", "b"}, "url": "http://x?y=z"}, c.Params)
}

func TestEval_BridgedCall(t *testing.T) {
	e := newEnv()
	e.run(`tumblr.blogPosts staff limit=2 "type=photo"`)

	require.Len(t, e.next.calls, 1)
	call := e.next.calls[0]
	assert.Equal(t, "GET", call.verb)
	assert.Equal(t, "/v2/blog/staff.tumblr.com/posts", call.path)
	assert.Equal(t, tumblr.Params{"limit": "2", "type": "photo"}, call.params)
	require.NotNil(t, call.cb)

	call.cb(nil, map[string]any{"total_posts": 1})
	assert.Contains(t, e.out.String(), " GET /v2/blog/staff.tumblr.com/posts?limit=2&type=photo\n")

	e.out.Reset()
	e.run("_response")
	assert.Contains(t, e.out.String(), `"total_posts": 1`)
}

func TestEval_Set(t *testing.T) {
	e := newEnv()
	e.run("set tumblr.userInfo")
	e.run("set me tumblr.blogInfo staff")
	require.Len(t, e.next.calls, 2)

	e.next.calls[0].cb(nil, "info")
	e.next.calls[1].cb(nil, map[string]any{"name": "staff"})

	assert.Contains(t, e.out.String(), "Stored in variable: 'result'\n")
	assert.Contains(t, e.out.String(), "Stored in variable: 'me'\n")

	v, ok := e.ns.Lookup(DefaultVar)
	require.True(t, ok)
	assert.Equal(t, "info", v)
	assert.Equal(t, []string{"me", "result"}, e.ns.Vars())

	_, set := e.bridge.Slot().Load()
	assert.False(t, set, "explicit callbacks bypass the bridge")

	e.out.Reset()
	e.run("print me")
	assert.Contains(t, e.out.String(), `"name": "staff"`)
	e.out.Reset()
	e.run("me")
	assert.Contains(t, e.out.String(), `"name": "staff"`)
}

func TestEval_SetError(t *testing.T) {
	e := newEnv()
	e.run("set tumblr.userInfo")
	e.next.calls[0].cb(errors.New("API error: 401 Unauthorized"), nil)

	assert.Contains(t, e.out.String(), "API error: 401 Unauthorized")
	assert.NotContains(t, e.out.String(), "Stored in variable")
	_, ok := e.ns.Lookup(DefaultVar)
	assert.False(t, ok)
}

func TestEval_SetRecordsDoNotInterleaveWithBridgedRecords(t *testing.T) {
	const n = 40
	e := newEnv()
	for i := 0; i < n; i++ {
		e.run(fmt.Sprintf("set r%d tumblr.userInfo", i), "tumblr.userInfo")
	}
	require.Len(t, e.next.calls, 2*n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		set, bridged := e.next.calls[2*i].cb, e.next.calls[2*i+1].cb
		wg.Add(2)
		go func() { defer wg.Done(); set(nil, fmt.Sprintf("s%d", i)) }()
		go func() { defer wg.Done(); bridged(nil, fmt.Sprintf("b%d", i)) }()
	}
	wg.Wait()

	out := e.out.String()
	for i := 0; i < n; i++ {
		assert.Contains(t, out, fmt.Sprintf("\"s%d\"\nStored in variable: 'r%d'\n", i, i))
		assert.Contains(t, out, fmt.Sprintf("\n GET /v2/user/info\n\"b%d\"\n", i))
	}
	assert.Len(t, e.ns.Vars(), n)
}

func TestNamespace_SetRedrawsPrompt(t *testing.T) {
	e := newEnv()
	p := &countingPrompter{}
	e.bridge.SetPrompter(p)

	e.run("set tumblr.userInfo")
	e.next.calls[0].cb(nil, "ok")
	e.run("set tumblr.userInfo")
	e.next.calls[1].cb(errors.New("boom"), nil)
	e.run("print result", "help")

	assert.Equal(t, int32(2), p.n.Load(), "only asynchronous records redraw the prompt")
}

type countingPrompter struct{ n atomic.Int32 }

func (c *countingPrompter) Refresh() { c.n.Add(1) }

func TestEval_Diagnostics(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"tumblr.nope", "tumblr.nope is not a function"},
		{"tumblr.blogInfo", "blogInfo expects 1 positional argument(s)"},
		{"missing", "missing is not defined"},
		{"print", "usage: print <name>"},
		{"set", "usage: set"},
		{"set help tumblr.userInfo", "help is reserved"},
		{"set x y", "set expects a tumblr.<method> call"},
		{`tumblr.blogInfo "unterminated`, "Cannot parse input"},
		{"what is this", "Unknown command: what"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			e := newEnv()
			assert.Equal(t, Continue, e.run(tt.line))
			assert.Contains(t, e.errOut.String(), tt.want)
			assert.Empty(t, e.next.calls)
		})
	}
}

func TestEval_ShellOperatorsAreNotTruncated(t *testing.T) {
	rejected := []string{
		"tumblr.createPost staff type=text body=Tom&Jerry title=x",
		"tumblr.createPost staff type=text caption=<b>hi</b>",
		"tumblr.blogPosts staff tag=a|b limit=2",
		"tumblr.taggedPosts rock;roll",
		"set tumblr.createPost staff body=a>b",
	}
	for _, line := range rejected {
		t.Run(line, func(t *testing.T) {
			e := newEnv()
			assert.Equal(t, Continue, e.run(line))
			assert.Contains(t, e.errOut.String(), "Cannot parse input: unquoted shell operator")
			assert.Empty(t, e.next.calls, "nothing is sent for a partially parsed line")
		})
	}

	e := newEnv()
	e.run(`tumblr.createPost staff "body=Tom&Jerry" 'caption=<b>hi</b>' "tag=a|b" title=x`)
	require.Len(t, e.next.calls, 1)
	assert.Empty(t, e.errOut.String())
	assert.Equal(t, "POST", e.next.calls[0].verb)
	assert.Equal(t, tumblr.Params{
		"body":    "Tom&Jerry",
		"caption": "<b>hi</b>",
		"tag":     "a|b",
		"title":   "x",
	}, e.next.calls[0].params)
}

func TestEval_HelpAliases(t *testing.T) {
	for _, line := range []string{"help", ".help", "tumblr", "print help"} {
		e := newEnv()
		e.run(line)
		assert.Contains(t, e.out.String(), "has the following methods:", line)
	}
}

func TestEval_ResponseUnsetPrintsNothing(t *testing.T) {
	e := newEnv()
	e.run("_response", "print _response")
	assert.Empty(t, e.out.String())
	assert.Empty(t, e.errOut.String())
}

func TestEval_ExitAndClear(t *testing.T) {
	for _, line := range []string{"exit", ".exit", "quit"} {
		assert.Equal(t, Exit, newEnv().run(line), line)
	}

	e := newEnv()
	assert.Equal(t, Continue, e.run("clear"))
	assert.Equal(t, "\x1b[2J\x1b[0;0f", e.out.String())
	assert.Equal(t, Continue, e.run("", "   "))
}

func TestDefaultHistoryFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	assert.True(t, strings.HasSuffix(DefaultHistoryFile(), HistoryFileName))
}
