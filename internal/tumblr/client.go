// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package tumblr is a small asynchronous client for the Tumblr v2 API.
// Calls return immediately and report their outcome through a Callback.
package tumblr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tumblr-repl/cli/internal/credentials"
	"tumblr-repl/cli/internal/logging"

	"github.com/dghubble/oauth1"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// ClientVersion identifies the API client in the banner and the User-Agent.
const ClientVersion = "1.0.0"

// DefaultBaseURL is the public Tumblr API endpoint.
const DefaultBaseURL = "https://api.tumblr.com"

// Callback receives the outcome of an API call. A nil err means success.
type Callback func(err error, resp any)

// Requester issues raw API requests.
type Requester interface {
	GetRequest(ctx context.Context, apiPath string, params Params, cb Callback) *Pending
	PostRequest(ctx context.Context, apiPath string, params Params, cb Callback) *Pending
}

// Pending is the handle of an in-flight call.
type Pending struct {
	id   string
	done chan struct{}
}

func newPending() *Pending {
	return &Pending{id: uuid.NewString(), done: make(chan struct{})}
}

// ID returns the request ID attached to the call.
func (p *Pending) ID() string { return p.id }

// Done is closed once the callback has returned.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the call completes or ctx is done.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Logger    *logging.Logger
}

// Client is the HTTP implementation of Requester. Requests are signed with OAuth1.
type Client struct {
	http        *resty.Client
	consumerKey string
	log         *logging.Logger
}

// NewClient builds a Client signing requests with creds.
func NewClient(creds credentials.Credentials, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "tumblr-repl/" + ClientVersion
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	config := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.Token, creds.TokenSecret)
	signed := config.Client(oauth1.NoContext, token)

	cli := resty.NewWithClient(signed).
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/json")

	return &Client{http: cli, consumerKey: creds.ConsumerKey, log: opts.Logger}
}

// GetRequest issues a GET. The consumer key is sent as api_key unless params already has one.
func (c *Client) GetRequest(ctx context.Context, apiPath string, params Params, cb Callback) *Pending {
	q := params.Values()
	if !q.Has("api_key") {
		q.Set("api_key", c.consumerKey)
	}
	return c.start(cb, func(p *Pending) (any, error) {
		return c.send(p.id, "GET", apiPath, c.request(ctx, p).SetQueryParamsFromValues(q))
	})
}

// PostRequest issues a form-encoded POST.
func (c *Client) PostRequest(ctx context.Context, apiPath string, params Params, cb Callback) *Pending {
	form := params.Values()
	return c.start(cb, func(p *Pending) (any, error) {
		return c.send(p.id, "POST", apiPath, c.request(ctx, p).SetFormDataFromValues(form))
	})
}

func (c *Client) request(ctx context.Context, p *Pending) *resty.Request {
	if ctx == nil {
		ctx = context.Background()
	}
	return c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", p.id)
}

// start runs fn on its own goroutine and reports its result to cb exactly once.
func (c *Client) start(cb Callback, fn func(*Pending) (any, error)) *Pending {
	p := newPending()
	go func() {
		defer close(p.done)
		resp, err := fn(p)
		if cb != nil {
			cb(err, resp)
		}
	}()
	return p
}

func (c *Client) send(id, method, apiPath string, req *resty.Request) (any, error) {
	started := time.Now()
	res, err := req.Execute(method, apiPath)
	if err != nil {
		c.log.Debug().
			Str("request_id", id).
			Str("method", method).
			Str("path", apiPath).
			Dur("duration", time.Since(started)).
			Str("error", logging.Mask(err.Error())).
			Msg("api request failed")
		return nil, fmt.Errorf("%s %s: %w", method, apiPath, err)
	}

	c.log.Debug().
		Str("request_id", id).
		Str("method", method).
		Str("url", logging.Mask(res.Request.URL)).
		Int("status", res.StatusCode()).
		Dur("duration", time.Since(started)).
		Msg("api request")

	if !res.IsSuccess() {
		return nil, newAPIError(res.StatusCode(), res.Body())
	}
	return decodeResponse(res.Body())
}

// decodeResponse returns the "response" member of the envelope, or the whole
// body when there is none. Numbers are kept as json.Number.
func decodeResponse(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if m, ok := out.(map[string]any); ok {
		if r, ok := m["response"]; ok {
			return r, nil
		}
	}
	return out, nil
}
