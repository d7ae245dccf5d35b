// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tumblr

import (
	"context"
	"fmt"
	"strings"
)

// Conventional argument names. Every other declared argument is positional.
const (
	ArgParams   = "params"
	ArgCallback = "callback"
)

// Raw request methods wrapped by the response bridge.
const (
	MethodGetRequest  = "getRequest"
	MethodPostRequest = "postRequest"
)

// Request verbs a Method can be dispatched with.
const (
	VerbGet  = "GET"
	VerbPost = "POST"
)

type routeFunc func(pos []string, params Params) (string, Params)

// Method is one entry of the client's capability table. Verb selects the
// Requester call it is sent through.
type Method struct {
	Name  string
	Args  []string
	Verb  string
	route routeFunc
}

// Positional returns the declared arguments that are neither params nor callback.
func (m Method) Positional() []string {
	var out []string
	for _, a := range m.Args {
		if a != ArgParams && a != ArgCallback {
			out = append(out, a)
		}
	}
	return out
}

// Usage renders the call signature, e.g. blogInfo(blogIdentifier, params, callback).
func (m Method) Usage() string {
	return m.Name + "(" + strings.Join(m.Args, ", ") + ")"
}

// Invoke calls m through r. The number of positional values must match the declaration.
func (m Method) Invoke(ctx context.Context, r Requester, positional []string, params Params, cb Callback) (*Pending, error) {
	want := m.Positional()
	if len(positional) != len(want) {
		return nil, fmt.Errorf("%s expects %d positional argument(s) (%s), got %d",
			m.Name, len(want), strings.Join(want, ", "), len(positional))
	}
	if params == nil {
		params = Params{}
	}
	apiPath, params := m.route(positional, params)
	switch m.Verb {
	case VerbGet:
		return r.GetRequest(ctx, apiPath, params, cb), nil
	case VerbPost:
		return r.PostRequest(ctx, apiPath, params, cb), nil
	}
	return nil, fmt.Errorf("%s has unsupported verb %q", m.Name, m.Verb)
}

// Methods is the capability table, in listing order.
var Methods = []Method{
	userMethod(VerbGet, "userInfo", "/v2/user/info", ArgCallback),
	userMethod(VerbGet, "userDashboard", "/v2/user/dashboard", ArgParams, ArgCallback),
	userMethod(VerbGet, "userLikes", "/v2/user/likes", ArgParams, ArgCallback),
	userMethod(VerbGet, "userFollowing", "/v2/user/following", ArgParams, ArgCallback),

	blogMethod(VerbGet, "blogInfo", "info"),
	blogMethod(VerbGet, "blogPosts", "posts"),
	blogMethod(VerbGet, "blogLikes", "likes"),
	blogMethod(VerbGet, "blogFollowers", "followers"),
	blogMethod(VerbGet, "blogQueue", "posts/queue"),
	blogMethod(VerbGet, "blogDrafts", "posts/draft"),
	blogMethod(VerbGet, "blogSubmissions", "posts/submission"),

	{
		Name: "taggedPosts",
		Args: []string{"tag", ArgParams, ArgCallback},
		Verb: VerbGet,
		route: func(pos []string, params Params) (string, Params) {
			return "/v2/tagged", params.With("tag", pos[0])
		},
	},

	blogMethod(VerbPost, "createPost", "post"),
	blogMethod(VerbPost, "editPost", "post/edit"),
	blogMethod(VerbPost, "reblogPost", "post/reblog"),
	{
		Name: "deletePost",
		Args: []string{"blogIdentifier", "id", ArgCallback},
		Verb: VerbPost,
		route: func(pos []string, params Params) (string, Params) {
			return blogPath(pos[0], "post/delete"), params.With("id", pos[1])
		},
	},

	userMethod(VerbPost, "followBlog", "/v2/user/follow", ArgParams, ArgCallback),
	userMethod(VerbPost, "unfollowBlog", "/v2/user/unfollow", ArgParams, ArgCallback),
	userMethod(VerbPost, "likePost", "/v2/user/like", ArgParams, ArgCallback),
	userMethod(VerbPost, "unlikePost", "/v2/user/unlike", ArgParams, ArgCallback),

	rawMethod(VerbGet, MethodGetRequest),
	rawMethod(VerbPost, MethodPostRequest),
}

// Lookup finds a method by name.
func Lookup(name string) (Method, bool) {
	for _, m := range Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// BlogIdentifier normalizes a blog name to its hostname form.
func BlogIdentifier(name string) string {
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".tumblr.com"
}

func blogPath(blog, suffix string) string {
	return "/v2/blog/" + BlogIdentifier(blog) + "/" + suffix
}

func userMethod(verb, name, apiPath string, args ...string) Method {
	return Method{
		Name: name,
		Args: args,
		Verb: verb,
		route: func(_ []string, params Params) (string, Params) {
			return apiPath, params
		},
	}
}

func blogMethod(verb, name, suffix string) Method {
	return Method{
		Name: name,
		Args: []string{"blogIdentifier", ArgParams, ArgCallback},
		Verb: verb,
		route: func(pos []string, params Params) (string, Params) {
			return blogPath(pos[0], suffix), params
		},
	}
}

func rawMethod(verb, name string) Method {
	return Method{
		Name: name,
		Args: []string{"apiPath", ArgParams, ArgCallback},
		Verb: verb,
		route: func(pos []string, params Params) (string, Params) {
			return pos[0], params
		},
	}
}
