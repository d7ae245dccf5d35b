// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tumblr

import (
	"fmt"
	"net/url"
)

// Params are the request parameters of an API call.
type Params map[string]any

// Values converts p to url.Values. Slices become repeated keys; nil values are skipped.
func (p Params) Values() url.Values {
	v := url.Values{}
	for k, raw := range p {
		switch val := raw.(type) {
		case nil:
		case string:
			v.Add(k, val)
		case []string:
			for _, s := range val {
				v.Add(k, s)
			}
		case []any:
			for _, item := range val {
				v.Add(k, fmt.Sprint(item))
			}
		default:
			v.Add(k, fmt.Sprint(val))
		}
	}
	return v
}

// Encode returns the sorted, percent-encoded query string of p.
// It is empty when p has no parameters.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	return p.Values().Encode()
}

// With returns a copy of p with key set to value.
func (p Params) With(key string, value any) Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}
