// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package credentials resolves and parses the OAuth1 credentials used to sign
// Tumblr API requests. Credentials are read from a relaxed-JSON file found via
// a fixed search order, from the OS keychain, or from the environment.
package credentials

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/titanous/json5"
)

// JSON keys recognized in a credentials object.
const (
	KeyConsumerKey    = "consumer_key"
	KeyConsumerSecret = "consumer_secret"
	KeyToken          = "token"
	KeyTokenSecret    = "token_secret"
)

// RequiredKeys lists the recognized keys in reporting order.
var RequiredKeys = []string{KeyConsumerKey, KeyConsumerSecret, KeyToken, KeyTokenSecret}

// ConsoleAuthBase is the API console page that issues user tokens.
const ConsoleAuthBase = "https://api.tumblr.com/console/auth"

// Credentials holds the four OAuth1 secrets.
// present records which keys appeared in the source, independent of their values.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string

	present map[string]bool
}

// New builds Credentials from values; a key counts as present when its value is non-empty.
func New(consumerKey, consumerSecret, token, tokenSecret string) Credentials {
	c := Credentials{
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		Token:          token,
		TokenSecret:    tokenSecret,
		present:        map[string]bool{},
	}
	for _, k := range RequiredKeys {
		if c.value(k) != "" {
			c.present[k] = true
		}
	}
	return c
}

// Parse decodes a relaxed-JSON (JSON5) credentials object.
// Unknown keys are ignored. A recognized key set to null counts as present
// with an empty value; any other non-string value is an error.
func Parse(data []byte) (Credentials, error) {
	var raw map[string]any
	if err := json5.Unmarshal(data, &raw); err != nil {
		return Credentials{}, err
	}
	if raw == nil {
		return Credentials{}, fmt.Errorf("credentials must be an object")
	}

	c := Credentials{present: map[string]bool{}}
	for _, k := range RequiredKeys {
		v, ok := raw[k]
		if !ok {
			continue
		}
		switch s := v.(type) {
		case nil:
			c.set(k, "")
		case string:
			c.set(k, s)
		default:
			return Credentials{}, fmt.Errorf("%s must be a string, got %T", k, v)
		}
		c.present[k] = true
	}
	return c, nil
}

// MarshalJSON writes the credentials in the file format understood by Parse.
func (c Credentials) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(RequiredKeys))
	for _, k := range RequiredKeys {
		if c.Has(k) {
			out[k] = c.value(k)
		}
	}
	return json.Marshal(out)
}

// Has reports whether key appeared in the source.
func (c Credentials) Has(key string) bool {
	return c.present[key]
}

// Missing returns the recognized keys absent from the source, in RequiredKeys order.
func (c Credentials) Missing() []string {
	var missing []string
	for _, k := range RequiredKeys {
		if !c.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// ConsoleAuthURL returns the API console link for generating user tokens.
// It is only available when both consumer values are non-empty.
func (c Credentials) ConsoleAuthURL() (string, bool) {
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return "", false
	}
	q := url.Values{}
	q.Set(KeyConsumerKey, c.ConsumerKey)
	q.Set(KeyConsumerSecret, c.ConsumerSecret)
	return ConsoleAuthBase + "?" + q.Encode(), true
}

func (c Credentials) value(key string) string {
	switch key {
	case KeyConsumerKey:
		return c.ConsumerKey
	case KeyConsumerSecret:
		return c.ConsumerSecret
	case KeyToken:
		return c.Token
	case KeyTokenSecret:
		return c.TokenSecret
	}
	return ""
}

func (c *Credentials) set(key, v string) {
	switch key {
	case KeyConsumerKey:
		c.ConsumerKey = v
	case KeyConsumerSecret:
		c.ConsumerSecret = v
	case KeyToken:
		c.Token = v
	case KeyTokenSecret:
		c.TokenSecret = v
	}
}
