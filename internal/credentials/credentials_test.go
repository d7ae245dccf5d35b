// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package credentials

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "tumblr-repl/cli/internal/errors"
	"tumblr-repl/cli/internal/keychain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissing_AllSubsets(t *testing.T) {
	for mask := 0; mask < 1<<len(RequiredKeys); mask++ {
		obj := map[string]string{}
		var want []string
		for i, k := range RequiredKeys {
			if mask&(1<<i) != 0 {
				obj[k] = "v"
			} else {
				want = append(want, k)
			}
		}
		data, err := json.Marshal(obj)
		require.NoError(t, err)

		c, err := Parse(data)
		require.NoError(t, err)
		assert.Equal(t, want, c.Missing(), "present=%v", obj)
	}
}

func TestParse_EmptyValueCountsAsPresent(t *testing.T) {
	c, err := Parse([]byte(`{"consumer_key": "", "consumer_secret": "s", "token": "", "token_secret": ""}`))
	require.NoError(t, err)
	assert.Empty(t, c.Missing())

	_, ok := c.ConsoleAuthURL()
	assert.False(t, ok)
}

func TestParse_JSON5(t *testing.T) {
	c, err := Parse([]byte(`{
		// generated at api.tumblr.com
		/* copy the values from
		   the application page */
		consumer_key: 'ck',
		consumer_secret: "cs",
		token: 't',
		token_secret: 'ts',
		extra: 42,
	}`))
	require.NoError(t, err)
	assert.Equal(t, "ck", c.ConsumerKey)
	assert.Equal(t, "cs", c.ConsumerSecret)
	assert.Equal(t, "t", c.Token)
	assert.Equal(t, "ts", c.TokenSecret)
}

func TestParse_NullCountsAsPresent(t *testing.T) {
	c, err := Parse([]byte(`{consumer_key: 'ck', consumer_secret: null, token: null}`))
	require.NoError(t, err)
	assert.True(t, c.Has(KeyConsumerSecret))
	assert.True(t, c.Has(KeyToken))
	assert.Empty(t, c.ConsumerSecret)
	assert.Equal(t, []string{KeyTokenSecret}, c.Missing())
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"syntax":     `{consumer_key: `,
		"not object": `null`,
		"non-string": `{"consumer_key": 12}`,
		"array":      `{"token": ["t"]}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(in))
			assert.Error(t, err)
		})
	}
}

func TestConsoleAuthURL(t *testing.T) {
	tests := []struct {
		name   string
		ck, cs string
		want   string
		ok     bool
	}{
		{"both", "abc", "def", ConsoleAuthBase + "?consumer_key=abc&consumer_secret=def", true},
		{"escaped", "a b", "c&d", ConsoleAuthBase + "?consumer_key=a+b&consumer_secret=c%26d", true},
		{"no key", "", "def", "", false},
		{"no secret", "abc", "", "", false},
		{"neither", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := New(tt.ck, tt.cs, "t", "ts").ConsoleAuthURL()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarshalJSON_OnlyPresentKeys(t *testing.T) {
	data, err := json.Marshal(New("ck", "cs", "", ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{"consumer_key":"ck","consumer_secret":"cs"}`, string(data))

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyToken, KeyTokenSecret}, back.Missing())
}

type fakeStore struct {
	data []byte
	err  error
}

func (f fakeStore) LoadCredentials() ([]byte, error) { return f.data, f.err }

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestResolve_SearchOrder(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "tumblr-credentials.json")
	second := writeFile(t, dir, "credentials.json", `{consumer_key: "second"}`)
	home := writeFile(t, dir, "home.json", `{consumer_key: "home"}`)

	r := &Resolver{Candidates: []string{first, second, home}}

	c, src, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "second", c.ConsumerKey)
	assert.Equal(t, SourceFile, src.Kind)
	assert.Equal(t, second, src.Location)

	writeFile(t, dir, "tumblr-credentials.json", `{consumer_key: "first"}`)
	c, _, err = r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "first", c.ConsumerKey)
}

func TestResolve_ExplicitWins(t *testing.T) {
	dir := t.TempDir()
	explicit := writeFile(t, dir, "mine.json", `{token: "t"}`)
	other := writeFile(t, dir, "credentials.json", `{token: "other"}`)

	r := &Resolver{Explicit: explicit, Candidates: []string{other}}
	c, src, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "t", c.Token)
	assert.Equal(t, explicit, src.Location)
}

func TestResolve_ExplicitFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	fallback := writeFile(t, dir, "credentials.json", `{token: "t"}`)

	r := &Resolver{Explicit: filepath.Join(dir, "missing.json"), Candidates: []string{fallback}}
	_, src, err := r.Resolve()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CredentialsNotFound))
	assert.Equal(t, filepath.Join(dir, "missing.json"), src.Location)

	bad := writeFile(t, dir, "bad.json", `{token: `)
	r.Explicit = bad
	_, _, err = r.Resolve()
	assert.True(t, apperrors.Is(err, apperrors.CredentialsInvalid))
}

func TestResolve_Keychain(t *testing.T) {
	r := &Resolver{
		Candidates: []string{filepath.Join(t.TempDir(), "none.json")},
		Keychain: func() (Store, error) {
			return fakeStore{data: []byte(`{"consumer_key":"kc"}`)}, nil
		},
		Getenv: func(string) string { return "env" },
	}
	c, src, err := r.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "kc", c.ConsumerKey)
	assert.Equal(t, SourceKeychain, src.Kind)
	assert.Equal(t, "OS keychain (tumblr-repl)", src.String())
}

func TestResolve_KeychainSkippedWhenEmptyOrUnavailable(t *testing.T) {
	env := map[string]string{EnvConsumerKey: "eck", EnvToken: "et"}
	getenv := func(k string) string { return env[k] }

	for name, open := range map[string]func() (Store, error){
		"not found":   func() (Store, error) { return fakeStore{err: keychain.ErrNotFound}, nil },
		"unavailable": func() (Store, error) { return nil, errors.New("no backend") },
	} {
		t.Run(name, func(t *testing.T) {
			r := &Resolver{Keychain: open, Getenv: getenv}
			c, src, err := r.Resolve()
			require.NoError(t, err)
			assert.Equal(t, SourceEnv, src.Kind)
			assert.Equal(t, "eck", c.ConsumerKey)
			assert.Equal(t, []string{KeyConsumerSecret, KeyTokenSecret}, c.Missing())
		})
	}
}

func TestResolve_KeychainReadError(t *testing.T) {
	r := &Resolver{Keychain: func() (Store, error) { return fakeStore{err: errors.New("locked")}, nil }}
	_, src, err := r.Resolve()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CredentialsUnreadable))
	assert.Equal(t, SourceKeychain, src.Kind)
}

func TestResolve_NothingFound(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	r := &Resolver{Getenv: func(string) string { return "" }}
	_, src, err := r.Resolve()
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CredentialsNotFound))
	assert.Equal(t, DefaultFile, filepath.Base(src.Location))
}

func TestReport(t *testing.T) {
	var out, errOut bytes.Buffer
	Report(&out, &errOut, New("ck", "cs", "", ""), Source{Kind: SourceFile, Location: "/tmp/creds.json"})

	assert.Contains(t, out.String(), "Using OAuth creds from")
	assert.Contains(t, out.String(), "/tmp/creds.json")
	assert.Contains(t, errOut.String(), "Credentials is missing keys:")
	assert.Contains(t, errOut.String(), "  * token")
	assert.Contains(t, errOut.String(), "  * token_secret")
	assert.NotContains(t, errOut.String(), "  * consumer_key")
	assert.Contains(t, out.String(), ConsoleAuthBase+"?consumer_key=ck&consumer_secret=cs")
}

func TestReport_NoURLWithoutConsumerKeys(t *testing.T) {
	var out, errOut bytes.Buffer
	Report(&out, &errOut, New("", "", "t", "ts"), Source{Kind: SourceEnv, Location: "TUMBLR_*"})

	assert.Contains(t, errOut.String(), "  * consumer_key")
	assert.NotContains(t, out.String(), ConsoleAuthBase)
}

func TestReportFailure(t *testing.T) {
	var errOut bytes.Buffer
	ReportFailure(&errOut, "")
	lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Error loading credentials!")
	assert.Contains(t, lines[1], "credentials.json")
	assert.Contains(t, lines[1], "--credentials=path/to/credentials.json")
}
