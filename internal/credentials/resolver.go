// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package credentials

import (
	"errors"
	"os"
	"path/filepath"

	apperrors "tumblr-repl/cli/internal/errors"
	"tumblr-repl/cli/internal/keychain"
)

// DefaultFile is the name reported when no credential source could be found.
const DefaultFile = "credentials.json"

// Environment variables consulted when neither a file nor the keychain has credentials.
const (
	EnvConsumerKey    = "TUMBLR_CONSUMER_KEY"
	EnvConsumerSecret = "TUMBLR_CONSUMER_SECRET"
	EnvToken          = "TUMBLR_TOKEN"
	EnvTokenSecret    = "TUMBLR_TOKEN_SECRET"
)

// SourceKind tells where credentials were loaded from.
type SourceKind string

const (
	SourceFile     SourceKind = "file"
	SourceKeychain SourceKind = "keychain"
	SourceEnv      SourceKind = "env"
)

// Source describes the origin of a credentials object.
type Source struct {
	Kind     SourceKind
	Location string
}

func (s Source) String() string {
	switch s.Kind {
	case SourceKeychain:
		return "OS keychain (" + s.Location + ")"
	case SourceEnv:
		return "environment (" + s.Location + ")"
	}
	return s.Location
}

// Store is the keychain capability the resolver needs.
type Store interface {
	LoadCredentials() ([]byte, error)
}

// Resolver locates credentials using a fixed search order:
// explicit path, candidate files, keychain, environment.
type Resolver struct {
	// Explicit is the --credentials override; when set it is the only file tried.
	Explicit string
	// Candidates are conventional file locations tried in order.
	Candidates []string
	// Keychain opens the credential store; nil disables the keychain source.
	Keychain func() (Store, error)
	// Getenv reads environment variables; nil disables the environment source.
	Getenv func(string) string
}

// DefaultCandidates returns the conventional credential file locations.
func DefaultCandidates() []string {
	candidates := []string{"tumblr-credentials.json", "credentials.json"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "tumblr-credentials.json"))
	}
	return candidates
}

// NewResolver returns a Resolver wired to the real file system, keychain and environment.
func NewResolver(explicit string) *Resolver {
	return &Resolver{
		Explicit:   explicit,
		Candidates: DefaultCandidates(),
		Keychain: func() (Store, error) {
			return keychain.GetManager()
		},
		Getenv: os.Getenv,
	}
}

// Resolve finds and loads credentials. The returned Source is meaningful even
// on error: it names the location that was attempted.
func (r *Resolver) Resolve() (Credentials, Source, error) {
	if r.Explicit != "" {
		return loadFile(r.Explicit)
	}

	for _, p := range r.Candidates {
		if fileExists(p) {
			return loadFile(p)
		}
	}

	if c, src, ok, err := r.fromKeychain(); ok || err != nil {
		return c, src, err
	}

	if c, src, ok := r.fromEnv(); ok {
		return c, src, nil
	}

	return loadFile(DefaultFile)
}

func (r *Resolver) fromKeychain() (Credentials, Source, bool, error) {
	if r.Keychain == nil {
		return Credentials{}, Source{}, false, nil
	}
	src := Source{Kind: SourceKeychain, Location: keychain.ServiceName}
	store, err := r.Keychain()
	if err != nil {
		// An unavailable keychain is just a source that has nothing.
		return Credentials{}, Source{}, false, nil
	}
	data, err := store.LoadCredentials()
	if err != nil {
		if errors.Is(err, keychain.ErrNotFound) {
			return Credentials{}, Source{}, false, nil
		}
		return Credentials{}, src, false, apperrors.Wrap(apperrors.CredentialsUnreadable, src.String(), err)
	}
	c, err := Parse(data)
	if err != nil {
		return Credentials{}, src, false, apperrors.Wrap(apperrors.CredentialsInvalid, src.String(), err)
	}
	return c, src, true, nil
}

func (r *Resolver) fromEnv() (Credentials, Source, bool) {
	if r.Getenv == nil {
		return Credentials{}, Source{}, false
	}
	c := New(
		r.Getenv(EnvConsumerKey),
		r.Getenv(EnvConsumerSecret),
		r.Getenv(EnvToken),
		r.Getenv(EnvTokenSecret),
	)
	if len(c.Missing()) == len(RequiredKeys) {
		return Credentials{}, Source{}, false
	}
	return c, Source{Kind: SourceEnv, Location: "TUMBLR_*"}, true
}

func loadFile(p string) (Credentials, Source, error) {
	src := Source{Kind: SourceFile, Location: p}
	if abs, err := filepath.Abs(p); err == nil {
		src.Location = abs
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credentials{}, src, apperrors.Wrap(apperrors.CredentialsNotFound, p, err)
		}
		return Credentials{}, src, apperrors.Wrap(apperrors.CredentialsUnreadable, p, err)
	}
	c, err := Parse(data)
	if err != nil {
		return Credentials{}, src, apperrors.Wrap(apperrors.CredentialsInvalid, p, err)
	}
	return c, src, nil
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
