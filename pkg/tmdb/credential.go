package tmdb

import "os"

// EnvAPIKey is the environment variable consulted first for the API key.
const EnvAPIKey = "TMDB_API_KEY"

// Lookup returns an API credential, or "" when the source has none.
type Lookup func() string

// EnvCredential reads the key from the named environment variable.
func EnvCredential(name string) Lookup {
	return func() string { return os.Getenv(name) }
}

// StaticCredential returns a fixed key (e.g. from a config file).
func StaticCredential(key string) Lookup {
	return func() string { return key }
}

// Credential resolves an API key from an ordered list of sources,
// evaluated lazily at call time: first present wins.
type Credential struct {
	lookups []Lookup
}

// NewCredential creates a credential chain. With no sources it falls back
// to the TMDB_API_KEY environment variable.
func NewCredential(lookups ...Lookup) *Credential {
	if len(lookups) == 0 {
		lookups = []Lookup{EnvCredential(EnvAPIKey)}
	}
	return &Credential{lookups: lookups}
}

// Resolve returns the first non-empty key. Absence surfaces as ErrAuth at
// the first call, not at construction.
func (c *Credential) Resolve() (string, error) {
	for _, lookup := range c.lookups {
		if key := lookup(); key != "" {
			return key, nil
		}
	}
	return "", ErrAuth
}
