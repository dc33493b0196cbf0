package secret

import (
	"net/url"
	"strings"
)

// Store looks up credentials such as the questionnaire API token. The main
// implementation reads the macOS Keychain; MemoryStore serves tests and
// platforms without one.
type Store interface {
	// Get returns the secret under key, or "" and a nil error when there is
	// none.
	Get(key string) (string, error)
}

// APITokenKey is the key under which the bearer token for apiURL is kept.
// Tokens are stored per host so one keychain entry serves every path.
func APITokenKey(apiURL string) string {
	host := apiURL
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return "api-token:" + strings.ToLower(host)
}

// MemoryStore is a map-backed Store.
type MemoryStore map[string]string

func (m MemoryStore) Get(key string) (string, error) {
	return m[key], nil
}
