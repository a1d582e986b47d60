package libcms

import "sync"

type (
	// A CredentialProvider gives the bearer token attached to outbound requests.
	// It is read on every request so a logout is effective immediately.
	CredentialProvider interface {
		Token() string
	}

	// A TokenStore is an in-memory CredentialProvider holding a single opaque token.
	TokenStore struct {
		mu    sync.RWMutex
		token string
	}
)

// NewTokenStore returns a new TokenStore initialized with the given token.
func NewTokenStore(token string) *TokenStore {
	return &TokenStore{token: token}
}

// Token implements CredentialProvider.
func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// SetToken stores the token returned by a login.
func (s *TokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear forgets the token.
func (s *TokenStore) Clear() {
	s.SetToken("")
}

// Defined returns true if a token is stored.
func (s *TokenStore) Defined() bool {
	return s.Token() != ""
}
