// Package auth holds the client's cached credential and the authentication
// signal the session controller subscribes to.
package auth

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Listener is notified whenever the authenticated state changes.
type Listener func(authenticated bool)

// CredentialStore caches the bearer token for the current user. The gateway
// reads it on every call and clears it on an unauthorized response; the
// session controller resets its state when authentication is lost.
type CredentialStore struct {
	mu        sync.RWMutex
	token     string
	listeners []Listener
	now       func() time.Time
}

// NewCredentialStore creates an empty credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{now: time.Now}
}

// SetToken stores a bearer token and notifies listeners.
func (s *CredentialStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	listeners := append([]Listener(nil), s.listeners...)
	authenticated := s.validLocked()
	s.mu.Unlock()

	for _, l := range listeners {
		l(authenticated)
	}
}

// Clear removes the cached token and notifies listeners.
func (s *CredentialStore) Clear() {
	s.SetToken("")
}

// Token returns the cached bearer token, or empty when signed out.
func (s *CredentialStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a usable credential is cached. A token
// whose expiry claim has passed counts as signed out.
func (s *CredentialStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validLocked()
}

// OnChange registers a listener for authentication-state transitions.
func (s *CredentialStore) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *CredentialStore) validLocked() bool {
	if s.token == "" {
		return false
	}

	// The claims are read without signature verification: the client only
	// needs the expiry, the server remains the authority.
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.token, claims); err != nil {
		// Opaque tokens are accepted as-is.
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.After(s.now())
}
