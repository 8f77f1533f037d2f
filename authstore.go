package main

import "sync"

// AuthStore owns the session. isAuthenticated is true iff both user and
// token are set; the persisted copy is kept in lockstep with memory.
type AuthStore struct {
	mu      sync.Mutex
	user    *User
	token   string
	loading bool
	err     string
	expired bool

	svc     *AuthService
	session *SessionStore
}

func NewAuthStore(svc *AuthService, session *SessionStore) *AuthStore {
	return &AuthStore{svc: svc, session: session}
}

func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *AuthStore) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

func (s *AuthStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *AuthStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *AuthStore) Login(email string, password string) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	result, err := s.svc.Login(email, password)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return false
	}
	s.user = &result.User
	s.token = result.Token
	s.expired = false
	s.persistLocked()
	return true
}

// Register stores the user either way; it only authenticates when the
// server handed back a token (no email confirmation required).
func (s *AuthStore) Register(username string, email string, password string) bool {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	result, err := s.svc.Register(username, email, password)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return false
	}
	s.user = &result.User
	if result.Token != "" {
		s.token = result.Token
		s.expired = false
		s.persistLocked()
	}
	return true
}

func (s *AuthStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.err = ""
}

// ExpireSession is the 401 interceptor's entry point: it clears the session
// and flags the expiry so the UI can route to the login form.
func (s *AuthStore) ExpireSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.err = sessionExpiredMessage
	s.expired = true
}

// ConsumeExpired reports a pending forced-logout exactly once.
func (s *AuthStore) ConsumeExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	expired := s.expired
	s.expired = false
	return expired
}

// Initialize restores a persisted session and re-validates the token
// against /users/me. A token that fails validation clears the whole
// session; an exp already in the past skips the round trip.
func (s *AuthStore) Initialize() {
	persisted, ok := s.session.Load()
	if !ok {
		return
	}
	if tokenExpired(persisted.Token) {
		_ = s.session.Clear()
		return
	}

	s.mu.Lock()
	s.loading = true
	s.token = persisted.Token
	s.user = persisted.User
	s.mu.Unlock()

	user, err := s.svc.CurrentUser()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.clearLocked()
		s.err = "session could not be verified: " + err.Error()
		return
	}
	s.user = &user
	s.persistLocked()
}

func (s *AuthStore) persistLocked() {
	_ = s.session.Save(Session{Token: s.token, User: s.user, Authenticated: s.user != nil && s.token != ""})
}

func (s *AuthStore) clearLocked() {
	s.user = nil
	s.token = ""
	s.loading = false
	_ = s.session.Clear()
}
