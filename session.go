package main

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "modernc.org/sqlite"
)

const sessionKey = "auth-storage"

// KeyValueStore is the injected persistence abstraction the session rides
// on, so the same logic runs against any backend.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Clear(key string) error
}

type sqliteKV struct {
	db *sql.DB
}

func openSQLiteKV(path string) (*sqliteKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteKV{db: db}, nil
}

func (s *sqliteKV) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *sqliteKV) Set(key string, value string) error {
	_, err := s.db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *sqliteKV) Clear(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (s *sqliteKV) Close() error {
	return s.db.Close()
}

// SessionStore persists the auth session under a single namespaced key.
type SessionStore struct {
	kv KeyValueStore
}

func NewSessionStore(kv KeyValueStore) *SessionStore {
	return &SessionStore{kv: kv}
}

func OpenSessionStore(path string) (*SessionStore, error) {
	kv, err := openSQLiteKV(path)
	if err != nil {
		return nil, err
	}
	return NewSessionStore(kv), nil
}

func (s *SessionStore) Load() (Session, bool) {
	raw, ok, err := s.kv.Get(sessionKey)
	if err != nil || !ok {
		return Session{}, false
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return Session{}, false
	}
	if session.Token == "" || session.User == nil {
		return Session{}, false
	}
	return session, true
}

func (s *SessionStore) Save(session Session) error {
	blob, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.kv.Set(sessionKey, string(blob))
}

func (s *SessionStore) Clear() error {
	return s.kv.Clear(sessionKey)
}

var sessionNow = time.Now

// tokenExpired decodes the token's claims without verifying the signature
// and reports whether its exp has already passed. Tokens that don't parse
// or carry no exp are left for the server to judge.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.Before(sessionNow())
}
