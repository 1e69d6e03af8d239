// Package auth gates the interactive UI behind a single admin login.
// Verification is a constant-time comparison of a SHA-256 digest of the
// input against the stored digest; plaintext is never compared.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrNoCredentials means the admin credentials are not configured.
var ErrNoCredentials = errors.New("auth: admin credentials not configured")

// Credentials is the stored admin identity, built once at startup.
type Credentials struct {
	user       []byte // sha256 of the username
	passDigest []byte // sha256 of the password
}

// NewCredentials builds credentials from a username and the hex SHA-256
// digest of the password.
func NewCredentials(username, passDigestHex string) (Credentials, error) {
	if username == "" || passDigestHex == "" {
		return Credentials{}, ErrNoCredentials
	}
	digest, err := hex.DecodeString(passDigestHex)
	if err != nil || len(digest) != sha256.Size {
		return Credentials{}, fmt.Errorf("auth: malformed password digest")
	}
	u := sha256.Sum256([]byte(username))
	return Credentials{user: u[:], passDigest: digest}, nil
}

// CredentialsFromEnv reads AMPA_ADMIN_USER and AMPA_ADMIN_PASS_SHA256.
// A plaintext AMPA_ADMIN_PASS is accepted as a fallback and hashed
// immediately; the comparison path is identical either way.
func CredentialsFromEnv() (Credentials, error) {
	user := os.Getenv("AMPA_ADMIN_USER")
	if digest := os.Getenv("AMPA_ADMIN_PASS_SHA256"); digest != "" {
		return NewCredentials(user, digest)
	}
	if pass := os.Getenv("AMPA_ADMIN_PASS"); pass != "" {
		sum := sha256.Sum256([]byte(pass))
		return NewCredentials(user, hex.EncodeToString(sum[:]))
	}
	return Credentials{}, ErrNoCredentials
}

// Gate performs login checks against the stored credentials.
type Gate struct {
	creds Credentials
}

// NewGate creates a gate for the given credentials.
func NewGate(creds Credentials) *Gate {
	return &Gate{creds: creds}
}

// Login verifies the supplied username and password. On success it
// returns a live session; on failure it returns nil and false after
// doing the same amount of comparison work either way.
func (g *Gate) Login(username, password string) (*Session, bool) {
	u := sha256.Sum256([]byte(username))
	p := sha256.Sum256([]byte(password))

	userOK := subtle.ConstantTimeCompare(u[:], g.creds.user)
	passOK := subtle.ConstantTimeCompare(p[:], g.creds.passDigest)
	if userOK&passOK != 1 {
		return nil, false
	}
	return &Session{user: username, startedAt: time.Now(), active: true}, true
}

// Session is an explicit authenticated-session object handed to the UI.
// There is no package-level flag; a handler either holds a live session
// or it doesn't.
type Session struct {
	user      string
	startedAt time.Time
	active    bool
}

// User returns the logged-in username.
func (s *Session) User() string { return s.user }

// StartedAt returns when the session began.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Authenticated reports whether the session is still live.
func (s *Session) Authenticated() bool { return s != nil && s.active }

// Logout invalidates the session.
func (s *Session) Logout() {
	if s != nil {
		s.active = false
	}
}
