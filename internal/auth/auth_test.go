package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
)

func digestOf(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestLogin(t *testing.T) {
	creds, err := NewCredentials("admin", digestOf("secreto"))
	if err != nil {
		t.Fatalf("NewCredentials: %v", err)
	}
	gate := NewGate(creds)

	tests := []struct {
		name string
		user string
		pass string
		ok   bool
	}{
		{"correct", "admin", "secreto", true},
		{"wrong password", "admin", "Secreto", false},
		{"wrong user", "root", "secreto", false},
		{"both wrong", "root", "toor", false},
		{"empty", "", "", false},
		{"swapped", "secreto", "admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, ok := gate.Login(tt.user, tt.pass)
			if ok != tt.ok {
				t.Fatalf("Login(%q, %q) = %v, want %v", tt.user, tt.pass, ok, tt.ok)
			}
			if tt.ok && !session.Authenticated() {
				t.Error("successful login returned an inactive session")
			}
			if !tt.ok && session != nil {
				t.Error("failed login leaked a session")
			}
		})
	}
}

func TestNewCredentialsValidation(t *testing.T) {
	tests := []struct {
		name   string
		user   string
		digest string
		noCred bool
	}{
		{"missing user", "", digestOf("x"), true},
		{"missing digest", "admin", "", true},
		{"not hex", "admin", "zz" + digestOf("x")[2:], false},
		{"short digest", "admin", "deadbeef", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCredentials(tt.user, tt.digest)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrNoCredentials); got != tt.noCred {
				t.Errorf("errors.Is(err, ErrNoCredentials) = %v, want %v", got, tt.noCred)
			}
		})
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Run("hashed digest", func(t *testing.T) {
		t.Setenv("AMPA_ADMIN_USER", "admin")
		t.Setenv("AMPA_ADMIN_PASS_SHA256", digestOf("secreto"))
		t.Setenv("AMPA_ADMIN_PASS", "")

		creds, err := CredentialsFromEnv()
		if err != nil {
			t.Fatalf("CredentialsFromEnv: %v", err)
		}
		if _, ok := NewGate(creds).Login("admin", "secreto"); !ok {
			t.Error("login failed with env-provided digest")
		}
	})

	t.Run("plaintext fallback is hashed", func(t *testing.T) {
		t.Setenv("AMPA_ADMIN_USER", "admin")
		t.Setenv("AMPA_ADMIN_PASS_SHA256", "")
		t.Setenv("AMPA_ADMIN_PASS", "secreto")

		creds, err := CredentialsFromEnv()
		if err != nil {
			t.Fatalf("CredentialsFromEnv: %v", err)
		}
		gate := NewGate(creds)
		if _, ok := gate.Login("admin", "secreto"); !ok {
			t.Error("login failed with plaintext fallback")
		}
		// The stored form must be the digest, not the plaintext.
		if _, ok := gate.Login("admin", digestOf("secreto")); ok {
			t.Error("hex digest accepted as the password itself")
		}
	})

	t.Run("unset", func(t *testing.T) {
		t.Setenv("AMPA_ADMIN_USER", "")
		t.Setenv("AMPA_ADMIN_PASS_SHA256", "")
		t.Setenv("AMPA_ADMIN_PASS", "")

		if _, err := CredentialsFromEnv(); !errors.Is(err, ErrNoCredentials) {
			t.Errorf("err = %v, want ErrNoCredentials", err)
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	creds, err := NewCredentials("admin", digestOf("pw"))
	if err != nil {
		t.Fatal(err)
	}
	session, ok := NewGate(creds).Login("admin", "pw")
	if !ok {
		t.Fatal("login failed")
	}

	if session.User() != "admin" {
		t.Errorf("User() = %q, want admin", session.User())
	}
	if session.StartedAt().IsZero() {
		t.Error("StartedAt() is zero")
	}
	if !session.Authenticated() {
		t.Error("fresh session not authenticated")
	}

	session.Logout()
	if session.Authenticated() {
		t.Error("session still authenticated after Logout")
	}

	var nilSession *Session
	if nilSession.Authenticated() {
		t.Error("nil session reports authenticated")
	}
	nilSession.Logout() // must not panic
}
