package core

import (
	"errors"
	"testing"
	"time"
)

func TestTokenIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer([]byte("super-secret"), time.Hour)

	tok, err := issuer.Issue("customer1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	username, err := issuer.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if username != "customer1" {
		t.Fatalf("username mismatch: got %q want %q", username, "customer1")
	}
}

func TestTokenParseExpired(t *testing.T) {
	issuer := &TokenIssuer{secret: []byte("super-secret"), lifetime: -1 * time.Second}

	tok, err := issuer.Issue("customer1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := issuer.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenParseWrongSecret(t *testing.T) {
	tok, err := NewTokenIssuer([]byte("right-secret"), time.Hour).Issue("customer1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	wrong := NewTokenIssuer([]byte("wrong-secret"), time.Hour)
	if _, err := wrong.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenParseMalformed(t *testing.T) {
	issuer := NewTokenIssuer([]byte("k"), time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "aaaa"} {
		if _, err := issuer.Parse(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}

func TestTokenDefaultLifetime(t *testing.T) {
	issuer := NewTokenIssuer([]byte("k"), 0)
	if issuer.lifetime != time.Hour {
		t.Fatalf("expected default lifetime of 1h, got %v", issuer.lifetime)
	}
}
