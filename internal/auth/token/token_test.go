package token

import (
	"errors"
	"testing"
	"time"

	"finlight-auth/internal/auth"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()

	issuer, err := NewIssuer(Config{
		Secret:     []byte("test-secret-test-secret-test-secret"),
		AccessTTL:  30 * time.Minute,
		SessionTTL: 14 * 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	return issuer
}

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)

	tok, err := issuer.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	subject, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if subject != "user-1" {
		t.Fatalf("subject = %q, want user-1", subject)
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t)

	tok, err := issuer.IssueSession("user-2")
	if err != nil {
		t.Fatalf("IssueSession failed: %v", err)
	}

	subject, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if subject != "user-2" {
		t.Fatalf("subject = %q, want user-2", subject)
	}
}

func TestIssuedTokensAreDistinct(t *testing.T) {
	issuer := newTestIssuer(t)

	// Two tokens for one subject in the same second must still differ,
	// or rotating would hand back the very token it is replacing.
	first, err := issuer.IssueSession("user-1")
	if err != nil {
		t.Fatalf("IssueSession failed: %v", err)
	}
	second, err := issuer.IssueSession("user-1")
	if err != nil {
		t.Fatalf("IssueSession failed: %v", err)
	}

	if first == second {
		t.Fatal("two session tokens issued back-to-back are byte-identical")
	}

	for _, tok := range []string{first, second} {
		if sub, err := issuer.Verify(tok); err != nil || sub != "user-1" {
			t.Fatalf("token does not verify: sub=%q err=%v", sub, err)
		}
	}

	a1, err := issuer.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}
	a2, err := issuer.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}
	if a1 == a2 {
		t.Fatal("two access tokens issued back-to-back are byte-identical")
	}
}

func TestVerifyFailsClosed(t *testing.T) {
	issuer := newTestIssuer(t)

	expired, err := NewIssuer(Config{
		Secret:     []byte("test-secret-test-secret-test-secret"),
		AccessTTL:  time.Nanosecond,
		SessionTTL: time.Nanosecond,
	})
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	expiredTok, err := expired.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	otherKey, err := NewIssuer(Config{
		Secret:     []byte("a completely different secret value"),
		AccessTTL:  30 * time.Minute,
		SessionTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewIssuer failed: %v", err)
	}
	foreignTok, err := otherKey.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	valid, err := issuer.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess failed: %v", err)
	}

	cases := map[string]string{
		"empty":           "",
		"garbage":         "not.a.jwt",
		"expired":         expiredTok,
		"wrong key":       foreignTok,
		"tampered":        valid + "xx",
		"missing segment": "eyJhbGciOiJIUzUxMiJ9",
	}

	for name, tok := range cases {
		if _, err := issuer.Verify(tok); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
		}
	}
}

func TestNewIssuerValidation(t *testing.T) {
	if _, err := NewIssuer(Config{AccessTTL: time.Minute, SessionTTL: time.Hour}); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewIssuer(Config{Secret: []byte("s"), SessionTTL: time.Hour}); err == nil {
		t.Error("expected error for zero access TTL")
	}
	if _, err := NewIssuer(Config{Secret: []byte("s"), AccessTTL: time.Minute}); err == nil {
		t.Error("expected error for zero session TTL")
	}
}
