package jwt

import (
	"testing"
	"time"
)

func TestNewRejectsEmptyKey(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestAccessRoundTrip(t *testing.T) {
	j, err := New("test-signing-key")
	if err != nil {
		t.Fatalf("new jwt: %v", err)
	}

	signed, claims, err := j.SignAccess(42, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if claims.JTI == "" {
		t.Fatal("expected a jti")
	}
	if claims.Type != TypeAccess {
		t.Fatalf("type = %q, want %q", claims.Type, TypeAccess)
	}

	parsed, err := j.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Identity != 42 {
		t.Fatalf("identity = %d, want 42", parsed.Identity)
	}
	if parsed.Type != TypeAccess {
		t.Fatalf("type = %q, want %q", parsed.Type, TypeAccess)
	}
	if parsed.JTI != claims.JTI {
		t.Fatalf("jti = %q, want %q", parsed.JTI, claims.JTI)
	}
	if parsed.Expires != claims.Expires {
		t.Fatalf("exp = %d, want %d", parsed.Expires, claims.Expires)
	}
}

func TestRefreshType(t *testing.T) {
	j, _ := New("test-signing-key")

	signed, _, err := j.SignRefresh(7, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parsed, err := j.Parse(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Type != TypeRefresh {
		t.Fatalf("type = %q, want %q", parsed.Type, TypeRefresh)
	}
}

func TestJTIUnique(t *testing.T) {
	j, _ := New("test-signing-key")

	_, first, err := j.SignAccess(1, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, second, err := j.SignAccess(1, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if first.JTI == second.JTI {
		t.Fatalf("expected distinct jtis, both %q", first.JTI)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	j, _ := New("test-signing-key")
	other, _ := New("another-key")

	signed, _, err := j.SignAccess(1, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := other.Parse(signed); err == nil {
		t.Fatal("expected parse to fail under a different key")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	j, _ := New("test-signing-key")

	signed, _, err := j.SignAccess(1, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := j.Parse(signed); err == nil {
		t.Fatal("expected parse to fail for an expired token")
	}
}
