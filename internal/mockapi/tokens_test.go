package mockapi

import (
	"strings"
	"testing"
	"time"
)

func TestTokenIssuer(t *testing.T) {
	issuer := newTokenIssuer("test-secret", time.Minute)

	t.Run("access token round trip", func(t *testing.T) {
		token := issuer.AccessToken("u0001")

		userID, expired, ok := issuer.Parse(token, false)
		if !ok {
			t.Fatal("valid token rejected")
		}
		if expired {
			t.Fatal("fresh token reported expired")
		}
		if userID != "u0001" {
			t.Fatalf("userID = %q, want %q", userID, "u0001")
		}
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		token := issuer.AccessToken("u0001")

		if _, _, ok := issuer.Parse(token, true); ok {
			t.Fatal("access token accepted as refresh token")
		}
	})

	t.Run("refresh token round trip", func(t *testing.T) {
		token := issuer.RefreshToken("u0002")

		userID, expired, ok := issuer.Parse(token, true)
		if !ok || expired {
			t.Fatalf("parse refresh: ok=%v expired=%v", ok, expired)
		}
		if userID != "u0002" {
			t.Fatalf("userID = %q, want %q", userID, "u0002")
		}
	})

	t.Run("tampered signature rejected", func(t *testing.T) {
		token := issuer.AccessToken("u0001")
		tampered := strings.Replace(token, "u0001", "u0002", 1)

		if _, _, ok := issuer.Parse(tampered, false); ok {
			t.Fatal("tampered token accepted")
		}
	})

	t.Run("foreign key rejected", func(t *testing.T) {
		other := newTokenIssuer("other-secret", time.Minute)
		token := other.AccessToken("u0001")

		if _, _, ok := issuer.Parse(token, false); ok {
			t.Fatal("token signed with another key accepted")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token := issuer.AccessToken("u0001")

		shifted := newTokenIssuer("test-secret", time.Minute)
		shifted.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

		userID, expired, ok := shifted.Parse(token, false)
		if !ok {
			t.Fatal("expired token must still parse")
		}
		if !expired {
			t.Fatal("expired = false, want true")
		}
		if userID != "u0001" {
			t.Fatalf("userID = %q, want %q", userID, "u0001")
		}
	})
}
