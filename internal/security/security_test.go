package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter42")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "hunter42" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword(hash, "hunter42") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hash, "hunter43") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestNewSessionIDIsUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 32; i++ {
		sid, err := NewSessionID()
		if err != nil {
			t.Fatalf("new session id: %v", err)
		}
		if sid == "" {
			t.Fatal("expected non-empty session id")
		}
		if _, dup := seen[sid]; dup {
			t.Fatalf("duplicate session id %q", sid)
		}
		seen[sid] = struct{}{}
	}
}

func TestCookieManagerSetAndClear(t *testing.T) {
	cm := NewCookieManager("", false, "lax")

	rec := httptest.NewRecorder()
	cm.Set(rec, "qid", "abc", time.Hour)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "qid" || c.Value != "abc" {
		t.Fatalf("unexpected cookie: %+v", c)
	}
	if !c.HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Fatalf("expected SameSite=Lax, got %v", c.SameSite)
	}
	if c.MaxAge != int(time.Hour.Seconds()) {
		t.Fatalf("unexpected MaxAge %d", c.MaxAge)
	}

	rec = httptest.NewRecorder()
	cm.Clear(rec, "qid")
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expiring cookie, got %+v", cookies)
	}
}
