package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Stuart1162/fizzyjuice/internal/config"
	commonhttp "github.com/Stuart1162/fizzyjuice/internal/interfaces/http/common"
	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

var testNow = time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

func signToken(t *testing.T, secret, issuer, subject string, aud []string, exp time.Time) string {
	t.Helper()
	claims := authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  aud,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(testNow.Add(-time.Minute)),
		},
		Email: "sam@example.com",
		Name:  "Sam",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func testVerifier() tokenVerifier {
	return tokenVerifier{
		configs: []config.JWTConfig{
			{Issuer: "fizzyjuice-auth", Secret: []byte("primary")},
			{Secret: []byte("firebase")},
		},
		audience: "fizzyjuice",
		now:      func() time.Time { return testNow },
	}
}

// ── Token verification ────────────────────────────────────────────────────

func TestTokenVerifierParse(t *testing.T) {
	v := testVerifier()
	exp := testNow.Add(time.Hour)

	cases := []struct {
		name  string
		token string
		ok    bool
	}{
		{"primary issuer", signToken(t, "primary", "fizzyjuice-auth", "u1", []string{"fizzyjuice"}, exp), true},
		{"second config any issuer", signToken(t, "firebase", "securetoken", "u1", []string{"fizzyjuice"}, exp), true},
		{"wrong issuer", signToken(t, "primary", "someone-else", "u1", []string{"fizzyjuice"}, exp), false},
		{"wrong secret", signToken(t, "nope", "fizzyjuice-auth", "u1", []string{"fizzyjuice"}, exp), false},
		{"missing subject", signToken(t, "primary", "fizzyjuice-auth", "", []string{"fizzyjuice"}, exp), false},
		{"wrong audience", signToken(t, "primary", "fizzyjuice-auth", "u1", []string{"other"}, exp), false},
		{"expired", signToken(t, "primary", "fizzyjuice-auth", "u1", []string{"fizzyjuice"}, testNow.Add(-time.Hour)), false},
		{"within leeway", signToken(t, "primary", "fizzyjuice-auth", "u1", []string{"fizzyjuice"}, testNow.Add(-10*time.Second)), true},
		{"garbage", "not-a-token", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			claims, err := v.parse(c.token)
			if c.ok && err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !c.ok && err == nil {
				t.Fatalf("expected rejection, got %+v", claims)
			}
		})
	}
}

func TestTokenVerifierWithoutConfig(t *testing.T) {
	if _, err := (tokenVerifier{}).parse("x"); err == nil {
		t.Fatal("expected error without jwt configs")
	}
}

// ── Session middleware ────────────────────────────────────────────────────

type fakeResolver struct {
	calls int
	err   error
}

func (f *fakeResolver) Resolve(_ context.Context, uid, email, name string) (domain.Session, error) {
	f.calls++
	if f.err != nil {
		return domain.Session{}, f.err
	}
	return domain.NewSession(uid, email, name, &domain.Profile{UserID: uid, Role: domain.RoleEmployer}, nil), nil
}

func runSession(t *testing.T, resolver *fakeResolver, header string) (*httptest.ResponseRecorder, domain.Session) {
	t.Helper()
	var seen domain.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = commonhttp.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	sessionMiddleware(testVerifier(), resolver, nil)(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestSessionMiddleware(t *testing.T) {
	token := signToken(t, "primary", "fizzyjuice-auth", "u1", []string{"fizzyjuice"}, testNow.Add(time.Hour))

	t.Run("anonymous", func(t *testing.T) {
		resolver := &fakeResolver{}
		rec, session := runSession(t, resolver, "")
		if rec.Code != http.StatusNoContent || session.Authenticated() || resolver.calls != 0 {
			t.Fatalf("code=%d session=%+v calls=%d", rec.Code, session, resolver.calls)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		resolver := &fakeResolver{}
		rec, session := runSession(t, resolver, "Bearer "+token)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %d", rec.Code)
		}
		if session.UserID != "u1" || session.Role != domain.RoleEmployer || session.Email != "sam@example.com" {
			t.Errorf("session = %+v", session)
		}
	})

	t.Run("not bearer", func(t *testing.T) {
		rec, _ := runSession(t, &fakeResolver{}, "Basic abc")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("code = %d", rec.Code)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		resolver := &fakeResolver{}
		rec, _ := runSession(t, resolver, "Bearer broken")
		if rec.Code != http.StatusUnauthorized || resolver.calls != 0 {
			t.Fatalf("code=%d calls=%d", rec.Code, resolver.calls)
		}
	})

	t.Run("resolver failure", func(t *testing.T) {
		rec, _ := runSession(t, &fakeResolver{err: errors.New("mongo down")}, "Bearer "+token)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("code = %d", rec.Code)
		}
	})
}

// ── CORS ──────────────────────────────────────────────────────────────────

func TestWithCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := withCORS([]string{"https://fizzyjuice.uk"})(next)

	req := httptest.NewRequest(http.MethodOptions, "/jobs", nil)
	req.Header.Set("Origin", "https://fizzyjuice.uk")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight code = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://fizzyjuice.uk" {
		t.Errorf("allow-origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET,POST,PUT,PATCH,DELETE,OPTIONS" {
		t.Errorf("allow-methods = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("foreign origin got code=%d headers=%v", rec.Code, rec.Header())
	}

	all := withCORS([]string{"*"})(next)
	req = httptest.NewRequest(http.MethodGet, "/jobs", nil)
	req.Header.Set("Origin", "https://anything.example")
	rec = httptest.NewRecorder()
	all.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://anything.example" {
		t.Errorf("wildcard should echo origin, got %v", rec.Header())
	}
}
