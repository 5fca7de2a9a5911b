package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yaojiwei520/snack-price-api/internal/api/middleware"
	"github.com/yaojiwei520/snack-price-api/pkg/auth"
)

var testSecret = []byte("middleware-test-secret")

// protectedHandler returns a handler wrapped in RequireToken plus a flag
// that records whether the inner handler ran.
func protectedHandler(secret []byte) (http.Handler, *bool) {
	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return middleware.RequireToken(secret)(inner), &called
}

func TestRequireToken_ValidToken(t *testing.T) {
	t.Parallel()

	token, err := auth.GenerateToken(testSecret, "test-client", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v; want nil", err)
	}

	handler, called := protectedHandler(testSecret)
	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
	}
	if !*called {
		t.Fatal("inner handler was not called")
	}
}

func TestRequireToken_MissingHeader(t *testing.T) {
	t.Parallel()

	handler, called := protectedHandler(testSecret)
	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
	}
	if *called {
		t.Fatal("inner handler was called without a token")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q; want %q", ct, "application/json")
	}
	if !strings.Contains(rec.Body.String(), "Authorization") {
		t.Fatalf("body = %q; want mention of Authorization header", rec.Body.String())
	}
}

func TestRequireToken_WrongScheme(t *testing.T) {
	t.Parallel()

	handler, called := protectedHandler(testSecret)
	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
	}
	if *called {
		t.Fatal("inner handler was called with a non-Bearer scheme")
	}
}

func TestRequireToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := auth.GenerateToken([]byte("some-other-secret"), "test-client", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v; want nil", err)
	}

	handler, called := protectedHandler(testSecret)
	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
	}
	if *called {
		t.Fatal("inner handler was called with a forged token")
	}
}

func TestRequireToken_ExpiredToken(t *testing.T) {
	t.Parallel()

	token, err := auth.GenerateToken(testSecret, "test-client", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v; want nil", err)
	}

	handler, called := protectedHandler(testSecret)
	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnauthorized)
	}
	if *called {
		t.Fatal("inner handler was called with an expired token")
	}
}
