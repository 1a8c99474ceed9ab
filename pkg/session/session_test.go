package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestSession_LoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(authResponse{
			Token: "tok-123",
			User:  &Principal{ID: "u1", Username: "ana", Role: "colaborador"},
		})
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	s := New(srv.URL, store, nil)

	p, err := s.Login(context.Background(), "ana@example.com", "pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if p.Username != "ana" {
		t.Fatalf("unexpected principal: %+v", p)
	}
	if !s.LoggedIn() || !s.IsElevated() || s.IsAdmin() {
		t.Fatalf("wrong capability flags for colaborador")
	}
	if tok, _ := store.Load(); tok != "tok-123" {
		t.Fatalf("token not persisted: %q", tok)
	}
	if s.Token() != "tok-123" {
		t.Fatalf("session token diverges from store")
	}
}

func TestSession_LoginFailureSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	s := New(srv.URL, NewMemoryTokenStore(), nil)

	_, err := s.Login(context.Background(), "ana@example.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "invalid credentials" {
		t.Fatalf("server message not carried verbatim: %+v", apiErr)
	}
	if s.LoggedIn() {
		t.Fatalf("failed login must leave the session empty")
	}
}

func TestSession_ResolveWithStoredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"not authenticated"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(Principal{ID: "u1", Username: "ana", Role: "admin"})
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	_ = store.Save("tok-abc")
	s := New(srv.URL, store, nil)

	if err := s.Resolve(context.Background()); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !s.IsAdmin() {
		t.Fatalf("admin flag not derived")
	}
}

// A rejected token is discarded and the session left empty, without error.
func TestSession_ResolveExpiredTokenClearsStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"not authenticated"}`))
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	_ = store.Save("expired-token")
	s := New(srv.URL, store, nil)

	if err := s.Resolve(context.Background()); err != nil {
		t.Fatalf("resolve should swallow auth failure: %v", err)
	}
	if s.LoggedIn() {
		t.Fatalf("session must be empty after rejected token")
	}
	if tok, _ := store.Load(); tok != "" {
		t.Fatalf("rejected token must be cleared from the store, got %q", tok)
	}
}

func TestSession_ResolveWithoutTokenSkipsServer(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	s := New(srv.URL, NewMemoryTokenStore(), nil)
	if err := s.Resolve(context.Background()); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if hits != 0 {
		t.Fatalf("no request expected without a stored token")
	}
	if s.LoggedIn() {
		t.Fatalf("session must be empty")
	}
}

func TestSession_Logout(t *testing.T) {
	store := NewMemoryTokenStore()
	_ = store.Save("tok")
	s := New("http://unused", store, nil)
	s.set("tok", &Principal{ID: "u1", Role: "admin"})

	if err := s.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if s.LoggedIn() || s.Token() != "" {
		t.Fatalf("logout must clear principal and token together")
	}
	if tok, _ := store.Load(); tok != "" {
		t.Fatalf("logout must clear the store, got %q", tok)
	}
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth", "token")
	store := NewFileTokenStore(path)

	if tok, err := store.Load(); err != nil || tok != "" {
		t.Fatalf("fresh store should be empty: %q, %v", tok, err)
	}
	if err := store.Save("tok-xyz"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if tok, _ := store.Load(); tok != "tok-xyz" {
		t.Fatalf("load after save: %q", tok)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if tok, _ := store.Load(); tok != "" {
		t.Fatalf("load after clear: %q", tok)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("double clear must be a no-op: %v", err)
	}
}
