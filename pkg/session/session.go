// Package session holds the client side of authentication: the persisted
// bearer token and the principal last resolved from it. A Session is the
// single source of truth for "am I logged in, and as what": it never
// diverges from the token in its store, and both are invalidated together.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Principal is the client-side view of an authenticated portal user.
type Principal struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Nome       string `json:"nome,omitempty"`
	FotoPerfil string `json:"foto_perfil,omitempty"`
	Role       string `json:"role"`
}

// RegisterInput carries the fields sent to the register endpoint.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Nome      string `json:"nome,omitempty"`
	Documento string `json:"documento,omitempty"`
	Telefone  string `json:"telefone,omitempty"`
}

// APIError is a non-2xx response from the server, carrying its message
// verbatim for display.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Session is the process-wide session context. All methods are safe for
// concurrent use; reads are synchronous against the last resolved state.
type Session struct {
	baseURL string
	client  *http.Client
	store   TokenStore

	mu      sync.RWMutex
	token   string
	current *Principal
}

// New creates a Session against baseURL, persisting the token in store.
// httpClient may be nil; timeouts beyond the default are the caller's choice.
func New(baseURL string, store TokenStore, httpClient *http.Client) *Session {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Session{baseURL: baseURL, client: httpClient, store: store}
}

// Resolve populates the session from the persisted token by asking the
// server who the token belongs to. A 401 clears the persisted token and
// leaves the session empty; it is never retried. Transport failures surface
// without touching the stored token.
func (s *Session) Resolve(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return nil
	}

	var principal Principal
	err = s.doJSON(ctx, http.MethodGet, "/api/user", token, nil, &principal)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			_ = s.store.Clear()
			s.set("", nil)
			return nil
		}
		return err
	}

	s.set(token, &principal)
	return nil
}

type authResponse struct {
	Token string     `json:"token"`
	User  *Principal `json:"user"`
}

// Login authenticates and adopts the returned token and principal.
func (s *Session) Login(ctx context.Context, email, password string) (*Principal, error) {
	return s.authenticate(ctx, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register creates an account and adopts the returned token and principal.
func (s *Session) Register(ctx context.Context, in RegisterInput) (*Principal, error) {
	return s.authenticate(ctx, "/api/register", in)
}

func (s *Session) authenticate(ctx context.Context, path string, body any) (*Principal, error) {
	var resp authResponse
	if err := s.doJSON(ctx, http.MethodPost, path, "", body, &resp); err != nil {
		return nil, err
	}
	if err := s.store.Save(resp.Token); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	s.set(resp.Token, resp.User)
	return resp.User, nil
}

// Logout discards the token and the resolved principal together. Purely
// local: the server keeps no revocation list.
func (s *Session) Logout() error {
	s.set("", nil)
	return s.store.Clear()
}

// Current returns a copy of the resolved principal, or nil when anonymous.
func (s *Session) Current() *Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copy := *s.current
	return &copy
}

// Token returns the bearer token currently in use, "" when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// LoggedIn reports whether a principal is resolved.
func (s *Session) LoggedIn() bool {
	return s.Current() != nil
}

// IsAdmin reports whether the resolved principal is an admin.
func (s *Session) IsAdmin() bool {
	p := s.Current()
	return p != nil && p.Role == "admin"
}

// IsElevated reports whether the resolved principal may manage content
// (colaborador or admin).
func (s *Session) IsElevated() bool {
	p := s.Current()
	return p != nil && (p.Role == "admin" || p.Role == "colaborador")
}

func (s *Session) set(token string, principal *Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.current = principal
}

// doJSON performs one request; non-2xx responses become *APIError with the
// server's error message verbatim. No retries: every failure surfaces once.
func (s *Session) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
