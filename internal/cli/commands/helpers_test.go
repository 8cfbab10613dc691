package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// mockBackend serves canned JSON by "METHOD /path" and records auth headers
type mockBackend struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	calls     []string
	auth      []string
}

type mockResponse struct {
	status int
	body   any
}

func (m *mockBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	m.mu.Lock()
	m.calls = append(m.calls, key)
	m.auth = append(m.auth, r.Header.Get("Authorization"))
	resp, ok := m.responses[key]
	m.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	if resp.body != nil {
		_ = json.NewEncoder(w).Encode(resp.body)
	}
}

func (m *mockBackend) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// testEnv wires a command to a mock backend and in-memory session storage
type testEnv struct {
	backend *mockBackend
	tokens  *tokenstore.TokenStore
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	url     string
}

func newTestEnv(t *testing.T, responses map[string]mockResponse) *testEnv {
	t.Helper()
	backend := &mockBackend{responses: responses}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	return &testEnv{
		backend: backend,
		tokens:  tokenstore.New(tokenstore.NewMemoryStorage()),
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
		url:     srv.URL,
	}
}

func (e *testEnv) opts() []Option {
	return []Option{WithAPIURL(e.url), WithTokens(e.tokens), WithOutput(e.out), WithErrOutput(e.errOut)}
}

func mustSet(t *testing.T, tokens *tokenstore.TokenStore, role tokenstore.Role, token string) {
	t.Helper()
	if err := tokens.Set(role, token); err != nil {
		t.Fatalf("failed to set %s token: %v", role, err)
	}
}
