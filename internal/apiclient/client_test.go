package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub-dev/learnhub/internal/tokenstore"
)

// recordingNavigator captures navigation targets
type recordingNavigator struct {
	targets []string
}

func (r *recordingNavigator) Navigate(target string) {
	r.targets = append(r.targets, target)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *tokenstore.TokenStore, *recordingNavigator) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := tokenstore.New(tokenstore.NewMemoryStorage())
	nav := &recordingNavigator{}
	client, err := New(srv.URL, Options{Tokens: tokens, Navigator: nav})
	require.NoError(t, err)
	return client, tokens, nav
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New("", Options{})
	assert.Error(t, err)

	_, err = New("localhost:3000", Options{})
	assert.Error(t, err)
}

func TestRequest_NoTokenNoAuthorizationHeader(t *testing.T) {
	var gotAuth string
	var sawAuth bool
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, sawAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.Request(context.Background(), tokenstore.RoleUser, "/courses", RequestOptions{}, nil))
	assert.False(t, sawAuth)
	assert.Empty(t, gotAuth)
}

func TestRequest_AttachesBearerForRole(t *testing.T) {
	var gotAuth, gotContentType, gotTrace string
	client, tokens, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotTrace = r.Header.Get("X-Trace")
		w.Write([]byte(`{}`))
	})
	require.NoError(t, tokens.Set(tokenstore.RoleUser, "user-t"))
	require.NoError(t, tokens.Set(tokenstore.RoleAdmin, "admin-t"))

	headers := http.Header{}
	headers.Set("X-Trace", "1")
	headers.Set("Authorization", "Bearer spoofed")

	require.NoError(t, client.Request(context.Background(), tokenstore.RoleAdmin, "/courses", RequestOptions{Headers: headers}, nil))
	assert.Equal(t, "Bearer admin-t", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "1", gotTrace)
}

func TestRequest_CallerCanOverrideContentType(t *testing.T) {
	var gotContentType string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
	})

	headers := http.Header{"Content-Type": []string{"text/plain"}}
	require.NoError(t, client.Request(context.Background(), tokenstore.RoleUser, "/contact", RequestOptions{Method: http.MethodPost, Body: "hi", Headers: headers}, nil))
	assert.Equal(t, "text/plain", gotContentType)
}

func TestRequest_AdminCoursesEndToEnd(t *testing.T) {
	var path string
	client, tokens, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"1","title":"X"}]`))
	})
	require.NoError(t, tokens.Set(tokenstore.RoleAdmin, "abc"))

	var result []map[string]any
	err := client.Request(context.Background(), tokenstore.RoleAdmin, "/courses", RequestOptions{Method: http.MethodGet}, &result)
	require.NoError(t, err)

	assert.Equal(t, "/api/courses", path)
	assert.Equal(t, []map[string]any{{"_id": "1", "title": "X"}}, result)
	assert.Empty(t, nav.targets)
}

func TestRequest_UnauthorizedClearsTokenAndNavigatesOnce(t *testing.T) {
	client, tokens, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"jwt expired"}`))
	})
	require.NoError(t, tokens.Set(tokenstore.RoleUser, "stale"))
	require.NoError(t, tokens.Set(tokenstore.RoleAdmin, "admin"))

	err := client.Request(context.Background(), tokenstore.RoleUser, "/user/profile", RequestOptions{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, 401, StatusOf(err))

	_, ok := tokens.Get(tokenstore.RoleUser)
	assert.False(t, ok)
	_, ok = tokens.Get(tokenstore.RoleAdmin)
	assert.True(t, ok, "a user 401 must not log the admin out")
	assert.Equal(t, []string{"/login"}, nav.targets)
}

func TestRequest_AdminUnauthorizedNavigatesToAdminLogin(t *testing.T) {
	client, tokens, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	require.NoError(t, tokens.Set(tokenstore.RoleAdmin, "abc"))

	err := client.Request(context.Background(), tokenstore.RoleAdmin, "/courses", RequestOptions{}, nil)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, []string{"/admin/login"}, nav.targets)
}

func TestRequest_NetworkFailureKeepsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	tokens := tokenstore.New(tokenstore.NewMemoryStorage())
	require.NoError(t, tokens.Set(tokenstore.RoleUser, "keep-me"))
	nav := &recordingNavigator{}
	client, err := New(baseURL, Options{Tokens: tokens, Navigator: nav})
	require.NoError(t, err)

	err = client.Request(context.Background(), tokenstore.RoleUser, "/user/profile", RequestOptions{}, nil)
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.True(t, IsNetwork(err))
	assert.False(t, IsUnauthorized(err))

	token, ok := tokens.Get(tokenstore.RoleUser)
	assert.True(t, ok)
	assert.Equal(t, "keep-me", token)
	assert.Empty(t, nav.targets)
}

func TestRequest_APIErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusNotFound, `{"message":"Not found"}`, "Not found"},
		{"error field", http.StatusBadRequest, `{"error":"Email taken"}`, "Email taken"},
		{"unparsable body", http.StatusInternalServerError, `<html>oops</html>`, "API error: 500"},
		{"empty body", http.StatusForbidden, ``, "API error: 403"},
		{"empty object", http.StatusConflict, `{}`, "API error: 409"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, tokens, nav := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			require.NoError(t, tokens.Set(tokenstore.RoleUser, "t"))

			err := client.Request(context.Background(), tokenstore.RoleUser, "/x", RequestOptions{}, nil)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)

			_, ok := tokens.Get(tokenstore.RoleUser)
			assert.True(t, ok)
			assert.Empty(t, nav.targets)
		})
	}
}

func TestRequest_EncodesBodyAndForwardsRequestID(t *testing.T) {
	var got LoginRequest
	var requestID string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get(RequestIDHeader)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"token":"new","user":{"name":"Ada","email":"ada@example.com"}}`))
	})

	ctx := ContextWithRequestID(context.Background(), "req-1")
	resp, err := client.Login(ctx, LoginRequest{Email: "ada@example.com", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "new", resp.Token)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Equal(t, "req-1", requestID)
}

func TestRequest_ConcurrentUnauthorizedIsIdempotent(t *testing.T) {
	var calls int32
	client, tokens, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	require.NoError(t, tokens.Set(tokenstore.RoleUser, "t"))

	var navigations int32
	client = client.WithSession(tokens, NavigatorFunc(func(string) { atomic.AddInt32(&navigations, 1) }))

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			done <- client.Request(context.Background(), tokenstore.RoleUser, "/user/registrations", RequestOptions{}, nil)
		}()
	}
	for i := 0; i < 2; i++ {
		assert.True(t, IsUnauthorized(<-done))
	}

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(2), atomic.LoadInt32(&navigations))
	_, ok := tokens.Get(tokenstore.RoleUser)
	assert.False(t, ok)
}

func TestAdminCRUD_Paths(t *testing.T) {
	var seen []string
	client, tokens, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[{"_id":"1"}]`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			body, _ := io.ReadAll(r.Body)
			w.Write(body)
		}
	})
	require.NoError(t, tokens.Set(tokenstore.RoleAdmin, "a"))
	ctx := context.Background()

	docs, err := client.AdminList(ctx, KindWorkshops)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	created, err := client.AdminCreate(ctx, KindCourses, Document(`{"title":"Go"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Go"}`, string(created))

	_, err = client.AdminUpdate(ctx, KindHackathons, "h/1", Document(`{"title":"H"}`))
	require.NoError(t, err)

	require.NoError(t, client.AdminDelete(ctx, KindCourses, "9"))

	assert.Equal(t, []string{
		"GET /api/workshops",
		"POST /api/courses",
		"PUT /api/hackathons/h/1",
		"DELETE /api/courses/9",
	}, seen)
}

func TestEndpoints_InvalidPayloadIsNotSent(t *testing.T) {
	var calls int32
	client, tokens, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{}`))
	})
	require.NoError(t, tokens.Set(tokenstore.RoleUser, "t"))
	ctx := context.Background()

	_, err := client.CreateOrder(ctx, OrderRequest{Kind: "book", ItemID: "c1"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = client.VerifyPayment(ctx, PaymentVerification{OrderID: "o1"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	err = client.SendContact(ctx, ContactMessage{Name: "Ada", Email: "not-an-email", Message: "hi"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = client.Signup(ctx, SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	_, ok := tokens.Get(tokenstore.RoleUser)
	assert.True(t, ok, "validation failures never touch the session")
}

func TestEndpoints_ValidPayloadIsSent(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/create-order", r.URL.Path)
		w.Write([]byte(`{"orderId":"o1","amount":49900,"currency":"INR"}`))
	})

	order, err := client.CreateOrder(context.Background(), OrderRequest{Kind: "course", ItemID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "o1", order.OrderID)
}
