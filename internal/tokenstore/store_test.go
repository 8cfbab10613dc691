package tokenstore

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func storages(t *testing.T) map[string]Storage {
	t.Helper()
	keyring.MockInit()
	return map[string]Storage{
		"memory":  NewMemoryStorage(),
		"file":    NewFileStorage(filepath.Join(t.TempDir(), "session.json")),
		"keyring": NewKeyringStorage("learnhub-test"),
	}
}

func TestTokenStore_SetGetClear(t *testing.T) {
	for name, storage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			store := New(storage)

			_, ok := store.Get(RoleUser)
			assert.False(t, ok, "fresh store should have no user token")

			require.NoError(t, store.Set(RoleUser, "user-token"))
			token, ok := store.Get(RoleUser)
			require.True(t, ok)
			assert.Equal(t, "user-token", token)

			require.NoError(t, store.Clear(RoleUser))
			_, ok = store.Get(RoleUser)
			assert.False(t, ok)

			// Idempotent
			require.NoError(t, store.Clear(RoleUser))
		})
	}
}

func TestTokenStore_RolesAreIsolated(t *testing.T) {
	for name, storage := range storages(t) {
		t.Run(name, func(t *testing.T) {
			store := New(storage)

			require.NoError(t, store.Set(RoleUser, "u"))
			require.NoError(t, store.Set(RoleAdmin, "a"))

			require.NoError(t, store.Clear(RoleAdmin))

			token, ok := store.Get(RoleUser)
			require.True(t, ok)
			assert.Equal(t, "u", token)

			require.NoError(t, store.Set(RoleAdmin, "a2"))
			require.NoError(t, store.Set(RoleUser, "u2"))

			token, ok = store.Get(RoleAdmin)
			require.True(t, ok)
			assert.Equal(t, "a2", token)
		})
	}
}

func TestTokenStore_RejectsEmptyTokenAndUnknownRole(t *testing.T) {
	store := New(NewMemoryStorage())

	assert.ErrorIs(t, store.Set(RoleUser, ""), ErrEmptyToken)
	assert.ErrorIs(t, store.Set(RoleUser, "   "), ErrEmptyToken)
	assert.ErrorIs(t, store.Set(Role("root"), "x"), ErrInvalidRole)
	assert.ErrorIs(t, store.Clear(Role("root")), ErrInvalidRole)

	_, ok := store.Get(Role("root"))
	assert.False(t, ok)
}

func TestTokenStore_ClearUserDropsDisplayName(t *testing.T) {
	store := New(NewMemoryStorage())
	require.NoError(t, store.Set(RoleUser, "t"))
	require.NoError(t, store.SetDisplayName("Ada"))

	name, ok := store.DisplayName()
	require.True(t, ok)
	assert.Equal(t, "Ada", name)

	require.NoError(t, store.Clear(RoleAdmin))
	_, ok = store.DisplayName()
	assert.True(t, ok, "admin logout must not touch the user display name")

	require.NoError(t, store.Clear(RoleUser))
	_, ok = store.DisplayName()
	assert.False(t, ok)
}

func TestTokenStore_NilStoreIsAbsent(t *testing.T) {
	var store *TokenStore
	_, ok := store.Get(RoleUser)
	assert.False(t, ok)
}

func TestRole_KeysAndLoginPaths(t *testing.T) {
	assert.Equal(t, "authToken", RoleUser.TokenKey())
	assert.Equal(t, "adminAuthToken", RoleAdmin.TokenKey())
	assert.Equal(t, "/login", RoleUser.LoginPath())
	assert.Equal(t, "/admin/login", RoleAdmin.LoginPath())

	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("guest")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestFileStorage_CorruptFileIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, writeFile(path, "{not json"))

	store := New(NewFileStorage(path))
	_, ok := store.Get(RoleUser)
	assert.False(t, ok)
}

func TestFileStorage_CorruptFileIsReplacedOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, writeFile(path, "{not json"))

	store := New(NewFileStorage(path))
	require.NoError(t, store.Clear(RoleUser))
	require.NoError(t, store.Clear(RoleAdmin))

	require.NoError(t, store.Set(RoleUser, "fresh"))
	token, ok := store.Get(RoleUser)
	require.True(t, ok)
	assert.Equal(t, "fresh", token)

	// Reopening sees the rewritten file
	reopened := New(NewFileStorage(path))
	token, ok = reopened.Get(RoleUser)
	require.True(t, ok)
	assert.Equal(t, "fresh", token)

	require.NoError(t, reopened.Clear(RoleUser))
	_, ok = reopened.Get(RoleUser)
	assert.False(t, ok)
}

func TestCookieStorage_NoRequestContext(t *testing.T) {
	store := New(NewCookieStorage(nil, DefaultCookieOptions()))

	_, ok := store.Get(RoleUser)
	assert.False(t, ok)

	require.NoError(t, store.Clear(RoleUser))
}

func TestCookieStorage_ReadsAndWritesCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: AdminTokenKey, Value: "abc"})

	store := New(NewCookieStorage(c, DefaultCookieOptions()))

	token, ok := store.Get(RoleAdmin)
	require.True(t, ok)
	assert.Equal(t, "abc", token)

	require.NoError(t, store.Clear(RoleAdmin))
	_, ok = store.Get(RoleAdmin)
	assert.False(t, ok, "cleared cookie must read as absent within the same request")

	require.NoError(t, store.Set(RoleUser, "u1"))
	token, ok = store.Get(RoleUser)
	require.True(t, ok)
	assert.Equal(t, "u1", token)

	cookies := w.Result().Cookies()
	byName := map[string]*http.Cookie{}
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}
	require.Contains(t, byName, AdminTokenKey)
	assert.Less(t, byName[AdminTokenKey].MaxAge, 0)
	require.Contains(t, byName, UserTokenKey)
	assert.Equal(t, "u1", byName[UserTokenKey].Value)
	assert.True(t, byName[UserTokenKey].HttpOnly)
}

func TestKeyringAvailable_ReadOnlyProbe(t *testing.T) {
	keyring.MockInit()

	assert.True(t, KeyringAvailable("learnhub-probe-test"))
	_, err := keyring.Get("learnhub-probe-test", UserTokenKey)
	assert.ErrorIs(t, err, keyring.ErrNotFound, "checking availability must not write entries")

	storage := NewKeyringStorage("learnhub-probe-test")
	require.NoError(t, storage.Set(UserTokenKey, "tok"))
	assert.True(t, KeyringAvailable("learnhub-probe-test"))
	value, ok := storage.Get(UserTokenKey)
	require.True(t, ok)
	assert.Equal(t, "tok", value)

	keyring.MockInitWithError(errors.New("keychain locked"))
	t.Cleanup(keyring.MockInit)
	assert.False(t, KeyringAvailable("learnhub-probe-test"))
}
