package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/recordkit/recordsvc/internal/store"
	"github.com/recordkit/recordsvc/internal/users"
	"github.com/stretchr/testify/require"
)

func newUserRouter(t *testing.T) (*gin.Engine, *store.MemoryBackend) {
	t.Helper()
	b := store.NewMemoryBackend(t.Name())
	g := gin.New()
	NewUserHandler(users.NewService(users.NewStore(b))).Register(g)
	return g, b
}

func TestUsers_RegisterLoginSync(t *testing.T) {
	g, _ := newUserRouter(t)

	w := do(t, g, http.MethodPost, "/api/register", `{"username":"alice","password":"pw","email":"a@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Registration successful","user":{"username":"alice"}}`, w.Body.String())

	w = do(t, g, http.MethodPost, "/api/register", `{"username":"alice","password":"other"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Username already exists", message(t, w))

	w = do(t, g, http.MethodPost, "/api/login", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Login successful","user":{"username":"alice","favorites":[]}}`, w.Body.String())

	w = do(t, g, http.MethodPost, "/api/sync", `{"username":"alice","favorites":[1,"b",{"c":true}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Sync successful", message(t, w))

	w = do(t, g, http.MethodGet, "/api/favorites/alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"favorites":[1,"b",{"c":true}]}`, w.Body.String())

	w = do(t, g, http.MethodPost, "/api/login", `{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Login successful","user":{"username":"alice","favorites":[1,"b",{"c":true}]}}`, w.Body.String())
}

func TestUsers_Errors(t *testing.T) {
	g, _ := newUserRouter(t)
	require.Equal(t, http.StatusOK, do(t, g, http.MethodPost, "/api/register", `{"username":"bob","password":"pw"}`).Code)

	cases := []struct {
		name, method, path, body string
		code                     int
		msg                      string
	}{
		{"wrong password", http.MethodPost, "/api/login", `{"username":"bob","password":"PW"}`, http.StatusUnauthorized, "Invalid username or password"},
		{"unknown user login", http.MethodPost, "/api/login", `{"username":"carol","password":"pw"}`, http.StatusUnauthorized, "Invalid username or password"},
		{"sync unknown", http.MethodPost, "/api/sync", `{"username":"carol","favorites":[]}`, http.StatusNotFound, "User not found"},
		{"favorites unknown", http.MethodGet, "/api/favorites/carol", "", http.StatusNotFound, "User not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, g, tc.method, tc.path, tc.body)
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.msg, message(t, w))
		})
	}

	for _, path := range []string{"/api/register", "/api/login", "/api/sync"} {
		w := do(t, g, http.MethodPost, path, `{"username":`)
		require.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestUsers_StorageError(t *testing.T) {
	g, b := newUserRouter(t)
	require.NoError(t, b.Write(t.Context(), []byte(`{"users":"oops"}`)))

	w := do(t, g, http.MethodPost, "/api/login", `{"username":"bob","password":"pw"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Internal server error", message(t, w))
}
