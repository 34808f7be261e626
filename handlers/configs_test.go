package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/recordkit/recordsvc/internal/adminauth"
	"github.com/recordkit/recordsvc/internal/configs"
	"github.com/recordkit/recordsvc/internal/store"
	"github.com/recordkit/recordsvc/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfigRouter(t *testing.T, adminMW ...gin.HandlerFunc) (*gin.Engine, *store.MemoryBackend) {
	t.Helper()
	b := store.NewMemoryBackend(t.Name())
	h := NewConfigHandler(configs.NewService(configs.NewStore(b, configs.DefaultSeed())))
	g := gin.New()
	h.Register(g, adminMW...)
	return g, b
}

func TestConfigs_ClientRoutes(t *testing.T) {
	g, _ := newConfigRouter(t)

	w := do(t, g, http.MethodGet, "/api/configs", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"welcome_msg":"Welcome to the cloud control system","api_version":"1.0.0"}`, w.Body.String())
	assert.Less(t, strings.Index(w.Body.String(), "welcome_msg"), strings.Index(w.Body.String(), "api_version"))

	w = do(t, g, http.MethodGet, "/api/config/api_version", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"key":"api_version","value":"1.0.0"}`, w.Body.String())

	w = do(t, g, http.MethodGet, "/api/config/missing", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Key not found", message(t, w))
}

func TestConfigs_AdminPutListDelete(t *testing.T) {
	g, _ := newConfigRouter(t)

	w := do(t, g, http.MethodPost, "/admin/api/configs", `{"key":"feature","value":{"on":true,"n":[1,2]}}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Success","data":{"key":"feature","value":{"on":true,"n":[1,2]}}}`, w.Body.String())

	// overwrite keeps position
	w = do(t, g, http.MethodPost, "/admin/api/configs", `{"key":"welcome_msg","value":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, g, http.MethodGet, "/admin/api/configs", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[
		{"key":"welcome_msg","value":"hi"},
		{"key":"api_version","value":"1.0.0"},
		{"key":"feature","value":{"on":true,"n":[1,2]}}
	]`, w.Body.String())

	w = do(t, g, http.MethodDelete, "/admin/api/configs/feature", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Deleted successfully", message(t, w))

	w = do(t, g, http.MethodDelete, "/admin/api/configs/feature", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Key not found", message(t, w))

	w = do(t, g, http.MethodGet, "/api/config/feature", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfigs_PutValidation(t *testing.T) {
	g, b := newConfigRouter(t)
	// force the seed write
	require.Equal(t, http.StatusOK, do(t, g, http.MethodGet, "/api/configs", "").Code)
	writes := b.Writes()

	for _, body := range []string{`{"value":1}`, `{"key":"","value":1}`} {
		w := do(t, g, http.MethodPost, "/admin/api/configs", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "Key is required", message(t, w))
	}
	w := do(t, g, http.MethodPost, "/admin/api/configs", `{"key":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, message(t, w))
	require.Equal(t, writes, b.Writes())

	// missing value is stored as null
	w = do(t, g, http.MethodPost, "/admin/api/configs", `{"key":"empty"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"Success","data":{"key":"empty","value":null}}`, w.Body.String())
	w = do(t, g, http.MethodGet, "/api/config/empty", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"key":"empty","value":null}`, w.Body.String())
}

func TestConfigs_StorageErrors(t *testing.T) {
	g, b := newConfigRouter(t)
	require.Equal(t, http.StatusOK, do(t, g, http.MethodGet, "/api/configs", "").Code)

	b.FailWrites(errors.New("disk full"))
	w := do(t, g, http.MethodPost, "/admin/api/configs", `{"key":"k","value":1}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Internal server error", message(t, w))
	w = do(t, g, http.MethodGet, "/api/config/k", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	b.FailWrites(nil)
	require.NoError(t, b.Write(context.Background(), []byte("{not json")))
	for _, path := range []string{"/api/configs", "/api/config/welcome_msg", "/admin/api/configs"} {
		w = do(t, g, http.MethodGet, path, "")
		require.Equal(t, http.StatusInternalServerError, w.Code, path)
		require.Equal(t, "Internal server error", message(t, w))
	}
}

func TestConfigs_AdminRequiresToken(t *testing.T) {
	const secret = "handler-test-secret-32-bytes-xxxxxx"
	ver, err := adminauth.NewHS256Verifier(secret)
	require.NoError(t, err)
	g, _ := newConfigRouter(t, middleware.AuthMiddleware(ver))

	require.Equal(t, http.StatusUnauthorized, do(t, g, http.MethodGet, "/admin/api/configs", "").Code)
	require.Equal(t, http.StatusUnauthorized, do(t, g, http.MethodPost, "/admin/api/configs", `{"key":"k","value":1}`, "Authorization", "Bearer junk").Code)

	tok, err := adminauth.Issue(secret, "ops", time.Minute)
	require.NoError(t, err)
	w := do(t, g, http.MethodPost, "/admin/api/configs", `{"key":"k","value":1}`, "Authorization", "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)

	// client routes stay open
	w = do(t, g, http.MethodGet, "/api/config/k", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"key":"k","value":1}`, w.Body.String())
}
