package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeToken implements Token
type fakeToken struct {
	data map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	if mm, ok := v.(*map[string]interface{}); ok {
		*mm = t.data
		return nil
	}
	return fmt.Errorf("unsupported claims type")
}

// fakeVerifier implements Verifier
type fakeVerifier struct{}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	if raw == "goodtoken" {
		return &fakeToken{data: map[string]interface{}{"sub": "admin1", "email": "ops@example.com"}}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func authRouter() *gin.Engine {
	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) {
		claims, ok := c.Get(ClaimsKey)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"claims": claims, "sub": subject(c)})
	})
	return g
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cases := map[string]string{
		"no header":     "",
		"no scheme":     "BadHeader",
		"wrong scheme":  "Basic goodtoken",
		"empty token":   "Bearer ",
		"unknown token": "Bearer nope",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rw := httptest.NewRecorder()
			authRouter().ServeHTTP(rw, req)

			require.Equal(t, http.StatusUnauthorized, rw.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &body))
			require.NotEmpty(t, body["message"])
		})
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer goodtoken")
	rw := httptest.NewRecorder()
	authRouter().ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Contains(t, got, "claims")
	require.Equal(t, "admin1", got["sub"])
}
