package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthRequiredWithoutCredentials(t *testing.T) {
	r := gin.New()
	r.GET("/p", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredWithValidBearer(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	var gotUserID, gotRole string
	r := gin.New()
	r.GET("/p", AuthRequired(), func(c *gin.Context) {
		gotUserID = c.GetString("user_id")
		gotRole = c.GetString("role")
		c.Status(http.StatusOK)
	})

	token := signToken(t, "test_secret", jwt.MapClaims{
		"user_id": "abc123",
		"email":   "user@puntog.shop",
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", gotUserID)
	assert.Equal(t, "user", gotRole)
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")

	r := gin.New()
	r.GET("/p", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signToken(t, "test_secret", jwt.MapClaims{
		"user_id": "abc123",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectsBadScheme(t *testing.T) {
	r := gin.New()
	r.GET("/p", AuthRequired(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	req.Header.Set("Authorization", "Basic abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredSkipsJWTWhenSessionResolved(t *testing.T) {
	r := gin.New()
	r.GET("/p",
		func(c *gin.Context) { c.Set("user_id", "sess-user") },
		AuthRequired(),
		func(c *gin.Context) { c.String(http.StatusOK, c.GetString("user_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-user", w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name string
		role string
		want int
	}{
		{"admin autorisé", "admin", http.StatusOK},
		{"user refusé", "user", http.StatusForbidden},
		{"anonyme refusé", "", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/p",
				func(c *gin.Context) {
					if tc.role != "" {
						c.Set("role", tc.role)
					}
				},
				RequireAdmin,
				func(c *gin.Context) { c.Status(http.StatusOK) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))

			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRequireAdminPageRedirectsNonAdmins(t *testing.T) {
	r := gin.New()
	r.GET("/manage",
		func(c *gin.Context) { c.Set("current_user", &models.User{Role: "user"}) },
		RequireAdminPage,
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireAdminPageAllowsAdmin(t *testing.T) {
	r := gin.New()
	r.GET("/manage",
		func(c *gin.Context) { c.Set("current_user", &models.User{Role: "admin"}) },
		RequireAdminPage,
		func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRequiredRedirectsAnonymous(t *testing.T) {
	r := gin.New()
	r.GET("/favorites", LoginRequired, func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/favorites", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
