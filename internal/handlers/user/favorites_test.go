package user

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleAddsThenRemoves(t *testing.T) {
	favs, isFav := Toggle(nil, "abc")
	require.True(t, isFav)
	assert.Equal(t, []string{"abc"}, favs)

	favs, isFav = Toggle(favs, "abc")
	require.False(t, isFav)
	assert.Empty(t, favs)
}

func TestToggleTwiceRestoresInitialState(t *testing.T) {
	initial := []string{"p1", "p2", "p3"}

	once, _ := Toggle(initial, "p2")
	twice, isFav := Toggle(once, "p2")

	assert.True(t, isFav)
	assert.ElementsMatch(t, initial, twice)
}

func TestToggleNeverDuplicates(t *testing.T) {
	favs := []string{"p1"}

	for i := 0; i < 5; i++ {
		favs, _ = Toggle(favs, "p2")
	}

	seen := map[string]int{}
	for _, id := range favs {
		seen[id]++
	}
	for id, n := range seen {
		assert.Equalf(t, 1, n, "produit %s dupliqué", id)
	}
}

func TestTogglePreservesOtherFavorites(t *testing.T) {
	favs, _ := Toggle([]string{"p1", "p2", "p3"}, "p1")
	assert.Equal(t, []string{"p2", "p3"}, favs)
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	initial := []string{"p1", "p2", "p3"}

	Toggle(initial, "p2")

	assert.Equal(t, []string{"p1", "p2", "p3"}, initial)
}

// Un anonyme doit recevoir 401 avant tout accès à la base : le handler est
// appelé ici sans aucun backend branché.
func TestToggleFavoriteAnonymousGets401(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/v1/users/favorites/:product_id", ToggleFavorite)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/favorites/abc123", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentification requise")
}

// Un client API avec un Bearer JWT valide doit passer l'authentification du
// toggle au même titre que les sessions web : la requête atteint le handler
// (ici rejetée en 400 sur l'id utilisateur, pas en 401).
func TestToggleFavoriteAcceptsBearerJWT(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test_secret")

	r := gin.New()
	r.POST("/api/v1/users/favorites/:product_id", middleware.AuthRequired(), ToggleFavorite)

	claims := jwt.MapClaims{
		"user_id": "pas-un-objectid",
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test_secret"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/favorites/abc123", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ID utilisateur invalide")
}
