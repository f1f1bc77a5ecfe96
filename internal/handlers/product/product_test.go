package product

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// La variante API répond en JSON, jamais par redirection.
func TestDeleteProductAPIRespondsJSON(t *testing.T) {
	r := gin.New()
	r.DELETE("/api/v1/products/:id", DeleteProductAPI)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/pas-un-objectid", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), "ID produit invalide")
}

func TestDeleteProductFormRejectsBadID(t *testing.T) {
	r := gin.New()
	r.POST("/product/delete/:id", DeleteProduct)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/product/delete/xyz", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestMergeGallery(t *testing.T) {
	kept := []string{"a.jpg", "b.jpg"}
	uploaded := []string{"b.jpg", "c.jpg", ""}

	gallery := mergeGallery(kept, uploaded)

	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, gallery)
	// La première image conservée devient la couverture
	assert.Equal(t, "a.jpg", gallery[0])
}
