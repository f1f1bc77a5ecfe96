package handlers

import (
	"html/template"
	"strings"
	"testing"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTemplates(t *testing.T) *template.Template {
	t.Helper()
	tmpl, err := template.ParseGlob("../../templates/*.html")
	require.NoError(t, err)
	return tmpl
}

func renderIndex(t *testing.T, user *models.User, cards []ProductCard, pag Pagination, q string) string {
	t.Helper()
	var sb strings.Builder
	err := parseTemplates(t).ExecuteTemplate(&sb, "index.html", gin.H{
		"current_user": user,
		"products":     cards,
		"page_title":   "Catálogo Exclusivo",
		"pagination":   pag,
		"q":            q,
	})
	require.NoError(t, err)
	return sb.String()
}

func TestAdminLinkOnlyForAdmins(t *testing.T) {
	pag := BuildPagination(1, 0, "")

	anon := renderIndex(t, nil, nil, pag, "")
	assert.NotContains(t, anon, "Administrar Catálogo")
	assert.Contains(t, anon, "Iniciar Sesión")

	regular := renderIndex(t, &models.User{Name: "Ana", Role: "user"}, nil, pag, "")
	assert.NotContains(t, regular, "Administrar Catálogo")
	assert.Contains(t, regular, "Cerrar Sesión")

	admin := renderIndex(t, &models.User{Name: "Ana", Role: "admin"}, nil, pag, "")
	assert.Contains(t, admin, "Administrar Catálogo")
	assert.Contains(t, admin, `href="/manage/catalog"`)
}

func TestPaginationLinksKeepQuery(t *testing.T) {
	html := renderIndex(t, nil, nil, BuildPagination(2, 40, "nike"), "nike")

	assert.Contains(t, html, `href="/?page=1&q=nike"`)
	assert.Contains(t, html, `href="/?page=3&q=nike"`)
	assert.Contains(t, html, "Página 2 de 4")
}

func TestProductCardFavoriteState(t *testing.T) {
	cards := []ProductCard{
		{ID: "p1", Name: "Remera", PriceFmt: "$70.000", Image: "/static/images/placeholder.svg", IsFavorite: true},
		{ID: "p2", Name: "Gorra", PriceFmt: "$15.000", Image: "/static/images/placeholder.svg"},
	}

	html := renderIndex(t, &models.User{Role: "user"}, cards, BuildPagination(1, 2, ""), "")

	assert.Contains(t, html, `data-product-id="p1"`)
	assert.Contains(t, html, `data-favorite="true"`)
	assert.Contains(t, html, `data-favorite="false"`)
	assert.Contains(t, html, "$70.000")
}

func TestProductDetailEmptyState(t *testing.T) {
	var sb strings.Builder
	err := parseTemplates(t).ExecuteTemplate(&sb, "product_details.html", gin.H{
		"current_user": (*models.User)(nil),
		"product":      nil,
		"q":            "",
	})
	require.NoError(t, err)

	assert.Contains(t, sb.String(), "Producto no encontrado")
}
