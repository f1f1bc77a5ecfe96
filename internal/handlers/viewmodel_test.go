package handlers

import (
	"testing"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price int64
		want  string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1.000"},
		{70000, "$70.000"},
		{1234567, "$1.234.567"},
		{-70000, "-$70.000"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatPrice(tc.price))
	}
}

func TestBuildPagination(t *testing.T) {
	// 30 produits → 3 pages de 12
	p := BuildPagination(2, 30, "nike")

	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)
	assert.Equal(t, 1, p.PrevPage)
	assert.Equal(t, 3, p.NextPage)
	assert.Equal(t, "nike", p.Q)
}

func TestBuildPaginationBounds(t *testing.T) {
	first := BuildPagination(1, 30, "")
	assert.False(t, first.HasPrev)
	assert.True(t, first.HasNext)

	last := BuildPagination(3, 30, "")
	assert.True(t, last.HasPrev)
	assert.False(t, last.HasNext)

	empty := BuildPagination(1, 0, "")
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)

	exact := BuildPagination(1, 12, "")
	assert.Equal(t, 1, exact.TotalPages)
}

func TestResolveImageURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "/static/images/placeholder.svg"},
		{"https://cdn.example.com/x.jpg", "https://cdn.example.com/x.jpg"},
		{"http://minio:9000/store/x.jpg", "http://minio:9000/store/x.jpg"},
		{"/static/uploads/x.jpg", "/static/uploads/x.jpg"},
		{"remera.jpg", "/static/uploads/remera.jpg"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveImageURL(tc.in))
	}
}

func TestNewProductCardDefaults(t *testing.T) {
	p := models.Product{ID: primitive.NewObjectID(), Price: 70000}

	card := NewProductCard(p, nil)

	assert.Equal(t, "Producto Sin Nombre", card.Name)
	assert.Equal(t, "$70.000", card.PriceFmt)
	assert.Equal(t, "/static/images/placeholder.svg", card.Image)
	assert.False(t, card.IsFavorite)
}

func TestNewProductCardFavoriteState(t *testing.T) {
	p := models.Product{ID: primitive.NewObjectID(), Name: "Remera"}
	user := &models.User{Favorites: []string{p.ID.Hex()}}

	assert.True(t, NewProductCard(p, user).IsFavorite)
	assert.False(t, NewProductCard(p, &models.User{}).IsFavorite)
}
