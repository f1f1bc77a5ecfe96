package handlers

import (
	"strconv"
	"strings"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"
)

const PageSize = 12

// ProductCard est le modèle de vue d'une carte produit du catalogue.
type ProductCard struct {
	ID         string
	Name       string
	PriceFmt   string
	Image      string
	IsNew      bool
	Tags       []string
	IsFavorite bool
}

// Pagination est le contexte passé aux templates pour la barre de pages.
// Q est conservé pour que les liens de pagination gardent la recherche
// (ex: /?page=2&q=nike).
type Pagination struct {
	CurrentPage int
	TotalPages  int
	HasNext     bool
	HasPrev     bool
	NextPage    int
	PrevPage    int
	Q           string
}

// BuildPagination calcule le contexte de pagination pour un total donné.
func BuildPagination(page int, total int64, q string) Pagination {
	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
		NextPage:    page + 1,
		PrevPage:    page - 1,
		Q:           q,
	}
}

// FormatPrice formate un prix entier façon boutique : $70.000
func FormatPrice(price int64) string {
	s := strconv.FormatInt(price, 10)

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}

	out := "$" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// ResolveImageURL normalise une référence d'image pour l'affichage :
// placeholder si vide, préfixe /static/uploads/ pour les noms de fichiers nus
// (données héritées), URLs absolues et chemins laissés tels quels.
func ResolveImageURL(img string) string {
	if img == "" {
		return "/static/images/placeholder.svg"
	}
	if strings.HasPrefix(img, "http") || strings.HasPrefix(img, "/") {
		return img
	}
	return "/static/uploads/" + img
}

// NewProductCard construit la carte d'un produit pour l'utilisateur courant.
func NewProductCard(p models.Product, user *models.User) ProductCard {
	id := p.ID.Hex()

	name := p.Name
	if name == "" {
		name = "Producto Sin Nombre"
	}

	return ProductCard{
		ID:         id,
		Name:       name,
		PriceFmt:   FormatPrice(p.Price),
		Image:      ResolveImageURL(p.Cover()),
		IsNew:      p.IsNew,
		Tags:       p.Tags,
		IsFavorite: user.HasFavorite(id),
	}
}
