package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/handlers/product"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/middleware"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// render injecte l'utilisateur courant dans le contexte de chaque template.
func render(c *gin.Context, template string, ctx gin.H) {
	ctx["current_user"] = middleware.CurrentUser(c)
	if _, ok := ctx["q"]; !ok {
		ctx["q"] = ""
	}
	c.HTML(http.StatusOK, template, ctx)
}

// Index rend la page d'accueil : catalogue paginé, avec recherche via ?q=.
func Index(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	q := strings.TrimSpace(c.Query("q"))
	filter := product.BuildSearchFilter(q)

	total, err := database.Products().CountDocuments(ctx, filter)
	if err != nil {
		log.Println("❌ Erreur comptage produits:", err)
		total = 0
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetSkip(int64((page - 1) * PageSize)).
		SetLimit(PageSize)

	var products []models.Product
	cursor, err := database.Products().Find(ctx, filter, opts)
	if err == nil {
		if err := cursor.All(ctx, &products); err != nil {
			log.Println("❌ Erreur lecture produits:", err)
		}
	}

	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, NewProductCard(p, user))
	}

	title := "Catálogo Exclusivo"
	if q != "" {
		title = fmt.Sprintf("Resultados para '%s'", q)
	}

	render(c, "index.html", gin.H{
		"products":   cards,
		"page_title": title,
		"pagination": BuildPagination(page, total, q),
		"q":          q,
	})
}

// ProductDetail rend la fiche produit. Produit introuvable → le template
// affiche son état vide (comportement public, pas de 404 brute).
func ProductDetail(c *gin.Context) {
	ctx := c.Request.Context()

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Param("id")))
	if err != nil {
		render(c, "product_details.html", gin.H{"product": nil})
		return
	}

	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		render(c, "product_details.html", gin.H{"product": nil})
		return
	}

	user := middleware.CurrentUser(c)
	gallery := p.Gallery()
	for i := range gallery {
		gallery[i] = ResolveImageURL(gallery[i])
	}

	render(c, "product_details.html", gin.H{
		"product": gin.H{
			"ID":          p.ID.Hex(),
			"Name":        p.Name,
			"Description": p.Description,
			"PriceFmt":    FormatPrice(p.Price),
			"Image":       ResolveImageURL(p.Cover()),
			"Images":      gallery,
			"Tags":        p.Tags,
			"IsFavorite":  user.HasFavorite(p.ID.Hex()),
		},
	})
}

// FavoritesPage liste les produits favoris de l'utilisateur connecté.
// Les ids qui ne résolvent plus vers un produit sont ignorés silencieusement.
func FavoritesPage(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	var ids []primitive.ObjectID
	for _, fav := range user.Favorites {
		if oid, err := primitive.ObjectIDFromHex(fav); err == nil {
			ids = append(ids, oid)
		}
	}

	var products []models.Product
	if len(ids) > 0 {
		opts := options.Find().SetSort(bson.M{"created_at": -1})
		cursor, err := database.Products().Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
		if err == nil {
			if err := cursor.All(ctx, &products); err != nil {
				log.Println("❌ Erreur lecture favoris:", err)
			}
		}
	}

	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, NewProductCard(p, user))
	}

	render(c, "favorites.html", gin.H{
		"products":   cards,
		"page_title": "Mis Favoritos",
	})
}

// LoginPage rend la page de connexion (déjà connecté → accueil).
func LoginPage(c *gin.Context) {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, "login.html", gin.H{})
}

// LoginSuccess est la cible de redirection après le callback OAuth.
func LoginSuccess(c *gin.Context) {
	render(c, "login_success.html", gin.H{})
}

// ProfilePage rend le profil (route protégée par LoginRequired).
func ProfilePage(c *gin.Context) {
	render(c, "profile.html", gin.H{"page_title": "Mi Perfil"})
}

// Logout supprime la session côté serveur (best-effort) et efface le cookie.
func Logout(c *gin.Context) {
	if sid, err := c.Cookie(middleware.SessionCookieName); err == nil && sid != "" {
		if _, err := database.Sessions().DeleteOne(c.Request.Context(), bson.M{"_id": sid}); err != nil {
			log.Println("⚠️ Erreur suppression session:", err)
		}
		c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	}
	c.Redirect(http.StatusFound, "/")
}

// ================== PAGES ADMIN ==================

// ManageCatalog rend la vue d'administration du catalogue.
func ManageCatalog(c *gin.Context) {
	ctx := c.Request.Context()

	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(100)
	var products []models.Product
	cursor, err := database.Products().Find(ctx, bson.M{}, opts)
	if err == nil {
		if err := cursor.All(ctx, &products); err != nil {
			log.Println("❌ Erreur lecture catalogue admin:", err)
		}
	}

	user := middleware.CurrentUser(c)
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, NewProductCard(p, user))
	}

	render(c, "catalog_edit.html", gin.H{"products": cards})
}

// ProductNewForm rend le formulaire de création.
func ProductNewForm(c *gin.Context) {
	render(c, "products_edits.html", gin.H{"product": nil})
}

// ProductEditForm rend le formulaire d'édition pré-rempli.
func ProductEditForm(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "Product not found")
		return
	}

	var p models.Product
	if err := database.Products().FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&p); err != nil {
		c.String(http.StatusNotFound, "Product not found")
		return
	}

	render(c, "products_edits.html", gin.H{
		"product": gin.H{
			"ID":          p.ID.Hex(),
			"Name":        p.Name,
			"Description": p.Description,
			"Price":       p.Price,
			"Tags":        strings.Join(p.Tags, ", "),
			"Images":      p.Gallery(),
		},
	})
}
