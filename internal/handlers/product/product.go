package product

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/cache"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/services"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAllProducts liste les produits (API JSON), avec cache Redis.
func GetAllProducts(c *gin.Context) {
	ctx := c.Request.Context()
	cacheKey := "products:all"

	// ✅ Vérifie le cache Redis
	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, gin.H{"items": cached})
			return
		}
	}

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := database.Products().Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// ✅ Met en cache (uniquement la liste complète)
	if c.Query("limit") == "" {
		if data, err := json.Marshal(products); err == nil {
			database.RedisClient.Set(ctx, cacheKey, data, time.Hour)
		}
	}

	c.JSON(http.StatusOK, gin.H{"items": products})
}

// GetProduct renvoie un produit par id (passe par le cache produit).
func GetProduct(c *gin.Context) {
	p, err := cache.GetProductFromCache(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// SearchProducts recherche via Elasticsearch, avec fallback Mongo regex.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 1️⃣ Recherche Elasticsearch (prioritaire)
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, gin.H{"items": results})
		return
	}

	// 2️⃣ Fallback Mongo si l'index est vide ou indisponible
	ctx := c.Request.Context()
	cursor, err := database.Products().Find(ctx, BuildSearchFilter(query))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche MongoDB"})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": products})
}

// ProductQR renvoie un PNG QR pointant vers la fiche produit publique.
func ProductQR(c *gin.Context) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	png, err := utils.GenerateProductQR(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// ================== ACTIONS ADMIN (formulaires multipart) ==================

// CreateProduct crée un produit depuis le formulaire admin (titre, prix,
// tags CSV, fichiers images → MinIO).
func CreateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'title' est obligatoire"})
		return
	}

	tags := utils.ParseTags(c.PostForm("tags"))

	category := "General"
	if len(tags) > 0 {
		category = tags[0]
	}

	// Upload des images vers MinIO
	var saved []string
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["image_files"] {
			url, err := services.UploadImage(ctx, "products", fh)
			if err != nil {
				log.Println("⚠️ Erreur upload image:", err)
				continue
			}
			saved = append(saved, url)
		}
	}

	cover := ""
	if len(saved) > 0 {
		cover = saved[0]
	}

	now := time.Now()
	p := models.Product{
		ID:          primitive.NewObjectID(),
		Name:        title,
		Description: c.PostForm("description"),
		Price:       utils.ParsePrice(c.DefaultPostForm("price", "0")),
		Tags:        tags,
		Category:    category,
		Image:       cover,
		Images:      saved,
		IsNew:       true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := database.Products().InsertOne(ctx, p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	// 🔄 Indexation Elasticsearch + invalidation du cache liste
	go services.IndexProduct(p)
	cache.InvalidateProductCache(ctx, p.ID.Hex())

	c.JSON(http.StatusCreated, gin.H{"status": "created", "id": p.ID.Hex()})
}

// UpdateProduct met à jour un produit : la galerie finale est composée des
// images conservées (kept_images) puis des nouveaux uploads, dédupliquée,
// la première devenant la couverture.
func UpdateProduct(c *gin.Context) {
	ctx := c.Request.Context()

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'title' est obligatoire"})
		return
	}

	tags := utils.ParseTags(c.PostForm("tags"))

	category := "General"
	if len(tags) > 0 {
		category = tags[0]
	}

	var kept, uploaded []string
	if form, err := c.MultipartForm(); err == nil {
		kept = form.Value["kept_images"]
		for _, fh := range form.File["image_files"] {
			url, err := services.UploadImage(ctx, "products", fh)
			if err != nil {
				log.Println("⚠️ Erreur upload image:", err)
				continue
			}
			uploaded = append(uploaded, url)
		}
	}

	gallery := mergeGallery(kept, uploaded)

	cover := ""
	if len(gallery) > 0 {
		cover = gallery[0]
	}

	update := bson.M{"$set": bson.M{
		"name":        title,
		"description": c.PostForm("description"),
		"price":       utils.ParsePrice(c.DefaultPostForm("price", "0")),
		"tags":        tags,
		"category":    category,
		"image":       cover,
		"images":      gallery,
		"updated_at":  time.Now(),
	}}

	res, err := database.Products().UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// 🔄 Ré-indexation + invalidation du cache
	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err == nil {
		go services.IndexProduct(p)
	}
	cache.InvalidateProductCache(ctx, oid.Hex())

	c.JSON(http.StatusOK, gin.H{"status": "updated", "modified": res.ModifiedCount, "matched": true})
}

// DeleteProduct supprime un produit depuis le formulaire admin, puis
// redirige vers la gestion catalogue.
func DeleteProduct(c *gin.Context) {
	if removeProduct(c) {
		c.Redirect(http.StatusSeeOther, "/manage/catalog")
	}
}

// DeleteProductAPI est la variante JSON pour les clients API.
// DELETE /api/v1/products/:id
func DeleteProductAPI(c *gin.Context) {
	if removeProduct(c) {
		c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": c.Param("id")})
	}
}

// removeProduct effectue la suppression (Mongo + index ES + cache) et écrit
// lui-même la réponse d'erreur le cas échéant.
func removeProduct(c *gin.Context) bool {
	ctx := c.Request.Context()

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return false
	}

	if _, err := database.Products().DeleteOne(ctx, bson.M{"_id": oid}); err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return false
	}

	go services.DeleteProductIndex(oid.Hex())
	cache.InvalidateProductCache(ctx, oid.Hex())

	log.Printf("🗑️ Produit %s supprimé", oid.Hex())
	return true
}

// mergeGallery fusionne images conservées et nouvelles en préservant
// l'ordre, sans doublon.
func mergeGallery(kept, uploaded []string) []string {
	seen := make(map[string]bool)
	var gallery []string
	for _, img := range append(append([]string{}, kept...), uploaded...) {
		if img == "" || seen[img] {
			continue
		}
		gallery = append(gallery, img)
		seen[img] = true
	}
	return gallery
}
