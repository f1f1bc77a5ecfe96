package user

import (
	"log"
	"net/http"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/cache"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Toggle bascule l'appartenance d'un produit à un ensemble de favoris et
// renvoie le nouvel ensemble avec l'état résultant. Deux bascules successives
// reviennent à l'état initial ; l'ensemble ne contient jamais de doublon.
func Toggle(favorites []string, productID string) ([]string, bool) {
	for i, id := range favorites {
		if id == productID {
			return append(favorites[:i:i], favorites[i+1:]...), false
		}
	}
	return append(favorites, productID), true
}

// ToggleFavorite bascule un produit dans les favoris de l'utilisateur
// authentifié. POST /api/v1/users/favorites/:product_id
func ToggleFavorite(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		// Garde-fou : AuthRequired doit déjà avoir rejeté la requête.
		// Aucune écriture en base n'a lieu pour un anonyme.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentification requise"})
		return
	}

	productID := c.Param("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit manquant"})
		return
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}

	ctx := c.Request.Context()

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	// Bascule idempotente : $pull si présent, $addToSet sinon (jamais de doublon)
	isFavorite := !user.HasFavorite(productID)
	var update bson.M
	if isFavorite {
		update = bson.M{
			"$addToSet": bson.M{"favorites": productID},
			"$set":      bson.M{"updated_at": time.Now()},
		}
	} else {
		update = bson.M{
			"$pull": bson.M{"favorites": productID},
			"$set":  bson.M{"updated_at": time.Now()},
		}
	}

	if _, err := database.Users().UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		log.Println("❌ Erreur toggle favori:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour favoris"})
		return
	}

	cache.InvalidateUserCache(ctx, userID)

	if isFavorite {
		log.Printf("⭐ Produit %s ajouté aux favoris de %s", productID, userID)
	} else {
		log.Printf("🗑️ Produit %s retiré des favoris de %s", productID, userID)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "is_favorite": isFavorite})
}

// GetFavorites renvoie les produits favoris de l'utilisateur (API JSON).
// Les ids orphelins (produit supprimé) sont ignorés.
func GetFavorites(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	user, err := cache.GetUserFromCache(ctx, userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	var ids []primitive.ObjectID
	for _, fav := range user.Favorites {
		if oid, err := primitive.ObjectIDFromHex(fav); err == nil {
			ids = append(ids, oid)
		}
	}

	products := []models.Product{}
	if len(ids) > 0 {
		opts := options.Find().SetSort(bson.M{"created_at": -1})
		cursor, err := database.Products().Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture favoris"})
			return
		}
		if err := cursor.All(ctx, &products); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "items": products})
}
