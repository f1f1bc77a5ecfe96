package user

import (
	"net/http"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/cache"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UpdateMe met à jour les champs éditables du profil (name, picture).
// PATCH /api/v1/users/me
func UpdateMe(c *gin.Context) {
	userID := c.GetString("user_id")

	var payload struct {
		Name    *string `json:"name"`
		Picture *string `json:"picture"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload JSON invalide"})
		return
	}

	updates := bson.M{}
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Picture != nil {
		updates["picture"] = *payload.Picture
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun champ modifiable fourni"})
		return
	}
	updates["updated_at"] = time.Now()

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}

	ctx := c.Request.Context()
	var updated models.User
	err = database.Users().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": updates},
	).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour utilisateur"})
		return
	}

	cache.InvalidateUserCache(ctx, userID)

	// FindOneAndUpdate renvoie le document d'avant modification ; on reflète
	// les champs mis à jour dans la réponse.
	if payload.Name != nil {
		updated.Name = *payload.Name
	}
	if payload.Picture != nil {
		updated.Picture = *payload.Picture
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": updated})
}

// UploadAvatar téléverse une photo de profil vers MinIO et met à jour
// user.picture. POST /api/v1/users/avatar
func UploadAvatar(c *gin.Context) {
	userID := c.GetString("user_id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu"})
		return
	}

	ctx := c.Request.Context()
	url, err := services.UploadImage(ctx, "avatars/"+userID, fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload avatar", "details": err.Error()})
		return
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}

	_, err = database.Users().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"picture": url, "updated_at": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour photo"})
		return
	}

	cache.InvalidateUserCache(ctx, userID)

	// Soumission depuis un formulaire navigateur → retour à la page d'origine
	if referer := c.GetHeader("Referer"); referer != "" {
		c.Redirect(http.StatusFound, referer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "picture": url})
}
