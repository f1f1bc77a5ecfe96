package product

import (
	"net/http"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductImage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID  primitive.ObjectID `bson:"product_id" json:"product_id"`
	URL        string             `bson:"url" json:"url"`
	FileName   string             `bson:"file_name" json:"file_name"`
	UploadedAt time.Time          `bson:"uploaded_at" json:"uploaded_at"`
	UserID     string             `bson:"user_id" json:"user_id"`
}

// UploadProductImage ajoute une image de galerie à un produit existant
// (upload MinIO + document dans la collection images).
func UploadProductImage(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID de produit invalide"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu"})
		return
	}

	url, err := services.UploadImage(ctx, "products/"+productID.Hex(), fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload MinIO", "details": err.Error()})
		return
	}

	imgDoc := ProductImage{
		ProductID:  productID,
		URL:        url,
		FileName:   fileHeader.Filename,
		UploadedAt: time.Now(),
		UserID:     userID,
	}

	res, err := database.Images().InsertOne(ctx, imgDoc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur insertion MongoDB", "details": err.Error()})
		return
	}
	imgDoc.ID = res.InsertedID.(primitive.ObjectID)

	// La galerie du produit référence aussi l'URL
	_, err = database.Products().UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$addToSet": bson.M{"images": url}, "$set": bson.M{"updated_at": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour galerie"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image uploadée et liée au produit", "image": imgDoc})
}

// GetProductImages liste les images liées à un produit.
func GetProductImages(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var exists bson.M
	if err := database.Products().FindOne(ctx, bson.M{"_id": productID}).Decode(&exists); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification produit"})
		return
	}

	cursor, err := database.Images().Find(ctx, bson.M{"product_id": productID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture MongoDB"})
		return
	}
	defer cursor.Close(ctx)

	results := []ProductImage{}
	if err := cursor.All(ctx, &results); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": results})
}

// DeleteProductImage retire une image de la galerie et de la collection.
func DeleteProductImage(c *gin.Context) {
	ctx := c.Request.Context()

	imgID, err := primitive.ObjectIDFromHex(c.Param("image_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID d'image invalide"})
		return
	}

	var img ProductImage
	if err := database.Images().FindOne(ctx, bson.M{"_id": imgID}).Decode(&img); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image introuvable"})
		return
	}

	if _, err := database.Images().DeleteOne(ctx, bson.M{"_id": imgID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression image"})
		return
	}

	_, _ = database.Products().UpdateOne(ctx,
		bson.M{"_id": img.ProductID},
		bson.M{"$pull": bson.M{"images": img.URL}})

	c.JSON(http.StatusOK, gin.H{"message": "Image supprimée"})
}
