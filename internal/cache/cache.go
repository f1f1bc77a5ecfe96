package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserCacheTTL    = 5 * time.Minute
	ProductCacheTTL = 10 * time.Minute
)

// GetUserFromCache récupère un utilisateur depuis Redis ou MongoDB.
// Appelé à chaque requête par le middleware de session : le cache évite
// un aller-retour Mongo par page vue.
func GetUserFromCache(ctx context.Context, userID string) (*models.User, error) {
	key := "user:" + userID

	// 1. Essayer le cache Redis
	data, err := database.RedisClient.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Récupérer de MongoDB
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	if jsonData, err := json.Marshal(user); err == nil {
		database.RedisClient.Set(ctx, key, jsonData, UserCacheTTL)
	}

	return &user, nil
}

// InvalidateUserCache invalide le cache d'un utilisateur (toggle favori,
// mise à jour du profil, changement de rôle).
func InvalidateUserCache(ctx context.Context, userID string) {
	database.RedisClient.Del(ctx, "user:"+userID)
}

// GetProductFromCache récupère un produit depuis Redis ou MongoDB.
func GetProductFromCache(ctx context.Context, productID string) (*models.Product, error) {
	key := "product:" + productID

	data, err := database.RedisClient.Get(ctx, key).Result()
	if err == nil {
		var p models.Product
		if json.Unmarshal([]byte(data), &p) == nil {
			return &p, nil
		}
	}

	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, err
	}

	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		return nil, err
	}

	if jsonData, err := json.Marshal(p); err == nil {
		database.RedisClient.Set(ctx, key, jsonData, ProductCacheTTL)
	}

	return &p, nil
}

// InvalidateProductCache invalide le cache d'un produit et la liste globale.
func InvalidateProductCache(ctx context.Context, productID string) {
	database.RedisClient.Del(ctx, "product:"+productID, "products:all")
}
