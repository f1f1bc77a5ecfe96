package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	LoginMaxAttempts = 5
	APIMaxRequests   = 100 // par minute et par IP

	LoginCooldown = 15 * time.Minute
	APICooldown   = 1 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion locale par email.
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := c.Request.Context()
		key := "login_attempts:" + input.Email
		cooldownKey := "login_cooldown:" + input.Email

		if database.RedisClient.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.RedisClient.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts, _ := database.RedisClient.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			database.RedisClient.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.RedisClient.Del(ctx, key)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Compte bloqué pendant %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// Échec → incrémenter, succès → réinitialiser
		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			database.RedisClient.Incr(ctx, key)
			database.RedisClient.Expire(ctx, key, LoginCooldown)
		case http.StatusOK:
			database.RedisClient.Del(ctx, key)
			database.RedisClient.Del(ctx, cooldownKey)
		}
	}
}

// APIRateLimit limite le nombre de requêtes API par IP.
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "api_requests:" + c.ClientIP()

		count, err := database.RedisClient.Incr(ctx, key).Result()
		if err != nil {
			// Redis indisponible : on laisse passer plutôt que de bloquer le site
			c.Next()
			return
		}
		if count == 1 {
			database.RedisClient.Expire(ctx, key, APICooldown)
		}

		if count > APIMaxRequests {
			ttl := database.RedisClient.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de requêtes, ralentissez",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
