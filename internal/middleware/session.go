package middleware

import (
	"log"
	"net/http"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/cache"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const SessionCookieName = "session_id"

// ResolveSession résout le cookie session_id vers un utilisateur et le place
// dans le contexte Gin. Ne bloque jamais : sans session valide, la requête
// continue en anonyme (les pages publiques restent accessibles).
func ResolveSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookieName)
		if err != nil || sid == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		var sess models.Session
		if err := database.Sessions().FindOne(ctx, bson.M{"_id": sid}).Decode(&sess); err != nil {
			c.Next()
			return
		}

		// Session expirée : suppression paresseuse au premier accès
		if sess.Expired() {
			if _, err := database.Sessions().DeleteOne(ctx, bson.M{"_id": sid}); err != nil {
				log.Println("⚠️ Erreur suppression session expirée:", err)
			}
			c.Next()
			return
		}

		user, err := cache.GetUserFromCache(ctx, sess.UserID)
		if err != nil {
			c.Next()
			return
		}

		c.Set("current_user", user)
		c.Set("user_id", user.ID.Hex())
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Next()
	}
}

// CurrentUser extrait l'utilisateur du contexte (nil si anonyme).
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get("current_user"); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// LoginRequired redirige les anonymes vers /login (pages SSR uniquement).
func LoginRequired(c *gin.Context) {
	if CurrentUser(c) == nil {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}
	c.Next()
}
