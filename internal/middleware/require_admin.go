package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin" (API → 403).
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireAdminPage est la variante SSR : redirige vers l'accueil au lieu
// de renvoyer du JSON.
func RequireAdminPage(c *gin.Context) {
	user := CurrentUser(c)
	if !user.IsAdmin() {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}
