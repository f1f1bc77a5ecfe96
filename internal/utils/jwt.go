package utils

import (
	"os"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT émet un token pour les clients API (le web utilise le cookie
// de session).
func GenerateJWT(user models.User) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "super_secret"
	}

	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
