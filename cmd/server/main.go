package main

import (
	"log"
	"net/http"
	"os"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/config"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

// initOAuthProviders configure goth avec les providers sociaux supportés.
func initOAuthProviders() {
	key := os.Getenv("SESSION_SECRET")
	if key == "" {
		key = "super_secret"
	}

	store := sessions.NewCookieStore([]byte(key))
	store.Options.HttpOnly = true
	store.Options.Secure = os.Getenv("COOKIE_SECURE") == "true"
	gothic.Store = store

	// gothic lit le provider depuis l'URL :provider, pas depuis le path
	gothic.GetProviderName = func(req *http.Request) (string, error) {
		return req.URL.Query().Get("provider"), nil
	}

	cfg := config.GoogleOAuthConfig()
	goth.UseProviders(
		google.New(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL, cfg.Scopes...),
	)
}

func main() {
	config.Load()

	database.ConnectDatabases()
	defer database.CloseMongo()

	initOAuthProviders()

	r := gin.Default()
	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Serveur démarré sur le port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Erreur démarrage serveur:", err)
	}
}
