package routes

import (
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/handlers"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/handlers/product"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/handlers/user"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes câble les pages SSR, les actions d'administration et
// l'API JSON sous /api/v1.
func RegisterRoutes(r *gin.Engine) {
	// La session est résolue sur toutes les routes : les pages publiques
	// adaptent leur rendu à l'utilisateur connecté.
	r.Use(middleware.ResolveSession())

	// ---------- Pages (SSR) ----------
	r.GET("/", handlers.Index)
	r.GET("/product/:id", handlers.ProductDetail)
	r.GET("/favorites", middleware.LoginRequired, handlers.FavoritesPage)
	r.GET("/login", handlers.LoginPage)
	r.GET("/login/success", handlers.LoginSuccess)
	r.GET("/profile", middleware.LoginRequired, handlers.ProfilePage)
	r.GET("/logout", handlers.Logout)

	// ---------- Administration (SSR + formulaires) ----------
	admin := r.Group("/", middleware.RequireAdminPage)
	{
		admin.GET("/manage/catalog", handlers.ManageCatalog)
		admin.GET("/product/new", handlers.ProductNewForm)
		admin.GET("/product/edit/:id", handlers.ProductEditForm)

		admin.POST("/product", product.CreateProduct)
		admin.PUT("/product/:id", product.UpdateProduct)
		admin.POST("/product/delete/:id", product.DeleteProduct)
	}

	// ---------- API ----------
	api := r.Group("/api/v1")
	api.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	api.Use(middleware.APIRateLimit())

	{
		// Produits (lecture publique)
		api.GET("/products", product.GetAllProducts)
		api.GET("/products/search", product.SearchProducts)
		api.GET("/products/:id", product.GetProduct)
		api.GET("/products/:id/qr", product.ProductQR)
		api.GET("/products/:id/images", product.GetProductImages)

		// Produits (écriture admin, JWT ou session)
		adminAPI := api.Group("/", middleware.AuthRequired(), middleware.RequireAdmin)
		{
			adminAPI.POST("/products", product.CreateProduct)
			adminAPI.PUT("/products/:id", product.UpdateProduct)
			adminAPI.DELETE("/products/:id", product.DeleteProductAPI)
			adminAPI.POST("/products/:id/images", product.UploadProductImage)
			adminAPI.DELETE("/products/:id/images/:image_id", product.DeleteProductImage)
		}

		// Utilisateur courant (session web ou Bearer JWT)
		authed := api.Group("/users", middleware.AuthRequired())
		{
			authed.GET("/favorites", user.GetFavorites)
			authed.POST("/favorites/:product_id", user.ToggleFavorite)
			authed.PATCH("/me", user.UpdateMe)
			authed.POST("/avatar", user.UploadAvatar)
		}

		// Authentification
		api.POST("/auth/login", middleware.LoginRateLimit(), user.Login)
		api.POST("/auth/google/exchange", user.ExchangeGoogleCode)
		api.GET("/auth/me", user.Me)
		api.GET("/auth/logout", user.Logout)
		api.GET("/auth/:provider", user.BeginAuth)
		api.GET("/auth/:provider/callback", user.CallbackAuth)
	}
}
