package user

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/database"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/middleware"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/models"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const SessionTTL = 2 * time.Hour

// ================== AUTH SOCIALE (WEB) ==================

// BeginAuth démarre le flux OAuth pour le provider demandé.
// GET /api/v1/auth/:provider
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth termine le flux OAuth : upsert de l'utilisateur, création de
// la session serveur et pose du cookie, puis redirection vers /login/success.
// GET /api/v1/auth/:provider/callback
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	userInfo, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	user, err := upsertSocialUser(ctx, provider, userInfo)
	if err != nil {
		log.Println("❌ Erreur enregistrement utilisateur:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement utilisateur"})
		return
	}

	meta := map[string]string{"access_token": userInfo.AccessToken}
	if userInfo.RefreshToken != "" {
		meta["refresh_token"] = userInfo.RefreshToken
	}

	sid, err := CreateSession(ctx, user.ID.Hex(), meta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création session"})
		return
	}

	setSessionCookie(c, sid)
	c.Redirect(http.StatusFound, "/login/success")
}

// upsertSocialUser crée ou rafraîchit un utilisateur depuis le profil OAuth.
// Le rôle n'est JAMAIS modifié à la connexion : il est assigné une seule
// fois à la création (sinon un admin redescendrait "user" à chaque login).
func upsertSocialUser(ctx context.Context, provider string, info goth.User) (*models.User, error) {
	now := time.Now()

	identity := bson.M{
		"google_id":      info.UserID,
		"email":          info.Email,
		"name":           info.Name,
		"given_name":     info.FirstName,
		"family_name":    info.LastName,
		"picture":        info.AvatarURL,
		"provider":       provider,
		"updated_at":     now,
		"last_login_at":  now,
		"email_verified": true,
	}

	var existing models.User
	err := database.Users().FindOne(ctx, bson.M{"google_id": info.UserID}).Decode(&existing)
	if err == nil {
		if _, err := database.Users().UpdateOne(ctx,
			bson.M{"_id": existing.ID},
			bson.M{"$set": identity}); err != nil {
			return nil, err
		}
		return &existing, nil
	}

	// Nouvel utilisateur : rôle par défaut + mail de bienvenue
	newUser := models.User{
		ID:            primitive.NewObjectID(),
		GoogleID:      info.UserID,
		Email:         info.Email,
		EmailVerified: true,
		Name:          info.Name,
		GivenName:     info.FirstName,
		FamilyName:    info.LastName,
		Picture:       info.AvatarURL,
		Provider:      provider,
		Role:          "user",
		CreatedAt:     now,
		UpdatedAt:     now,
		LastLoginAt:   now,
	}

	if _, err := database.Users().InsertOne(ctx, newUser); err != nil {
		return nil, err
	}

	log.Printf("✅ Nouvel utilisateur %s (%s)", newUser.Email, provider)
	go func(u models.User) {
		if err := utils.SendWelcomeEmail(u); err != nil {
			log.Println("⚠️ Échec envoi mail de bienvenue:", err)
		}
	}(newUser)

	return &newUser, nil
}

// ================== AUTH LOCALE (compte admin) ==================

// Login authentifie un compte local (email + mot de passe bcrypt), pose le
// cookie de session et renvoie un JWT pour les clients API.
// POST /api/v1/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := database.Users().
		FindOne(ctx, bson.M{"email": input.Email, "provider": "local"}).
		Decode(&user)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	sid, err := CreateSession(ctx, user.ID.Hex(), nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création session"})
		return
	}
	setSessionCookie(c, sid)

	token, _ := utils.GenerateJWT(user)
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

// Me renvoie l'utilisateur courant. GET /api/v1/auth/me
func Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user != nil {
		c.JSON(http.StatusOK, gin.H{"user": user})
		return
	}

	// Authentifié par JWT : recharger depuis la base
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	var u models.User
	if err := database.Users().FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&u); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u})
}

// Logout supprime la session et efface le cookie. GET /api/v1/auth/logout
func Logout(c *gin.Context) {
	if sid, err := c.Cookie(middleware.SessionCookieName); err == nil && sid != "" {
		if _, err := database.Sessions().DeleteOne(c.Request.Context(), bson.M{"_id": sid}); err != nil {
			log.Println("⚠️ Erreur suppression session:", err)
		}
	}
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// ================== SESSIONS ==================

// CreateSession crée un document de session (id uuid, TTL 2h) et renvoie
// son identifiant.
func CreateSession(ctx context.Context, userID string, meta map[string]string) (string, error) {
	sid := uuid.NewString()
	now := time.Now()

	sess := models.Session{
		ID:        sid,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
		Meta:      meta,
	}

	if _, err := database.Sessions().InsertOne(ctx, sess); err != nil {
		return "", err
	}
	return sid, nil
}

func setSessionCookie(c *gin.Context, sid string) {
	secure := os.Getenv("COOKIE_SECURE") == "true" || c.Request.URL.Scheme == "https"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, sid, int(SessionTTL.Seconds()), "/", "", secure, true)
}
