package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/leorespaldo2004/E-Comerce-PG/internal/config"
	"github.com/leorespaldo2004/E-Comerce-PG/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"golang.org/x/oauth2"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleUserInfo est la réponse userinfo de Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// ExchangeGoogleCode échange manuellement un code d'autorisation Google
// contre un JWT. C'est le chemin des clients hors navigateur (mobile, CLI) :
// ils obtiennent le code eux-mêmes puis le postent ici, sans cookie.
// POST /api/v1/auth/google/exchange
func ExchangeGoogleCode(c *gin.Context) {
	var input struct {
		Code        string `json:"code"`
		RedirectURI string `json:"redirect_uri"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'code' est obligatoire"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	cfg := config.GoogleOAuthConfig()
	if input.RedirectURI != "" {
		cfg.RedirectURL = input.RedirectURI
	}

	token, err := cfg.Exchange(ctx, input.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Échange du code refusé par Google"})
		return
	}

	info, err := fetchGoogleUserInfo(ctx, cfg, token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération du profil Google"})
		return
	}

	user, err := upsertSocialUser(ctx, "google", goth.User{
		UserID:       info.ID,
		Email:        info.Email,
		Name:         info.Name,
		FirstName:    info.GivenName,
		LastName:     info.FamilyName,
		AvatarURL:    info.Picture,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement utilisateur"})
		return
	}

	jwtToken, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  jwtToken,
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

func fetchGoogleUserInfo(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (*googleUserInfo, error) {
	resp, err := cfg.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo: statut %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, fmt.Errorf("userinfo: profil sans identifiant")
	}
	return &info, nil
}
