package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GoogleID      string             `bson:"google_id,omitempty" json:"-"`
	Email         string             `bson:"email" json:"email"`
	EmailVerified bool               `bson:"email_verified,omitempty" json:"-"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	GivenName     string             `bson:"given_name,omitempty" json:"given_name,omitempty"`
	FamilyName    string             `bson:"family_name,omitempty" json:"family_name,omitempty"`
	Picture       string             `bson:"picture,omitempty" json:"picture,omitempty"`
	Locale        string             `bson:"locale,omitempty" json:"-"`
	Password      string             `bson:"password,omitempty" json:"-"`
	Provider      string             `bson:"provider,omitempty" json:"provider,omitempty"`
	Role          string             `bson:"role" json:"role"`
	Favorites     []string           `bson:"favorites,omitempty" json:"favorites"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"-"`
	UpdatedAt     time.Time          `bson:"updated_at,omitempty" json:"-"`
	LastLoginAt   time.Time          `bson:"last_login_at,omitempty" json:"-"`
}

// IsAdmin indique si l'utilisateur a accès à la gestion du catalogue.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// HasFavorite indique si le produit est dans les favoris de l'utilisateur.
func (u *User) HasFavorite(productID string) bool {
	if u == nil {
		return false
	}
	for _, id := range u.Favorites {
		if id == productID {
			return true
		}
	}
	return false
}
