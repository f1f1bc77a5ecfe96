package models

import "time"

// Session est le document de session côté serveur référencé par le cookie
// session_id. L'_id est un uuid (pas un ObjectID).
type Session struct {
	ID        string            `bson:"_id" json:"id"`
	UserID    string            `bson:"user_id" json:"user_id"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time         `bson:"expires_at" json:"expires_at"`
	Meta      map[string]string `bson:"meta,omitempty" json:"-"`
}

// Expired indique si la session a dépassé sa durée de vie.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(time.Now())
}
