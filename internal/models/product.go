package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description"`
	Price       int64              `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image"`
	Images      []string           `bson:"images,omitempty" json:"images"`
	Tags        []string           `bson:"tags,omitempty" json:"tags"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	IsNew       bool               `bson:"is_new,omitempty" json:"is_new"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updated_at"`
}

// Gallery renvoie la liste d'images avec la couverture en tête, sans doublon.
func (p *Product) Gallery() []string {
	seen := make(map[string]bool)
	var gallery []string

	if p.Image != "" {
		gallery = append(gallery, p.Image)
		seen[p.Image] = true
	}
	for _, img := range p.Images {
		if img != "" && !seen[img] {
			gallery = append(gallery, img)
			seen[img] = true
		}
	}
	return gallery
}

// Cover renvoie l'image principale, ou la première de la galerie.
func (p *Product) Cover() string {
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}
