package product

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// BuildSearchFilter construit le filtre Mongo de recherche partielle sur le
// nom, la description et les tags (insensible à la casse, regex échappée).
func BuildSearchFilter(query string) bson.M {
	if query == "" {
		return bson.M{}
	}

	regex := bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}

	return bson.M{
		"$or": []bson.M{
			{"name": regex},
			{"description": regex},
			{"tags": regex},
		},
	}
}
