package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Slug is unique across the collection.
type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	BasePrice   float64            `json:"basePrice" bson:"basePrice"`
	Currency    string             `json:"currency" bson:"currency"`
	Images      []string           `json:"img" bson:"img"`
	Slug        string             `json:"slug" bson:"slug"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
