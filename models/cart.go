package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartProduct is one line item inside a cart.
type CartProduct struct {
	Quantity         int     `json:"quantity" bson:"quantity" binding:"required,min=1"`
	PriceID          string  `json:"priceID" bson:"priceID" binding:"required"`
	Name             string  `json:"name" bson:"name" binding:"required"`
	PriceDescription string  `json:"priceDescription,omitempty" bson:"priceDescription,omitempty"`
	Price            float64 `json:"price" bson:"price" binding:"required"`
	Img              string  `json:"img,omitempty" bson:"img,omitempty"`
	Slug             string  `json:"slug,omitempty" bson:"slug,omitempty"`
}

// Cart holds a user's line items. Edits replace the product list wholesale.
type Cart struct {
	ID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Products []CartProduct      `json:"products" bson:"products"`
}
