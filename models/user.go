package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered storefront account. Password always stores a bcrypt
// hash, never plaintext, and is omitted from JSON responses.
type User struct {
	ID       primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Name     string              `json:"name" bson:"name"`
	Lastname string              `json:"lastname" bson:"lastname"`
	Email    string              `json:"email" bson:"email"`
	Password string              `json:"-" bson:"password"`
	Country  string              `json:"country" bson:"country"`
	Address  string              `json:"address" bson:"address"`
	Zipcode  int                 `json:"zipcode" bson:"zipcode"`
	Cart     *primitive.ObjectID `json:"cart,omitempty" bson:"cart,omitempty"`
	Receipts []Receipt           `json:"receipts" bson:"receipts"`
}

// Receipt is an immutable record of a completed payment, appended to the
// owning user's receipt list.
type Receipt struct {
	ReceiptURL  string    `json:"receiptURL" bson:"receiptURL"`
	ReceiptID   string    `json:"receiptID" bson:"receiptID"`
	Amount      float64   `json:"amount" bson:"amount"`
	DateCreated time.Time `json:"date_created" bson:"date_created"`
}
