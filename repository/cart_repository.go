package repository

import (
	"context"

	"storefront-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartRepository struct {
	collection *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{
		collection: db.Collection("carts"),
	}
}

func (r *CartRepository) Create(ctx context.Context, cart *models.Cart) error {
	_, err := r.collection.InsertOne(ctx, cart)
	return err
}

func (r *CartRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cart)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// ReplaceProducts overwrites the cart's product list in one update and returns
// the updated cart. There are no merge semantics.
func (r *CartRepository) ReplaceProducts(ctx context.Context, id primitive.ObjectID, products []models.CartProduct) (*models.Cart, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var cart models.Cart
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"products": products}},
		opts,
	).Decode(&cart)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Delete removes a cart document. Used as compensating cleanup when linking a
// fresh cart to its user fails.
func (r *CartRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
