package controllers

import (
	"context"

	"storefront-backend/models"
	"storefront-backend/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthServiceAPI defines the interface for auth operations
type AuthServiceAPI interface {
	Register(ctx context.Context, input services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// CheckoutServiceAPI defines the interface for checkout operations
type CheckoutServiceAPI interface {
	CreateCheckoutSession(ctx context.Context, userID primitive.ObjectID) ([]models.LineItem, error)
	CreateOrder(ctx context.Context, email string, items []models.OrderItem) (string, error)
	RecordPayment(ctx context.Context, email string, receipt models.Receipt) (models.Receipt, error)
	CreateCart(ctx context.Context, userID primitive.ObjectID, products []models.CartProduct) (*models.Cart, error)
	GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	EditCart(ctx context.Context, userID primitive.ObjectID, products []models.CartProduct) (*models.Cart, error)
}

// ProductServiceAPI defines the interface for product operations
type ProductServiceAPI interface {
	CreateProduct(ctx context.Context, input services.ProductCreateInput, ownerID primitive.ObjectID) (*models.Product, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}
