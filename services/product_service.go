package services

import (
	"context"
	"net/http"
	"time"

	apperrors "storefront-backend/errors"
	"storefront-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type IProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAll(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type ProductCreateInput struct {
	Name        string
	Description string
	Category    string
	BasePrice   float64
	Currency    string
	Images      []string
	Slug        string
}

type ProductService struct {
	productRepo IProductRepository
}

func NewProductService(pr IProductRepository) *ProductService {
	return &ProductService{productRepo: pr}
}

// CreateProduct creates a catalog entry owned by the authenticated caller.
func (s *ProductService) CreateProduct(ctx context.Context, input ProductCreateInput, ownerID primitive.ObjectID) (*models.Product, error) {
	product := &models.Product{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		BasePrice:   input.BasePrice,
		Currency:    input.Currency,
		Images:      input.Images,
		Slug:        input.Slug,
		UserID:      ownerID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.New(http.StatusConflict, "slug already in use", err)
		}
		return nil, apperrors.New(http.StatusInternalServerError, "failed to create product", err)
	}
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.New(http.StatusInternalServerError, "failed to load product", err)
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "failed to list products", err)
	}
	return products, nil
}

// UpdateProduct merges only the provided fields into the product document.
func (s *ProductService) UpdateProduct(ctx context.Context, id primitive.ObjectID, updates bson.M) (*models.Product, error) {
	if len(updates) == 0 {
		return nil, apperrors.NewInvalidInput("no update fields provided")
	}
	delete(updates, "_id")

	product, err := s.productRepo.Update(ctx, id, updates)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.New(http.StatusInternalServerError, "failed to update product", err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.New(http.StatusInternalServerError, "failed to delete product", err)
	}
	if deleted == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}
