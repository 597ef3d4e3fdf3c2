package controllers

import (
	"net/http"

	apperrors "storefront-backend/errors"
	"storefront-backend/middleware"
	"storefront-backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductController struct {
	service   ProductServiceAPI
	cache     *CacheManager
	validator *RequestValidator
}

// NewProductController wires the product handlers. cache may be nil when no
// Redis instance is configured.
func NewProductController(service ProductServiceAPI, cache *CacheManager, validator *RequestValidator) *ProductController {
	return &ProductController{service: service, cache: cache, validator: validator}
}

// CreateProduct creates a catalog entry owned by the authenticated caller.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body", "error": err.Error()})
		return
	}
	if err := pc.validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
		return
	}

	product, err := pc.service.CreateProduct(c.Request.Context(), services.ProductCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		Currency:    req.Currency,
		Images:      req.Images,
		Slug:        req.Slug,
	}, userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if pc.cache != nil {
		pc.cache.InvalidateProduct(c.Request.Context(), product.ID.Hex())
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// GetProducts lists the whole catalog, served from cache when possible.
func (pc *ProductController) GetProducts(c *gin.Context) {
	if pc.cache != nil {
		if products, hit := pc.cache.GetProductList(c.Request.Context()); hit {
			c.JSON(http.StatusOK, gin.H{"products": products})
			return
		}
	}

	products, err := pc.service.ListProducts(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if pc.cache != nil {
		pc.cache.SetProductListAsync(products)
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct returns one product by id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrProductNotFound)
		return
	}

	if pc.cache != nil {
		if product, hit := pc.cache.GetProduct(c.Request.Context(), id.Hex()); hit {
			c.JSON(http.StatusOK, gin.H{"product": product})
			return
		}
	}

	product, err := pc.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if pc.cache != nil {
		pc.cache.SetProductAsync(id.Hex(), product)
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct merges only the provided fields into the product.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrProductNotFound)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.BasePrice != nil {
		updates["basePrice"] = *req.BasePrice
	}
	if req.Currency != nil {
		updates["currency"] = *req.Currency
	}
	if req.Images != nil {
		updates["img"] = *req.Images
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}

	product, err := pc.service.UpdateProduct(c.Request.Context(), id, updates)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	if pc.cache != nil {
		pc.cache.InvalidateProduct(c.Request.Context(), id.Hex())
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct removes a product by id.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrProductNotFound)
		return
	}

	if err := pc.service.DeleteProduct(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}

	if pc.cache != nil {
		pc.cache.InvalidateProduct(c.Request.Context(), id.Hex())
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
