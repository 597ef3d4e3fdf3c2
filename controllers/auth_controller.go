package controllers

import (
	"net/http"

	apperrors "storefront-backend/errors"
	"storefront-backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Struct to represent the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Struct for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Lastname string `json:"lastname"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Country  string `json:"country"`
	Address  string `json:"address"`
	Zipcode  int    `json:"zipcode"`
}

// UpdateUserRequest carries optional fields; only set fields are merged.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Lastname *string `json:"lastname"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Country  *string `json:"country"`
	Address  *string `json:"address"`
	Zipcode  *int    `json:"zipcode"`
}

type AuthController struct {
	service AuthServiceAPI
}

func NewAuthController(service AuthServiceAPI) *AuthController {
	return &AuthController{service: service}
}

// Register creates a new user account with an empty linked cart.
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body", "error": err.Error()})
		return
	}

	user, err := ac.service.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Lastname: req.Lastname,
		Email:    req.Email,
		Password: req.Password,
		Country:  req.Country,
		Address:  req.Address,
		Zipcode:  req.Zipcode,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login authenticates a user and returns a bearer token.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return
	}

	token, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// UpdateUser merges the provided fields into the addressed user.
func (ac *AuthController) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.ErrUserNotFound)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return
	}

	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Lastname != nil {
		updates["lastname"] = *req.Lastname
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Password != nil {
		updates["password"] = *req.Password
	}
	if req.Country != nil {
		updates["country"] = *req.Country
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Zipcode != nil {
		updates["zipcode"] = *req.Zipcode
	}

	user, err := ac.service.UpdateUser(c.Request.Context(), id, updates)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetAllUsers lists every registered user.
func (ac *AuthController) GetAllUsers(c *gin.Context) {
	users, err := ac.service.ListUsers(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// VerifyToken confirms the caller's token; the auth middleware has already
// validated it by the time this handler runs.
func (ac *AuthController) VerifyToken(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
}
