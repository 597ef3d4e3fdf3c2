package controllers

import (
	"net/http"

	apperrors "storefront-backend/errors"
	"storefront-backend/middleware"
	"storefront-backend/models"

	"github.com/gin-gonic/gin"
)

type CreateOrderRequest struct {
	Email string             `json:"email"`
	Items []models.OrderItem `json:"items"`
}

type CartRequest struct {
	Products []models.CartProduct `json:"products"`
}

type PaymentNotificationRequest struct {
	Email      string  `json:"email" binding:"required,email"`
	ReceiptURL string  `json:"receiptURL"`
	ReceiptID  string  `json:"receiptID" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
}

type CheckoutController struct {
	service CheckoutServiceAPI
}

func NewCheckoutController(service CheckoutServiceAPI) *CheckoutController {
	return &CheckoutController{service: service}
}

// CreateCheckoutSession previews the authenticated user's cart as simplified
// line items. Read-only; no gateway call.
func (cc *CheckoutController) CreateCheckoutSession(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	lineItems, err := cc.service.CreateCheckoutSession(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Checkout session created.",
		"line_items": lineItems,
	})
}

// CreateOrder sends a payment preference to the gateway and returns its
// redirect URL.
func (cc *CheckoutController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return
	}

	initPoint, err := cc.service.CreateOrder(c.Request.Context(), req.Email, req.Items)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "created",
		"init_point": initPoint,
	})
}

// PaymentNotification records an out-of-band payment confirmation as a
// receipt on the addressed user.
func (cc *CheckoutController) PaymentNotification(c *gin.Context) {
	var req PaymentNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return
	}

	receipt, err := cc.service.RecordPayment(c.Request.Context(), req.Email, models.Receipt{
		ReceiptURL: req.ReceiptURL,
		ReceiptID:  req.ReceiptID,
		Amount:     req.Amount,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment recorded.",
		"receipt": receipt,
	})
}

// CreateCart creates a cart and links it to the authenticated user.
func (cc *CheckoutController) CreateCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body", "error": err.Error()})
		return
	}

	cart, err := cc.service.CreateCart(c.Request.Context(), userID, req.Products)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cart": cart})
}

// GetCart returns the authenticated user's cart. A missing cart is a valid
// state and yields a null cart, not an error.
func (cc *CheckoutController) GetCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	cart, err := cc.service.GetCart(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// EditCart replaces the cart's product list wholesale.
func (cc *CheckoutController) EditCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthorized)
		return
	}

	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body", "error": err.Error()})
		return
	}

	cart, err := cc.service.EditCart(c.Request.Context(), userID, req.Products)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":         "Your cart was updated",
		"updatedCart": cart,
	})
}
