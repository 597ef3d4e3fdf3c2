package routes

import (
	"net/http"

	"storefront-backend/controllers"
	"storefront-backend/middleware"
	"storefront-backend/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the full HTTP surface on the given engine.
func RegisterRoutes(
	r *gin.Engine,
	auth *controllers.AuthController,
	checkout *controllers.CheckoutController,
	product *controllers.ProductController,
	tokenService services.ITokenService,
) {
	authGate := middleware.Auth(tokenService)

	userRoutes := r.Group("/user")
	{
		userRoutes.POST("/register", auth.Register)
		userRoutes.POST("/login", auth.Login)
		userRoutes.PUT("/update/:id", authGate, auth.UpdateUser)
		userRoutes.GET("", authGate, auth.GetAllUsers)
		userRoutes.GET("/verifytoken", authGate, auth.VerifyToken)
	}

	productRoutes := r.Group("/product")
	{
		productRoutes.POST("/create", authGate, product.CreateProduct)
		productRoutes.GET("", product.GetProducts)
		productRoutes.GET("/:id", product.GetProduct)
		productRoutes.PUT("/:id", authGate, product.UpdateProduct)
		productRoutes.DELETE("/:id", authGate, product.DeleteProduct)
	}

	checkoutRoutes := r.Group("/checkout")
	{
		checkoutRoutes.GET("/create-checkout-session", authGate, checkout.CreateCheckoutSession)
		checkoutRoutes.POST("/create-order", checkout.CreateOrder)
		checkoutRoutes.POST("/payment-notification", checkout.PaymentNotification)
		checkoutRoutes.POST("/create-cart", authGate, checkout.CreateCart)
		checkoutRoutes.GET("/get-cart", authGate, checkout.GetCart)
		checkoutRoutes.PUT("/edit-cart", authGate, checkout.EditCart)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
}
