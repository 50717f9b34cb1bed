package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the JR Rodriguez Meat Dealer API.

The following are the endpoints for this API:

AUTH
- POST "/auth/register" - Create customer account
- POST "/auth/login" - Access user account
- POST "/auth/logout" - End the current session
- POST "/auth/forgot-password" - Request password reset
- POST "/auth/reset-password" - Reset password with token
- POST "/auth/verify-email" - Verify email address
- POST "/auth/resend-verification" - Resend verification email
- GET  "/auth/profile" - Get current user profile
- GET  "/auth/check-session" - Check session state

PRODUCTS
- GET    "/products" - List products (page, limit, category, status, q, min_price, max_price)
- GET    "/products/search" - Search the active catalog
- GET    "/products/categories" - Category summaries
- GET    "/products/featured" - Featured products
- GET    "/products/low-stock" - Low stock report (admin)
- GET    "/products/:id" - Product details with related products
- POST   "/products" - Create product (admin)
- POST   "/products/stock" - Adjust stock (admin)
- POST   "/products/bulk-update" - Bulk update (admin)
- POST   "/products/:id/images" - Upload product image (admin)
- PUT    "/products/:id" - Update product (admin)
- DELETE "/products/:id" - Delete product (admin)

CART & FAVORITES
- GET/POST/PUT "/cart", DELETE "/cart" and "/cart/:productId"
- GET/POST "/favorites", DELETE "/favorites/:productId"

ORDERS
- POST "/orders" - Checkout the current cart
- GET  "/orders" - List own orders
- GET  "/orders/:orderId" - Get one order
- GET  "/admin/orders" - List all orders (admin)
- PATCH "/admin/orders/:orderId/status" - Update order status (admin)`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
