package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Bikinis By Telly API ❤️.

The following are the endpoints for this API:

CATALOG
- GET "/api/products" - List all products
- GET "/api/products/featured" - List featured products
- GET "/api/products/:id" - Get product by ID
- GET "/api/products/:id/reviews" - Approved reviews for a product
- POST "/api/reviews" - Submit a product review

CHECKOUT
- GET "/api/stripe/public-key" - Publishable payment key
- POST "/api/create-payment-intent" - Start checkout
- POST "/webhook/stripe" - Payment provider callback

CUSTOM ORDERS
- POST "/api/custom-order" - Submit a custom design request

OTHER
- POST "/api/contact" - Contact form
- POST "/api/newsletter/subscribe" - Join the newsletter

ADMIN
- POST "/api/admin/login" - Admin sign in
- GET "/api/admin/orders" - List orders
- PATCH "/api/admin/orders/:orderId/status" - Update fulfillment status
- POST "/api/admin/orders/:orderId/refund" - Refund a paid order
- GET "/api/admin/custom-orders" - List custom order requests
- PATCH "/api/admin/custom-orders/:orderId/status" - Update request status
- PATCH "/api/admin/reviews/:reviewId/approve" - Publish a review
- POST "/api/admin/products" - Create product
- POST "/api/admin/products/images" - Upload product images`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
