package routes

import (
	"github.com/bikinisbytelly/bikinis-api/controllers"
	"github.com/gin-gonic/gin"
)

func CheckoutRoutes(server *gin.Engine) {
	server.GET("/api/stripe/public-key", controllers.GetStripePublicKey)
	server.POST("/api/create-payment-intent", controllers.CreatePaymentIntent)
	server.POST("/webhook/stripe", controllers.HandleStripeWebhook)
}
