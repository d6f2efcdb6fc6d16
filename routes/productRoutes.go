package routes

import (
	"github.com/bikinisbytelly/bikinis-api/controllers"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine) {
	server.GET("/api/products", controllers.GetProducts)
	server.GET("/api/products/featured", controllers.GetFeaturedProducts)
	server.GET("/api/products/:id", controllers.GetProduct)
	server.GET("/api/products/:id/reviews", controllers.GetProductReviews)
	server.POST("/api/reviews", controllers.SubmitReview)
}
