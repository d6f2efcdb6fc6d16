package routes

import (
	"github.com/bikinisbytelly/bikinis-api/controllers"
	"github.com/bikinisbytelly/bikinis-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(server *gin.Engine) {
	server.POST("/api/admin/login", controllers.AdminLogin)

	admin := server.Group("/api/admin", middlewares.RequireAdmin())
	{
		admin.GET("/orders", controllers.GetOrders)
		admin.PATCH("/orders/:orderId/status", controllers.UpdateOrderStatus)
		admin.POST("/orders/:orderId/refund", controllers.RefundOrder)
		admin.GET("/custom-orders", controllers.GetCustomOrders)
		admin.PATCH("/custom-orders/:orderId/status", controllers.UpdateCustomOrderStatus)
		admin.PATCH("/reviews/:reviewId/approve", controllers.ApproveReview)
		admin.POST("/products", controllers.CreateProduct)
		admin.POST("/products/images", controllers.UploadProductImages)
	}
}
