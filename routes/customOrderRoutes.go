package routes

import (
	"github.com/bikinisbytelly/bikinis-api/controllers"
	"github.com/gin-gonic/gin"
)

func CustomOrderRoutes(server *gin.Engine) {
	server.POST("/api/custom-order", controllers.CreateCustomOrder)
}
