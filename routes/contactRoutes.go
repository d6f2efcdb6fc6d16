package routes

import (
	"github.com/bikinisbytelly/bikinis-api/controllers"
	"github.com/gin-gonic/gin"
)

func ContactRoutes(server *gin.Engine) {
	server.POST("/api/contact", controllers.SubmitContact)
	server.POST("/api/newsletter/subscribe", controllers.SubscribeNewsletter)
}
