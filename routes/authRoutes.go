package routes

import (
	"github.com/Kariqs/agent-orders-api/controllers"
	"github.com/Kariqs/agent-orders-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.GET("/me", middlewares.RequireAuth(), controllers.Me)
	}
}
