package routes

import (
	"github.com/Kariqs/agent-orders-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine, api *gin.RouterGroup, withFrontend bool) {
	api.GET("/health", controllers.Health)
	if !withFrontend {
		server.GET("/", controllers.GetHome)
	}
}
