package routes

import (
	"github.com/Kariqs/agent-orders-api/controllers"
	"github.com/Kariqs/agent-orders-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(api *gin.RouterGroup) {
	orders := api.Group("/orders")
	{
		orders.POST("/create", controllers.CreateOrder)
		orders.POST("", controllers.CreateOrder)
		orders.POST("/quote", controllers.QuoteOrder)
		orders.GET("", middlewares.RequireAuth(), controllers.GetOrders)
	}
}
