package routes

import (
	"github.com/Kariqs/agent-orders-api/controllers"
	"github.com/Kariqs/agent-orders-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/orders", controllers.GetAdminOrders)
		admin.GET("/orders/export", controllers.ExportOrders)
		admin.GET("/orders/:id", controllers.GetOrderById)
		admin.GET("/orders/:id/pdf", controllers.GetOrderPDF)
		admin.DELETE("/orders/:id", controllers.DeleteOrder)
		admin.GET("/magazine-orders", controllers.GetMagazineOrders)
		admin.GET("/agent-orders", controllers.GetAgentOrders)
		admin.GET("/magazines", controllers.GetMagazines)
		admin.GET("/agents", controllers.GetAgents)

		admin.GET("/stats", controllers.GetStats)
		admin.GET("/stats/products", controllers.GetProductStats)
		admin.GET("/stats/magazines", controllers.GetMagazineStats)
		admin.GET("/stats/agents", controllers.GetAgentStats)
		admin.GET("/reports", controllers.GetReports)
	}
}
