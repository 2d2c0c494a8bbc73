package routes

import (
	"github.com/Kariqs/agent-orders-api/controllers"
	"github.com/Kariqs/agent-orders-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(api *gin.RouterGroup) {
	products := api.Group("/products")
	{
		products.GET("", controllers.GetProducts)
		products.GET("/:id", controllers.GetProduct)
		products.GET("/:id/barcode", controllers.GetProductBarcode)
	}

	admin := products.Group("", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/catalog/pdf", controllers.GetCatalogPDF)
		admin.POST("", controllers.CreateProduct)
		admin.PUT("/:id", controllers.UpdateProduct)
		admin.PATCH("/:id/stock", controllers.UpdateProductStock)
		admin.DELETE("/:id", controllers.DeleteProduct)
		admin.POST("/:id/image", controllers.UploadProductImage)
	}
}
