package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Agent Orders API. The following are the endpoints for this API:

AUTH
- POST "/api/auth/login" - Obtain a token
- GET "/api/auth/me" - Current user

PRODUCTS
- GET "/api/products" - List products (search, category, stoc)
- GET "/api/products/:id" - Get product by ID
- GET "/api/products/:id/barcode" - Barcode image
- POST "/api/products" - Create product (admin)
- PUT "/api/products/:id" - Update product (admin)
- PATCH "/api/products/:id/stock" - Set stock status (admin)
- DELETE "/api/products/:id" - Delete product (admin)
- POST "/api/products/:id/image" - Upload product image (admin)
- GET "/api/products/catalog/pdf" - Catalog PDF (admin)

ORDERS
- POST "/api/orders/quote" - Price a cart
- POST "/api/orders/create" - Place an order
- GET "/api/orders" - List orders (search, date)

ADMIN
- GET "/api/admin/orders" - Orders with pagination
- GET "/api/admin/orders/:id" - Order by ID
- DELETE "/api/admin/orders/:id" - Delete order
- GET "/api/admin/orders/:id/pdf" - Order sheet PDF
- GET "/api/admin/orders/export" - CSV or XLSX export
- GET "/api/admin/magazine-orders" - Orders of one magazine
- GET "/api/admin/agent-orders" - Orders of one agent
- GET "/api/admin/magazines" - Magazine names
- GET "/api/admin/agents" - Agent names
- GET "/api/admin/stats" - Totals
- GET "/api/admin/stats/products" - Trending products
- GET "/api/admin/stats/magazines" - Per magazine breakdown
- GET "/api/admin/stats/agents" - Per agent breakdown
- GET "/api/admin/reports" - Daily report snapshots`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Backend is working"})
}
