package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Kariqs/agent-orders-api/initializers"
	"github.com/Kariqs/agent-orders-api/models"
	"github.com/Kariqs/agent-orders-api/services"
	"github.com/Kariqs/agent-orders-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func findOrder(ctx *gin.Context) (*models.Order, bool) {
	id, ok := parseID(ctx)
	if !ok {
		return nil, false
	}
	var order models.Order
	if err := initializers.DB.WithContext(ctx.Request.Context()).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Order not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch order", err)
		}
		return nil, false
	}
	return &order, true
}

func GetAdminOrders(ctx *gin.Context) {
	filter, ok := orderFilterFromQuery(ctx)
	if !ok {
		return
	}
	filter.Magazine = ctx.Query("magazinName")
	filter.Agent = ctx.Query("agentName")

	page, limit, paged := pageParams(ctx, 15)
	if !paged {
		orders, err := services.FindOrders(ctx.Request.Context(), initializers.DB, filter)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
			return
		}
		ctx.JSON(http.StatusOK, orders)
		return
	}

	orders, count, err := services.FindOrdersPage(ctx.Request.Context(), initializers.DB, filter, page, limit)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"orders":   orders,
		"metadata": pageMetadata(count, page, limit),
	})
}

func GetOrderById(ctx *gin.Context) {
	order, ok := findOrder(ctx)
	if !ok {
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

func DeleteOrder(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	result := initializers.DB.WithContext(ctx.Request.Context()).Delete(&models.Order{}, id)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete order", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Order not found", nil)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted"})
}

func GetOrderPDF(ctx *gin.Context) {
	order, ok := findOrder(ctx)
	if !ok {
		return
	}
	if Renderer == nil {
		sendPDF(ctx, "", nil, utils.ErrRendererUnavailable)
		return
	}

	pdf, err := services.OrderPDF(ctx.Request.Context(), Renderer, *order, Location)
	sendPDF(ctx, fmt.Sprintf("comanda-%d.pdf", order.OrderNumber), pdf, err)
}

func ExportOrders(ctx *gin.Context) {
	filter, ok := orderFilterFromQuery(ctx)
	if !ok {
		return
	}
	filter.Magazine = ctx.Query("magazinName")
	filter.Agent = ctx.Query("agentName")

	format := strings.ToLower(ctx.DefaultQuery("format", "csv"))
	if format != "csv" && format != "xlsx" {
		respondWithError(ctx, http.StatusBadRequest, "Unsupported export format", nil)
		return
	}

	orders, err := services.FindOrders(ctx.Request.Context(), initializers.DB, filter)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
		return
	}
	rows := utils.OrderExportRows(orders, Location)

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = utils.WriteOrdersXLSX(&buf, rows)
	} else {
		err = utils.WriteOrdersCSV(&buf, rows)
	}
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Export failed", err)
		return
	}

	filename := "orders-" + services.Now().In(Location).Format("2006-01-02") + "." + format
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, contentType, buf.Bytes())
}

// ordersFor serves the orders of one magazine or agent named by the param query key.
func ordersFor(ctx *gin.Context, param string, apply func(*services.OrderFilter, string)) {
	name := strings.TrimSpace(ctx.Query(param))
	if name == "" {
		respondWithError(ctx, http.StatusBadRequest, param+" is required", nil)
		return
	}

	filter, ok := orderFilterFromQuery(ctx)
	if !ok {
		return
	}
	filter.Search = ""
	apply(&filter, name)

	orders, err := services.FindOrders(ctx.Request.Context(), initializers.DB, filter)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

func GetMagazineOrders(ctx *gin.Context) {
	ordersFor(ctx, "magazinName", func(f *services.OrderFilter, name string) { f.Magazine = name })
}

func GetAgentOrders(ctx *gin.Context) {
	ordersFor(ctx, "agentName", func(f *services.OrderFilter, name string) { f.Agent = name })
}

func distinct(ctx *gin.Context, column string) {
	values, err := services.DistinctValues(ctx.Request.Context(), initializers.DB, column)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch names", err)
		return
	}
	if values == nil {
		values = []string{}
	}
	ctx.JSON(http.StatusOK, values)
}

func GetMagazines(ctx *gin.Context) {
	distinct(ctx, "magazin_name")
}

func GetAgents(ctx *gin.Context) {
	distinct(ctx, "agent_name")
}
