package controllers

import (
	"errors"
	"net/http"

	"github.com/Kariqs/agent-orders-api/initializers"
	"github.com/Kariqs/agent-orders-api/models"
	"github.com/Kariqs/agent-orders-api/services"
	"github.com/Kariqs/agent-orders-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// respondServiceError maps domain errors onto HTTP statuses.
func respondServiceError(ctx *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidOrder),
		errors.Is(err, services.ErrOutOfStock),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrInvalidProduct):
		respondWithError(ctx, http.StatusBadRequest, message, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondWithError(ctx, http.StatusNotFound, "Not found", nil)
	default:
		zap.S().Errorf("%s: %v", message, err)
		respondWithError(ctx, http.StatusInternalServerError, message, err)
	}
}

func CreateOrder(ctx *gin.Context) {
	var req models.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	order, err := services.CreateOrder(ctx.Request.Context(), initializers.DB, req)
	if err != nil {
		respondServiceError(ctx, "Failed to create order", err)
		return
	}

	zap.S().Infof("Order %d created for %s by %s (%.2f)", order.OrderNumber, order.MagazinName, order.AgentName, order.Total)
	services.PublishOrderCreated(*order)

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

// orderFilterFromQuery reads search plus either a single day (date) or a
// startDate/endDate span. Half-given spans are ignored.
func orderFilterFromQuery(ctx *gin.Context) (services.OrderFilter, bool) {
	filter := services.OrderFilter{Search: ctx.Query("search")}

	if day := ctx.Query("date"); day != "" {
		start, end, err := utils.DayRange(day, Location)
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid date", err)
			return filter, false
		}
		filter.From, filter.To = &start, &end
		return filter, true
	}

	startDate, endDate := ctx.Query("startDate"), ctx.Query("endDate")
	if startDate != "" && endDate != "" {
		start, end, err := utils.SpanRange(startDate, endDate, Location)
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid date range", err)
			return filter, false
		}
		filter.From, filter.To = &start, &end
	}
	return filter, true
}

func GetOrders(ctx *gin.Context) {
	filter, ok := orderFilterFromQuery(ctx)
	if !ok {
		return
	}

	orders, err := services.FindOrders(ctx.Request.Context(), initializers.DB, filter)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", err)
		return
	}
	ctx.JSON(http.StatusOK, orders)
}
