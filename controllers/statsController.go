package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Kariqs/agent-orders-api/initializers"
	"github.com/Kariqs/agent-orders-api/models"
	"github.com/Kariqs/agent-orders-api/services"
	"github.com/gin-gonic/gin"
)

// statsOrders loads the orders in the optional startDate/endDate window.
func statsOrders(ctx *gin.Context) ([]models.Order, bool) {
	filter, ok := orderFilterFromQuery(ctx)
	if !ok {
		return nil, false
	}
	filter.Search = ""
	filter.Agent = strings.TrimSpace(ctx.Query("agentName"))
	filter.Magazine = strings.TrimSpace(ctx.Query("magazinName"))

	orders, err := services.FindOrders(ctx.Request.Context(), initializers.DB, filter)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to compute statistics", err)
		return nil, false
	}
	return orders, true
}

func GetStats(ctx *gin.Context) {
	orders, ok := statsOrders(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, services.ComputeStats(orders))
}

func GetProductStats(ctx *gin.Context) {
	orders, ok := statsOrders(ctx)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "5"))
	ctx.JSON(http.StatusOK, services.Trending(orders, limit))
}

func GetMagazineStats(ctx *gin.Context) {
	orders, ok := statsOrders(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, services.GroupStats(orders, services.ByMagazine))
}

func GetAgentStats(ctx *gin.Context) {
	orders, ok := statsOrders(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, services.GroupStats(orders, services.ByAgent))
}

func GetReports(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "30"))
	reports, err := services.ListReports(ctx.Request.Context(), initializers.DB, limit)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch reports", err)
		return
	}
	ctx.JSON(http.StatusOK, reports)
}
