package controllers

import (
	"net/http"

	"github.com/Kariqs/agent-orders-api/initializers"
	"github.com/Kariqs/agent-orders-api/models"
	"github.com/Kariqs/agent-orders-api/services"
	"github.com/gin-gonic/gin"
)

type quoteRequest struct {
	Items []models.OrderItemInput `json:"items"`
}

// QuoteOrder prices the cart the agent is building, applying the same rules as checkout.
func QuoteOrder(ctx *gin.Context) {
	var req quoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid input")
		return
	}

	quote, err := services.QuoteOrder(ctx.Request.Context(), initializers.DB, req.Items)
	if err != nil {
		respondServiceError(ctx, "Unable to price cart", err)
		return
	}

	ctx.JSON(http.StatusOK, quote)
}
