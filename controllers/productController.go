package controllers

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/Kariqs/agent-orders-api/initializers"
	"github.com/Kariqs/agent-orders-api/models"
	"github.com/Kariqs/agent-orders-api/services"
	"github.com/Kariqs/agent-orders-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxImageSize = 10 << 20

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondWithError(ctx, http.StatusBadRequest, "Invalid ID", err)
		return 0, false
	}
	return uint(id), true
}

func findProduct(ctx *gin.Context) (*models.Product, bool) {
	id, ok := parseID(ctx)
	if !ok {
		return nil, false
	}
	var product models.Product
	if err := initializers.DB.WithContext(ctx.Request.Context()).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", err)
		}
		return nil, false
	}
	return &product, true
}

// pageParams reads page/limit; ok is false when no page was requested.
func pageParams(ctx *gin.Context, defaultLimit int) (page, limit int, ok bool) {
	if ctx.Query("page") == "" {
		return 0, 0, false
	}
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit, true
}

func pageMetadata(count int64, page, limit int) gin.H {
	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))
	return gin.H{
		"total":        count,
		"currentPage":  page,
		"limit":        limit,
		"hasPrevPage":  previousPage > 0,
		"hasNextPage":  int(totalPages) > page,
		"previousPage": previousPage,
		"nextPage":     nextPage,
	}
}

func GetProducts(ctx *gin.Context) {
	products, err := services.ListProducts(ctx.Request.Context(), initializers.DB, services.ProductFilter{
		Search:   ctx.Query("search"),
		Category: ctx.Query("category"),
		Stoc:     ctx.Query("stoc"),
	})
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	page, limit, paged := pageParams(ctx, 20)
	if !paged {
		ctx.JSON(http.StatusOK, products)
		return
	}

	count := int64(len(products))
	start := min((page-1)*limit, len(products))
	end := min(start+limit, len(products))
	ctx.JSON(http.StatusOK, gin.H{
		"products": products[start:end],
		"metadata": pageMetadata(count, page, limit),
	})
}

func GetProduct(ctx *gin.Context) {
	product, ok := findProduct(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, product)
}

func CreateProduct(ctx *gin.Context) {
	var input models.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var product models.Product
	if err := services.ApplyProductInput(&product, input, true); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product", err)
		return
	}

	if err := initializers.DB.WithContext(ctx.Request.Context()).Create(&product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

func UpdateProduct(ctx *gin.Context) {
	product, ok := findProduct(ctx)
	if !ok {
		return
	}

	var input models.ProductInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := services.ApplyProductInput(product, input, false); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid product", err)
		return
	}

	if err := initializers.DB.WithContext(ctx.Request.Context()).Save(product).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func UpdateProductStock(ctx *gin.Context) {
	product, ok := findProduct(ctx)
	if !ok {
		return
	}

	var input models.StockInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	product.Stoc = models.NormalizeStock(input.Stoc)
	if err := initializers.DB.WithContext(ctx.Request.Context()).Model(product).Update("stoc", product.Stoc).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update stock", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func DeleteProduct(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	result := initializers.DB.WithContext(ctx.Request.Context()).Delete(&models.Product{}, id)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted"})
}

func UploadProductImage(ctx *gin.Context) {
	product, ok := findProduct(ctx)
	if !ok {
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No file uploaded", err)
		return
	}
	if file.Size > maxImageSize {
		respondWithError(ctx, http.StatusBadRequest, "Image too large", nil)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	optimized, err := utils.OptimizeProductImage(data)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid image", err)
		return
	}

	name := fmt.Sprintf("%d-%s.jpg", product.ID, uuid.NewString())
	ref, err := Images.Save(ctx.Request.Context(), name, optimized, "image/jpeg")
	if err != nil {
		zap.S().Errorf("Error uploading image for product %d: %v", product.ID, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to store image", err)
		return
	}

	product.Image = ref
	if err := initializers.DB.WithContext(ctx.Request.Context()).Model(product).Update("image", ref).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func GetProductBarcode(ctx *gin.Context) {
	product, ok := findProduct(ctx)
	if !ok {
		return
	}
	if product.Barcode == nil {
		respondWithError(ctx, http.StatusNotFound, "Product has no barcode", nil)
		return
	}

	png, err := utils.EncodeBarcode(*product.Barcode, 300, 100)
	if err != nil {
		respondWithError(ctx, http.StatusUnprocessableEntity, "Unable to encode barcode", err)
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}

// sendPDF writes a rendered document or maps renderer failures to 503/500.
func sendPDF(ctx *gin.Context, filename string, pdf []byte, err error) {
	if err != nil {
		if errors.Is(err, utils.ErrRendererUnavailable) {
			respondWithError(ctx, http.StatusServiceUnavailable, "PDF rendering is not available", err)
			return
		}
		zap.S().Errorf("PDF %s failed: %v", filename, err)
		respondWithError(ctx, http.StatusInternalServerError, "Failed to render PDF", err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

func GetCatalogPDF(ctx *gin.Context) {
	if Renderer == nil {
		sendPDF(ctx, "", nil, utils.ErrRendererUnavailable)
		return
	}

	var products []models.Product
	if err := initializers.DB.WithContext(ctx.Request.Context()).Order("category").Order("name").Find(&products).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", err)
		return
	}

	pdf, err := services.CatalogPDF(ctx.Request.Context(), Renderer, products)
	sendPDF(ctx, "catalog.pdf", pdf, err)
}
