package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/dto"
	"github.com/pocketfin/pocket_finance_app/internal/middleware"
)

// creditHandler handles HTTP requests related to credit products.
type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

func newCreditHandler(cs portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{creditService: cs}
}

// RegisterCreditRoutes registers routes related to credit products.
func RegisterCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	products := rg.Group("/credit-products")
	{
		products.POST("", h.createCreditProduct)
		products.GET("", h.listCreditProducts)
		products.GET("/:id", h.getCreditProduct)
		products.PATCH("/:id", h.updateCreditProduct)
		products.DELETE("/:id", h.deleteCreditProduct)
		products.POST("/:id/payments", h.applyPayment)
		products.POST("/:id/charges", h.addCharge)
		products.POST("/refresh", h.refresh)
	}
}

// createCreditProduct godoc
// @Summary Register a new credit product
// @Description Creates a credit card, loan or installment plan to track
// @Tags credit-products
// @Accept json
// @Produce json
// @Param product body dto.CreateCreditProductRequest true "Product details"
// @Success 201 {object} dto.CreditProductResponse
// @Failure 400 {object} map[string]string "Invalid input or validation error"
// @Failure 503 {object} map[string]string "Persistence failure (retryable)"
// @Security BearerAuth
// @Router /credit-products [post]
func (h *creditHandler) createCreditProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCreditProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCreditProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.creditService.CreateCreditProduct(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create credit product")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreditProductResponse(product))
}

// listCreditProducts godoc
// @Summary List credit products
// @Description Lists all credit products; pass active=true for the active set only
// @Tags credit-products
// @Produce json
// @Param active query bool false "Only active products"
// @Success 200 {object} dto.ListCreditProductsResponse
// @Security BearerAuth
// @Router /credit-products [get]
func (h *creditHandler) listCreditProducts(c *gin.Context) {
	if c.Query("active") == "true" {
		active, err := h.creditService.ListActiveCreditProducts(c.Request.Context())
		if err != nil {
			respondServiceError(c, err, "Failed to list credit products")
			return
		}
		c.JSON(http.StatusOK, dto.ListCreditProductsResponse{Products: dto.ToListCreditProductResponse(active)})
		return
	}

	all, err := h.creditService.ListCreditProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to list credit products")
		return
	}
	c.JSON(http.StatusOK, dto.ListCreditProductsResponse{Products: dto.ToListCreditProductResponse(all)})
}

// getCreditProduct godoc
// @Summary Get a credit product by ID
// @Tags credit-products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.CreditProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /credit-products/{id} [get]
func (h *creditHandler) getCreditProduct(c *gin.Context) {
	product, err := h.creditService.GetCreditProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve credit product")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditProductResponse(product))
}

// updateCreditProduct godoc
// @Summary Patch a credit product
// @Description Partial update; changing the APR recomputes the daily rate
// @Tags credit-products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body dto.UpdateCreditProductRequest true "Fields to update"
// @Success 200 {object} dto.CreditProductResponse
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /credit-products/{id} [patch]
func (h *creditHandler) updateCreditProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCreditProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCreditProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.creditService.UpdateCreditProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update credit product")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditProductResponse(product))
}

// deleteCreditProduct godoc
// @Summary Delete a credit product
// @Tags credit-products
// @Param id path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /credit-products/{id} [delete]
func (h *creditHandler) deleteCreditProduct(c *gin.Context) {
	if err := h.creditService.DeleteCreditProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete credit product")
		return
	}
	c.Status(http.StatusNoContent)
}

// applyPayment godoc
// @Summary Apply a payment to a credit product
// @Description Accrues interest up to now, then allocates the amount interest-first
// @Tags credit-products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param payment body dto.PaymentRequest true "Payment amount"
// @Success 200 {object} dto.CreditProductResponse
// @Failure 400 {object} map[string]string "Non-positive amount"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 503 {object} map[string]string "Persistence failure (retryable)"
// @Security BearerAuth
// @Router /credit-products/{id}/payments [post]
func (h *creditHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applyPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.creditService.ApplyPayment(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		respondServiceError(c, err, "Failed to apply payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditProductResponse(product))
}

// addCharge godoc
// @Summary Add a charge to a revolving credit product
// @Description Increases the outstanding balance; rejected for loans and installment plans
// @Tags credit-products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param charge body dto.ChargeRequest true "Charge amount"
// @Success 200 {object} dto.CreditProductResponse
// @Failure 400 {object} map[string]string "Non-positive amount"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "Product does not accept charges"
// @Security BearerAuth
// @Router /credit-products/{id}/charges [post]
func (h *creditHandler) addCharge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addCharge", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	product, err := h.creditService.AddCharge(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		respondServiceError(c, err, "Failed to add charge")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditProductResponse(product))
}

// refresh godoc
// @Summary Re-run hydration and the accrual sweep
// @Description Retry entry point after a load failure; also brings accrued interest current
// @Tags credit-products
// @Success 204 "No Content"
// @Failure 503 {object} map[string]string "Persistence failure (retryable)"
// @Security BearerAuth
// @Router /credit-products/refresh [post]
func (h *creditHandler) refresh(c *gin.Context) {
	if err := h.creditService.Hydrate(c.Request.Context()); err != nil {
		respondServiceError(c, err, "Failed to refresh credit products")
		return
	}
	c.Status(http.StatusNoContent)
}
