package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/repos"
	"github.com/insurely/brochure-backend/internal/response"
	"github.com/insurely/brochure-backend/internal/services"
	"github.com/insurely/brochure-backend/internal/types"
)

type ProductHandler struct {
	log            *logger.Logger
	productService services.ProductService
}

func NewProductHandler(log *logger.Logger, productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		log:            log.With("handler", "ProductHandler"),
		productService: productService,
	}
}

func productIDFromQuery(c *gin.Context) (uuid.UUID, error) {
	raw := c.Query("productId")
	if raw == "" {
		return uuid.Nil, errors.New("productId is required")
	}
	return uuid.Parse(raw)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product types.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.productService.CreateProduct(c.Request.Context(), nil, &product)
	if err != nil {
		h.log.Error("CreateProduct failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondCreated(c, created)
}

func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	products, total, err := h.productService.GetAllProducts(c.Request.Context(), nil, c.Query("search"))
	if err != nil {
		h.log.Error("GetAllProducts failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": total, "length": len(products), "products": products})
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	productID, err := productIDFromQuery(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	product, err := h.productService.GetProductByID(c.Request.Context(), nil, productID)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var product types.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if product.ProductID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", errors.New("product_id is required"))
		return
	}
	updated, err := h.productService.UpdateProduct(c.Request.Context(), nil, &product)
	if err != nil {
		h.log.Error("UpdateProduct failed", "error", err, "productID", product.ProductID)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := productIDFromQuery(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		h.log.Error("DeleteProduct failed", "error", err, "productID", productID)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Product and all related data deleted successfully"})
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	products, total, err := h.productService.SearchProducts(c.Request.Context(), nil, c.Query("search"), page, limit)
	if err != nil {
		h.log.Error("SearchProducts failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": total, "length": limit, "data": products})
}

// GetCompleteProduct returns the composed brochure document for one product,
// the id arriving in the request body.
func (h *ProductHandler) GetCompleteProduct(c *gin.Context) {
	var body struct {
		ProductID uuid.UUID `json:"productId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", errors.New("productId is required"))
		return
	}
	complete, err := h.productService.GetCompleteProduct(c.Request.Context(), nil, body.ProductID)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, complete)
}

func (h *ProductHandler) GetProductWithResolvedEligibility(c *gin.Context) {
	productID, err := productIDFromQuery(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	complete, err := h.productService.GetProductWithResolvedEligibility(c.Request.Context(), nil, productID)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, complete)
}

func (h *ProductHandler) GetProductsByEligibilityCriteria(c *gin.Context) {
	criteria := repos.EligibilityCriteria{
		Jurisdiction: c.Query("jurisdiction"),
		Insurer:      c.Query("insurer"),
		Channel:      c.Query("channel"),
		PayType:      c.Query("pay_type"),
	}
	if raw := c.Query("min_entry_age"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			criteria.MinEntryAge = &v
		}
	}
	if raw := c.Query("max_entry_age"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			criteria.MaxEntryAge = &v
		}
	}
	products, err := h.productService.GetProductsByEligibilityCriteria(c.Request.Context(), nil, criteria)
	if err != nil {
		h.log.Error("GetProductsByEligibilityCriteria failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": products})
}

func (h *ProductHandler) CreateCompleteBrochure(c *gin.Context) {
	var input services.CompleteBrochureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.productService.CreateCompleteBrochure(c.Request.Context(), input)
	if err != nil {
		h.log.Error("CreateCompleteBrochure failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondCreated(c, created)
}

func (h *ProductHandler) GetCompleteBrochureData(c *gin.Context) {
	products, err := h.productService.GetCompleteBrochureData(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("GetCompleteBrochureData failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": products})
}

func (h *ProductHandler) GetCompleteSingleBrochure(c *gin.Context) {
	var body struct {
		ProductID uuid.UUID `json:"productId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", errors.New("productId is required"))
		return
	}
	brochureData, err := h.productService.GetCompleteSingleBrochure(c.Request.Context(), nil, body.ProductID)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, brochureData)
}
