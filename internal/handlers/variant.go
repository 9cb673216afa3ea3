package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/response"
	"github.com/insurely/brochure-backend/internal/services"
	"github.com/insurely/brochure-backend/internal/types"
)

type VariantHandler struct {
	log            *logger.Logger
	variantService services.VariantService
}

func NewVariantHandler(log *logger.Logger, variantService services.VariantService) *VariantHandler {
	return &VariantHandler{
		log:            log.With("handler", "VariantHandler"),
		variantService: variantService,
	}
}

// variantBody is the create/update payload: a variant row plus an optional
// comma separated list of eligibility master ids to link.
type variantBody struct {
	types.PlanVariant
	EligibilityID *string `json:"eligibility_id"`
}

func (h *VariantHandler) CreateVariant(c *gin.Context) {
	var body variantBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	eligibilityIDs := ""
	if body.EligibilityID != nil {
		eligibilityIDs = *body.EligibilityID
	}
	created, err := h.variantService.CreateVariant(c.Request.Context(), &body.PlanVariant, eligibilityIDs)
	if err != nil {
		h.log.Error("CreateVariant failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondCreated(c, created)
}

func (h *VariantHandler) GetAllVariants(c *gin.Context) {
	variants, total, err := h.variantService.GetAllVariants(c.Request.Context(), nil, c.Query("search"))
	if err != nil {
		h.log.Error("GetAllVariants failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": total, "length": len(variants), "variants": variants})
}

func (h *VariantHandler) GetVariantByID(c *gin.Context) {
	variantID, err := uuid.Parse(c.Query("variantId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_variant_id", err)
		return
	}
	variant, err := h.variantService.GetVariantByID(c.Request.Context(), nil, variantID)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, variant)
}

func (h *VariantHandler) GetVariantsByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("productId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	variants, _, err := h.variantService.GetVariantsByProduct(c.Request.Context(), nil, productID, 0, 0)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, variants)
}

func (h *VariantHandler) UpdateVariant(c *gin.Context) {
	var body variantBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if body.VariantID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_variant_id", errors.New("variant_id is required"))
		return
	}
	// links are replaced only when the payload mentions eligibility_id
	relink := body.EligibilityID != nil
	eligibilityIDs := ""
	if relink {
		eligibilityIDs = *body.EligibilityID
	}
	updated, err := h.variantService.UpdateVariant(c.Request.Context(), &body.PlanVariant, eligibilityIDs, relink)
	if err != nil {
		h.log.Error("UpdateVariant failed", "error", err, "variantID", body.VariantID)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, updated)
}

func (h *VariantHandler) DeleteVariant(c *gin.Context) {
	variantID, err := uuid.Parse(c.Query("variantId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_variant_id", err)
		return
	}
	if err := h.variantService.DeleteVariant(c.Request.Context(), variantID); err != nil {
		h.log.Error("DeleteVariant failed", "error", err, "variantID", variantID)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Variant and all related data deleted successfully"})
}

// SearchVariantsByProduct pages through one product's variants; the product
// id arrives in the body, paging in the query string.
func (h *VariantHandler) SearchVariantsByProduct(c *gin.Context) {
	var body struct {
		ProductID uuid.UUID `json:"product_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", errors.New("product_id is required"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	variants, total, err := h.variantService.GetVariantsByProduct(c.Request.Context(), nil, body.ProductID, page, limit)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": total, "length": limit, "variants": variants})
}
