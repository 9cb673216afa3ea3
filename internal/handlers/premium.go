package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/insurely/brochure-backend/internal/logger"
	"github.com/insurely/brochure-backend/internal/response"
	"github.com/insurely/brochure-backend/internal/services"
	"github.com/insurely/brochure-backend/internal/types"
)

type PremiumHandler struct {
	log            *logger.Logger
	premiumService services.PremiumService
}

func NewPremiumHandler(log *logger.Logger, premiumService services.PremiumService) *PremiumHandler {
	return &PremiumHandler{
		log:            log.With("handler", "PremiumHandler"),
		premiumService: premiumService,
	}
}

func (h *PremiumHandler) CreatePremiumRule(c *gin.Context) {
	var rule types.MinPremiumRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.premiumService.CreatePremiumRule(c.Request.Context(), nil, &rule)
	if err != nil {
		h.log.Error("CreatePremiumRule failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondCreated(c, created)
}

func (h *PremiumHandler) GetAllPremiumRules(c *gin.Context) {
	rules, err := h.premiumService.GetAllPremiumRules(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("GetAllPremiumRules failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, rules)
}

func (h *PremiumHandler) GetPremiumRuleByID(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_rule_id", err)
		return
	}
	rule, err := h.premiumService.GetPremiumRuleByID(c.Request.Context(), nil, ruleID)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, rule)
}

func (h *PremiumHandler) GetPremiumRulesByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	rules, err := h.premiumService.GetPremiumRulesByProduct(c.Request.Context(), nil, productID)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, rules)
}

func (h *PremiumHandler) GetPremiumRulesByVariant(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("variantId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_variant_id", err)
		return
	}
	rules, err := h.premiumService.GetPremiumRulesByVariant(c.Request.Context(), nil, variantID)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, rules)
}

func (h *PremiumHandler) UpdatePremiumRule(c *gin.Context) {
	var rule types.MinPremiumRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if rule.MinPremID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_rule_id", errors.New("minprem_id is required"))
		return
	}
	updated, err := h.premiumService.UpdatePremiumRule(c.Request.Context(), nil, &rule)
	if err != nil {
		h.log.Error("UpdatePremiumRule failed", "error", err, "ruleID", rule.MinPremID)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, updated)
}

func (h *PremiumHandler) DeletePremiumRule(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Query("ruleId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_rule_id", err)
		return
	}
	if err := h.premiumService.DeletePremiumRule(c.Request.Context(), nil, ruleID); err != nil {
		h.log.Error("DeletePremiumRule failed", "error", err, "ruleID", ruleID)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Premium rule deleted successfully"})
}
