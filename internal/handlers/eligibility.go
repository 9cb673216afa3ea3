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

type EligibilityHandler struct {
	log                *logger.Logger
	eligibilityService services.EligibilityService
}

func NewEligibilityHandler(log *logger.Logger, eligibilityService services.EligibilityService) *EligibilityHandler {
	return &EligibilityHandler{
		log:                log.With("handler", "EligibilityHandler"),
		eligibilityService: eligibilityService,
	}
}

func (h *EligibilityHandler) CreateEligibilityMaster(c *gin.Context) {
	var master types.EligibilityMaster
	if err := c.ShouldBindJSON(&master); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.eligibilityService.CreateEligibilityMaster(c.Request.Context(), nil, &master)
	if err != nil {
		h.log.Error("CreateEligibilityMaster failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondCreated(c, created)
}

func (h *EligibilityHandler) listMasters(c *gin.Context, withVariants bool) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	masters, total, err := h.eligibilityService.GetAllEligibilityMasters(
		c.Request.Context(), nil, c.Query("search"), page, limit, withVariants)
	if err != nil {
		h.log.Error("GetAllEligibilityMasters failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"total": total, "length": limit, "eligibilityMasters": masters})
}

func (h *EligibilityHandler) GetAllEligibilityMasters(c *gin.Context) {
	h.listMasters(c, false)
}

// GetEligibilityRelations lists masters with the variants (and their
// products) each one is linked to.
func (h *EligibilityHandler) GetEligibilityRelations(c *gin.Context) {
	h.listMasters(c, true)
}

func (h *EligibilityHandler) GetEligibilityMasterByID(c *gin.Context) {
	eligibilityID, err := uuid.Parse(c.Query("eligibilityId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_eligibility_id", err)
		return
	}
	master, err := h.eligibilityService.GetEligibilityMasterByID(c.Request.Context(), nil, eligibilityID)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, master)
}

func (h *EligibilityHandler) UpdateEligibilityMaster(c *gin.Context) {
	var master types.EligibilityMaster
	if err := c.ShouldBindJSON(&master); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if master.EligibilityID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_eligibility_id", errors.New("eligibility_id is required"))
		return
	}
	updated, err := h.eligibilityService.UpdateEligibilityMaster(c.Request.Context(), nil, &master)
	if err != nil {
		h.log.Error("UpdateEligibilityMaster failed", "error", err, "eligibilityID", master.EligibilityID)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, updated)
}

func (h *EligibilityHandler) DeleteEligibilityMaster(c *gin.Context) {
	eligibilityID, err := uuid.Parse(c.Query("eligibilityId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_eligibility_id", err)
		return
	}
	if err := h.eligibilityService.DeleteEligibilityMaster(c.Request.Context(), nil, eligibilityID); err != nil {
		h.log.Error("DeleteEligibilityMaster failed", "error", err, "eligibilityID", eligibilityID)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Eligibility master deleted successfully"})
}
