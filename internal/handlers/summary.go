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

type SummaryHandler struct {
	log            *logger.Logger
	summaryService services.SummaryService
	cardService    services.CardService
}

func NewSummaryHandler(log *logger.Logger, summaryService services.SummaryService, cardService services.CardService) *SummaryHandler {
	return &SummaryHandler{
		log:            log.With("handler", "SummaryHandler"),
		summaryService: summaryService,
		cardService:    cardService,
	}
}

func (h *SummaryHandler) GenerateSummary(c *gin.Context) {
	var body struct {
		ProductID uuid.UUID `json:"productID"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", errors.New("productID is required"))
		return
	}
	generated, err := h.summaryService.GenerateSummary(c.Request.Context(), body.ProductID)
	if err != nil {
		h.log.Error("GenerateSummary failed", "error", err, "productID", body.ProductID)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "summary": generated})
}

func (h *SummaryHandler) StoreSummary(c *gin.Context) {
	var body struct {
		Summary types.GeneratedSummary `json:"summary"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	summary, created, err := h.summaryService.StoreSummary(c.Request.Context(), nil, &body.Summary)
	if err != nil {
		h.log.Error("StoreSummary failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	message := "Brochure summary updated successfully"
	if created {
		message = "Brochure summary created successfully"
	}
	response.RespondCreated(c, gin.H{"message": message, "summary": summary})
}

func (h *SummaryHandler) GetSummaryByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("productId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	summary, err := h.summaryService.GetSummaryByProduct(c.Request.Context(), nil, productID)
	if err != nil {
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Brochure summary fetched successfully", "summary": summary})
}

func (h *SummaryHandler) GetAllSummaries(c *gin.Context) {
	summaries, err := h.summaryService.GetAllSummaries(c.Request.Context(), nil)
	if err != nil {
		h.log.Error("GetAllSummaries failed", "error", err)
		response.RespondClassified(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "summaries": summaries})
}

func (h *SummaryHandler) DeleteSummaryByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("productId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	deleted, err := h.summaryService.DeleteSummaryByProduct(c.Request.Context(), nil, productID)
	if err != nil {
		h.log.Error("DeleteSummaryByProduct failed", "error", err, "productID", productID)
		response.RespondClassified(c, err)
		return
	}
	if deleted == 0 {
		response.RespondOK(c, gin.H{"message": "No brochure summary found to delete"})
		return
	}
	response.RespondOK(c, gin.H{"success": true, "message": "Brochure summary deleted successfully"})
}

// DownloadSummaryPDF streams the rendered PDF for a stored summary.
func (h *SummaryHandler) DownloadSummaryPDF(c *gin.Context) {
	summaryID, err := uuid.Parse(c.Query("summaryId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_summary_id", err)
		return
	}
	out, err := h.summaryService.GenerateSummaryPDF(c.Request.Context(), summaryID)
	if err != nil {
		h.log.Error("DownloadSummaryPDF failed", "error", err, "summaryID", summaryID)
		response.RespondClassified(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="brochure-summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", out)
}

// DownloadSummaryCard streams the PNG share card for a product's summary.
func (h *SummaryHandler) DownloadSummaryCard(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("productId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	buf, err := h.cardService.GenerateSummaryCard(c.Request.Context(), nil, productID)
	if err != nil {
		h.log.Error("DownloadSummaryCard failed", "error", err, "productID", productID)
		response.RespondClassified(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="brochure-summary.png"`)
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
