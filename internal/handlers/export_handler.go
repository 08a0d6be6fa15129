package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/quiz-content-service/internal/services"
	"github.com/quizhive/quiz-content-service/internal/utils"
	"github.com/quizhive/quiz-content-service/internal/validator"
)

// ExportHandler serves quiz downloads, batch exports and PDF rendering.
type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
	validator     *validator.Validator
}

func NewExportHandler(exportService services.ExportService, v *validator.Validator, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
		validator:     v,
	}
}

// DownloadQuiz serves one quiz's content as a JSON attachment.
func (h *ExportHandler) DownloadQuiz(c *gin.Context) {
	quizID := c.Param("quizId")

	h.LogRequest(c, "downloading quiz", "quiz_id", quizID)

	quiz, err := h.exportService.DownloadQuiz(c.Request.Context(), quizID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", quizID))
	c.JSON(http.StatusOK, quiz)
}

// ExportBatch serves one batch's metadata as an xlsx attachment.
func (h *ExportHandler) ExportBatch(c *gin.Context) {
	batchID := c.Param("batchId")

	h.LogRequest(c, "exporting batch", "batch_id", batchID)

	data, err := h.exportService.ExportBatchXLSX(c.Request.Context(), batchID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", batchID))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GeneratePDF renders the requested quiz document as a PDF attachment.
func (h *ExportHandler) GeneratePDF(c *gin.Context) {
	var req validator.GeneratePDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload", Details: err.Error()})
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "rendering quiz pdf", "doc_id", req.DocID)

	data, err := h.exportService.RenderQuizPDF(c.Request.Context(), req.DocID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=quiz.pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}
