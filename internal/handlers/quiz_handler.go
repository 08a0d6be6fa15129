package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/quiz-content-service/internal/services"
	"github.com/quizhive/quiz-content-service/internal/utils"
)

// QuizHandler serves quiz upload and batch metadata endpoints.
type QuizHandler struct {
	BaseHandler
	uploadService      services.UploadService
	batchService       services.BatchService
	batchUpdateService services.BatchUpdateService
}

func NewQuizHandler(
	uploadService services.UploadService,
	batchService services.BatchService,
	batchUpdateService services.BatchUpdateService,
	logger utils.Logger,
) *QuizHandler {
	return &QuizHandler{
		BaseHandler:        NewBaseHandler(logger),
		uploadService:      uploadService,
		batchService:       batchService,
		batchUpdateService: batchUpdateService,
	}
}

// UploadQuiz ingests one quiz JSON file posted as multipart form data.
func (h *QuizHandler) UploadQuiz(c *gin.Context) {
	var req services.UploadQuizRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form fields", Details: err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "quiz file missing", Details: err.Error()})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to open quiz file", Details: err.Error()})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read quiz file", Details: err.Error()})
		return
	}

	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	h.LogRequest(c, "uploading quiz",
		"node_id", req.NodeID, "node_type", req.NodeType, "language", req.Language, "file", fileHeader.Filename)

	quizID, err := h.uploadService.Upload(c.Request.Context(), content, &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "quizId": quizID})
}

// UpdateQuiz edits one batch entry, addressed by its position.
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	var req services.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload", Details: err.Error()})
		return
	}

	h.LogRequest(c, "updating batch entry", "batch_id", req.BatchID, "quiz_index", req.QuizIndex)

	err := h.batchService.UpdateEntryAtIndex(c.Request.Context(), req.BatchID, req.QuizIndex, req.UpdatedData)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateAll applies a bulk edit across one batch. A failure partway leaves
// earlier chunks committed; the response carries how many entries went
// through either way.
func (h *QuizHandler) UpdateAll(c *gin.Context) {
	var req services.UpdateAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload", Details: err.Error()})
		return
	}

	h.LogRequest(c, "bulk updating batch", "batch_id", req.BatchID, "updates", len(req.Updates))

	completed, err := h.batchUpdateService.UpdateAll(c.Request.Context(), req.BatchID, req.Updates, nil)
	if err != nil {
		status := http.StatusInternalServerError
		if services.IsNotFound(err) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"success":   false,
			"completed": completed,
			"error":     err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "completed": completed})
}

// TogglePremium flips the premium flag on one batch entry.
func (h *QuizHandler) TogglePremium(c *gin.Context) {
	var req services.TogglePremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload", Details: err.Error()})
		return
	}

	h.LogRequest(c, "toggling premium", "batch_id", req.BatchID, "quiz_index", req.QuizIndex, "is_premium", req.IsPremium)

	err := h.batchService.TogglePremium(c.Request.Context(), req.BatchID, req.QuizIndex, req.IsPremium)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetBatch returns one batch document.
func (h *QuizHandler) GetBatch(c *gin.Context) {
	batchID := c.Param("batchId")

	batch, err := h.batchService.GetBatch(c.Request.Context(), batchID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, batch)
}
