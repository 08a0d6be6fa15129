package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/quiz-content-service/internal/services"
	"github.com/quizhive/quiz-content-service/internal/utils"
)

// OrganizerHandler serves the exam / section / topic hierarchy endpoints.
type OrganizerHandler struct {
	BaseHandler
	organizerService services.OrganizerService
}

func NewOrganizerHandler(organizerService services.OrganizerService, logger utils.Logger) *OrganizerHandler {
	return &OrganizerHandler{
		BaseHandler:      NewBaseHandler(logger),
		organizerService: organizerService,
	}
}

// CreateExam creates a new exam with its full-mock and pyq batches.
func (h *OrganizerHandler) CreateExam(c *gin.Context) {
	var req services.CreateExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload", Details: err.Error()})
		return
	}

	h.LogRequest(c, "creating exam", "name", req.Name)

	result, err := h.organizerService.CreateExam(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"examId":  result.ExamID,
		"batchIds": gin.H{
			"fullMock": result.FullMockBatchID,
			"pyqs":     result.PYQBatchID,
		},
	})
}

// CreateSection adds a section under an existing exam.
func (h *OrganizerHandler) CreateSection(c *gin.Context) {
	var req services.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload", Details: err.Error()})
		return
	}

	h.LogRequest(c, "creating section", "exam_id", req.ExamID, "name", req.Name)

	sectionID, err := h.organizerService.CreateSection(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "sectionId": sectionID})
}

// CreateTopic adds a topic under an existing section.
func (h *OrganizerHandler) CreateTopic(c *gin.Context) {
	var req services.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request payload", Details: err.Error()})
		return
	}

	h.LogRequest(c, "creating topic", "exam_id", req.ExamID, "section_id", req.SectionID, "name", req.Name)

	topicID, err := h.organizerService.CreateTopic(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "topicId": topicID})
}

// ListExams returns every exam with its embedded hierarchy.
func (h *OrganizerHandler) ListExams(c *gin.Context) {
	summaries, err := h.organizerService.ListExams(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exams": summaries})
}
