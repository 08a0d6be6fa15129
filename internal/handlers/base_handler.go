package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizhive/quiz-content-service/internal/services"
	"github.com/quizhive/quiz-content-service/internal/utils"
	"github.com/quizhive/quiz-content-service/internal/validator"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler carries the pieces every handler shares.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs a handler entry with the request-scoped logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

// handleServiceError maps service errors onto HTTP statuses: validation and
// format errors to 400, duplicates to 409, missing documents to 404,
// everything else to 500.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: verrs,
		})
		return
	}

	switch {
	case services.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case services.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case services.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		utils.FromContext(c.Request.Context(), h.logger).Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal server error",
			Details: err.Error(),
		})
	}
}

// requireUserID pulls the authenticated operator id set by the auth
// middleware, writing a 401 when absent.
func (h *BaseHandler) requireUserID(c *gin.Context) (string, bool) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "user not authenticated"})
		return "", false
	}
	return userID, true
}
