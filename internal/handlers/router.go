package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/quizhive/quiz-content-service/internal/config"
	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/repositories"
	"github.com/quizhive/quiz-content-service/internal/services"
	"github.com/quizhive/quiz-content-service/internal/utils"
	"github.com/quizhive/quiz-content-service/internal/validator"
)

type HandlerManager struct {
	organizerHandler *OrganizerHandler
	quizHandler      *QuizHandler
	exportHandler    *ExportHandler
	authMiddleware   *CasdoorAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	logger utils.Logger,
	casdoorConfig config.CasdoorConfig,
	userRepo repositories.UserRepository,
) *HandlerManager {
	authMiddleware := NewCasdoorAuthMiddleware(casdoorConfig, userRepo)

	return &HandlerManager{
		organizerHandler: NewOrganizerHandler(serviceManager.Organizer(), logger),
		quizHandler:      NewQuizHandler(serviceManager.Upload(), serviceManager.Batch(), serviceManager.BatchUpdate(), logger),
		exportHandler:    NewExportHandler(serviceManager.Export(), validator, logger),
		authMiddleware:   authMiddleware,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.Use(hm.authMiddleware.AuthMiddleware())
	{
		// Hierarchy routes. Only admins restructure the exam tree.
		organizer := api.Group("/organizer")
		{
			organizer.POST("/exam", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.organizerHandler.CreateExam)
			organizer.POST("/section", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.organizerHandler.CreateSection)
			organizer.POST("/topic", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.organizerHandler.CreateTopic)
			organizer.GET("", hm.organizerHandler.ListExams)
		}

		// Quiz upload and batch metadata routes
		quiz := api.Group("/quiz")
		quiz.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleUploader, models.RoleAdmin))
		{
			quiz.POST("/upload", hm.quizHandler.UploadQuiz)
			quiz.POST("/update", hm.quizHandler.UpdateQuiz)
			quiz.POST("/update-all", hm.quizHandler.UpdateAll)
			quiz.POST("/premium", hm.quizHandler.TogglePremium)
		}

		batches := api.Group("/batches")
		{
			batches.GET("/:batchId", hm.quizHandler.GetBatch)
			batches.GET("/:batchId/export", hm.exportHandler.ExportBatch)
		}

		api.GET("/download/:quizId", hm.exportHandler.DownloadQuiz)
		api.POST("/generate-pdf", hm.exportHandler.GeneratePDF)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "quiz-content-service",
		})
	})
}
