package services

import (
	"context"

	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateExamRequest = validator.CreateExamRequest
type CreateSectionRequest = validator.CreateSectionRequest
type CreateTopicRequest = validator.CreateTopicRequest
type UpdateQuizRequest = validator.UpdateQuizRequest
type UpdateAllRequest = validator.UpdateAllRequest
type TogglePremiumRequest = validator.TogglePremiumRequest
type UploadQuizRequest = validator.UploadQuizRequest

// CreateExamResult reports the ids minted for a new exam and its two
// exam-level batches.
type CreateExamResult struct {
	ExamID          string `json:"examId"`
	FullMockBatchID string `json:"fullMockBatchId"`
	PYQBatchID      string `json:"pyqBatchId"`
}

// QuizUploadInfo is the metadata summary one upload contributes to its batch.
type QuizUploadInfo struct {
	Title         string
	Description   string
	Duration      int
	PositiveScore float64
	NegativeScore float64
	ThumbnailLink string
	QuizID        string
	Language      string
	ExamID        string
	NodeType      models.NodeType
}

// ExamSummary pairs an organizer document with its id for listing.
type ExamSummary struct {
	ID   string       `json:"id"`
	Exam *models.Exam `json:"exam"`
}

// ProgressFunc reports bulk-update progress as completed entries out of total.
type ProgressFunc func(completed, total int)

// ===== SERVICE INTERFACES =====

// OrganizerService manages the exam / section / topic hierarchy.
type OrganizerService interface {
	CreateExam(ctx context.Context, req *CreateExamRequest) (*CreateExamResult, error)
	CreateSection(ctx context.Context, req *CreateSectionRequest) (string, error)
	CreateTopic(ctx context.Context, req *CreateTopicRequest) (string, error)
	ListExams(ctx context.Context) ([]ExamSummary, error)
}

// BatchService manages testBatches documents and keeps quiz documents in sync
// with metadata edits.
type BatchService interface {
	UpsertQuizMetadata(ctx context.Context, batchID string, info QuizUploadInfo) error
	UpdateEntryAtIndex(ctx context.Context, batchID string, index int, patch validator.QuizMetadataPatch) error
	TogglePremium(ctx context.Context, batchID string, index int, isPremium bool) error
	GetBatch(ctx context.Context, batchID string) (*models.TestBatch, error)
}

// UploadService orchestrates a quiz file upload end to end.
type UploadService interface {
	Upload(ctx context.Context, content []byte, req *UploadQuizRequest, userID string) (string, error)
}

// BatchUpdateService applies bulk metadata edits across one batch.
type BatchUpdateService interface {
	UpdateAll(ctx context.Context, batchID string, updates []validator.EntryUpdate, progress ProgressFunc) (int, error)
}

// ExportService serves quiz downloads and batch exports.
type ExportService interface {
	DownloadQuiz(ctx context.Context, quizID string) (*models.DownloadableQuiz, error)
	ExportBatchXLSX(ctx context.Context, batchID string) ([]byte, error)
	RenderQuizPDF(ctx context.Context, quizID string) ([]byte, error)
}

// ServiceManager aggregates all services and owns their lifecycle.
type ServiceManager interface {
	Organizer() OrganizerService
	Batch() BatchService
	Upload() UploadService
	BatchUpdate() BatchUpdateService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
