// Package repositories defines the persistence interfaces the services are
// written against. The production implementation lives in the document
// subpackage on top of the docstore adapter; users come from Casdoor.
package repositories

import (
	"context"

	"github.com/quizhive/quiz-content-service/internal/docstore"
	"github.com/quizhive/quiz-content-service/internal/models"
)

// ExamRepository persists organizer documents (one per exam, id = exam slug).
type ExamRepository interface {
	GetByID(ctx context.Context, examID string) (*models.Exam, error)
	// Save replaces the whole exam document. Section and topic appends go
	// through this: read, mutate the embedded arrays, write back.
	Save(ctx context.Context, examID string, exam *models.Exam) error
	Exists(ctx context.Context, examID string) (bool, error)
	List(ctx context.Context) ([]*models.Exam, []string, error)
}

// BatchRepository persists testBatches documents keyed by derived batch ids.
type BatchRepository interface {
	GetByID(ctx context.Context, batchID string) (*models.TestBatch, error)
	Save(ctx context.Context, batchID string, batch *models.TestBatch) error
	Exists(ctx context.Context, batchID string) (bool, error)
}

// QuizRepository persists fullQuizzes documents keyed by deterministic quiz
// document ids.
type QuizRepository interface {
	GetByID(ctx context.Context, quizID string) (*models.QuizContent, error)
	Save(ctx context.Context, quizID string, quiz *models.QuizContent) error
	// PatchFields merges top-level fields into one quiz document.
	PatchFields(ctx context.Context, quizID string, fields map[string]interface{}) error
	GetByNode(ctx context.Context, nodeID string) ([]*models.QuizContent, []string, error)
}

// QuestionRepository appends per-question log documents with generated ids.
type QuestionRepository interface {
	AddLog(ctx context.Context, log *models.QuestionLog) (string, error)
}

// UserRepository resolves operators through the identity provider.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// Repository is the manager interface aggregating all sub-repositories.
type Repository interface {
	Exam() ExamRepository
	Batch() BatchRepository
	Quiz() QuizRepository
	Question() QuestionRepository
	User() UserRepository

	Ping(ctx context.Context) error
}

// IsNotFoundError reports whether err indicates a missing document.
func IsNotFoundError(err error) bool {
	return docstore.IsNotFound(err)
}
