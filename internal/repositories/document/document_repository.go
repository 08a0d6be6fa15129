// Package document implements the repositories on top of the docstore
// adapter.
package document

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/quizhive/quiz-content-service/internal/docstore"
	"github.com/quizhive/quiz-content-service/internal/repositories"
	"github.com/quizhive/quiz-content-service/internal/repositories/casdoor"
)

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	Store         docstore.Store
	RedisClient   *redis.Client
	CasdoorConfig casdoor.CasdoorConfig
}

// DocumentRepository implements the main Repository interface.
type DocumentRepository struct {
	store docstore.Store

	exam     repositories.ExamRepository
	batch    repositories.BatchRepository
	quiz     repositories.QuizRepository
	question repositories.QuestionRepository
	user     repositories.UserRepository
}

// NewDocumentRepository creates a repository manager with all
// sub-repositories wired to the given store.
func NewDocumentRepository(config RepositoryConfig) repositories.Repository {
	return &DocumentRepository{
		store:    config.Store,
		exam:     NewExamDocument(config.Store),
		batch:    NewBatchDocument(config.Store),
		quiz:     NewQuizDocument(config.Store),
		question: NewQuestionDocument(config.Store),
		user:     casdoor.NewUserCasdoor(config.CasdoorConfig, config.RedisClient),
	}
}

func (r *DocumentRepository) Exam() repositories.ExamRepository         { return r.exam }
func (r *DocumentRepository) Batch() repositories.BatchRepository       { return r.batch }
func (r *DocumentRepository) Quiz() repositories.QuizRepository         { return r.quiz }
func (r *DocumentRepository) Question() repositories.QuestionRepository { return r.question }
func (r *DocumentRepository) User() repositories.UserRepository         { return r.user }

func (r *DocumentRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
