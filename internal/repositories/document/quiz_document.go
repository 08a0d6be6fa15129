package document

import (
	"context"
	"fmt"

	"github.com/quizhive/quiz-content-service/internal/docstore"
	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/repositories"
)

type quizDocument struct {
	store docstore.Store
}

// NewQuizDocument creates the fullQuizzes-collection repository.
func NewQuizDocument(store docstore.Store) repositories.QuizRepository {
	return &quizDocument{store: store}
}

func (r *quizDocument) GetByID(ctx context.Context, quizID string) (*models.QuizContent, error) {
	var quiz models.QuizContent
	if err := r.store.Get(ctx, docstore.CollectionFullQuizzes, quizID, &quiz); err != nil {
		if docstore.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", quizID, err)
	}
	return &quiz, nil
}

func (r *quizDocument) Save(ctx context.Context, quizID string, quiz *models.QuizContent) error {
	if err := r.store.Set(ctx, docstore.CollectionFullQuizzes, quizID, quiz); err != nil {
		return fmt.Errorf("failed to save quiz %s: %w", quizID, err)
	}
	return nil
}

func (r *quizDocument) PatchFields(ctx context.Context, quizID string, fields map[string]interface{}) error {
	if err := r.store.Patch(ctx, docstore.CollectionFullQuizzes, quizID, fields); err != nil {
		if docstore.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("failed to patch quiz %s: %w", quizID, err)
	}
	return nil
}

func (r *quizDocument) GetByNode(ctx context.Context, nodeID string) ([]*models.QuizContent, []string, error) {
	docs, err := r.store.QueryByField(ctx, docstore.CollectionFullQuizzes, "nodeId", nodeID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query quizzes for node %s: %w", nodeID, err)
	}

	quizzes := make([]*models.QuizContent, 0, len(docs))
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		var quiz models.QuizContent
		if err := doc.Decode(&quiz); err != nil {
			return nil, nil, fmt.Errorf("failed to decode quiz %s: %w", doc.ID, err)
		}
		quizzes = append(quizzes, &quiz)
		ids = append(ids, doc.ID)
	}
	return quizzes, ids, nil
}
