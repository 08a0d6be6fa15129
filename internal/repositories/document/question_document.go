package document

import (
	"context"
	"fmt"

	"github.com/quizhive/quiz-content-service/internal/docstore"
	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/repositories"
)

type questionDocument struct {
	store docstore.Store
}

// NewQuestionDocument creates the questions-collection repository. Entries
// are append-only upload logs; superseded logs from re-uploads are never
// cleaned up.
func NewQuestionDocument(store docstore.Store) repositories.QuestionRepository {
	return &questionDocument{store: store}
}

func (r *questionDocument) AddLog(ctx context.Context, log *models.QuestionLog) (string, error) {
	id, err := r.store.Add(ctx, docstore.CollectionQuestions, log)
	if err != nil {
		return "", fmt.Errorf("failed to add question log: %w", err)
	}
	return id, nil
}
