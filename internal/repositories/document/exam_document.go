package document

import (
	"context"
	"fmt"

	"github.com/quizhive/quiz-content-service/internal/docstore"
	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/repositories"
)

type examDocument struct {
	store docstore.Store
}

// NewExamDocument creates the organizer-collection repository.
func NewExamDocument(store docstore.Store) repositories.ExamRepository {
	return &examDocument{store: store}
}

func (r *examDocument) GetByID(ctx context.Context, examID string) (*models.Exam, error) {
	var exam models.Exam
	if err := r.store.Get(ctx, docstore.CollectionOrganizer, examID, &exam); err != nil {
		if docstore.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get exam %s: %w", examID, err)
	}
	return &exam, nil
}

func (r *examDocument) Save(ctx context.Context, examID string, exam *models.Exam) error {
	if err := r.store.Set(ctx, docstore.CollectionOrganizer, examID, exam); err != nil {
		return fmt.Errorf("failed to save exam %s: %w", examID, err)
	}
	return nil
}

func (r *examDocument) Exists(ctx context.Context, examID string) (bool, error) {
	exists, err := r.store.Exists(ctx, docstore.CollectionOrganizer, examID)
	if err != nil {
		return false, fmt.Errorf("failed to check exam %s: %w", examID, err)
	}
	return exists, nil
}

func (r *examDocument) List(ctx context.Context) ([]*models.Exam, []string, error) {
	docs, err := r.store.List(ctx, docstore.CollectionOrganizer)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list exams: %w", err)
	}

	exams := make([]*models.Exam, 0, len(docs))
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		var exam models.Exam
		if err := doc.Decode(&exam); err != nil {
			return nil, nil, fmt.Errorf("failed to decode exam %s: %w", doc.ID, err)
		}
		exams = append(exams, &exam)
		ids = append(ids, doc.ID)
	}
	return exams, ids, nil
}
