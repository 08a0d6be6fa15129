package document

import (
	"context"
	"fmt"

	"github.com/quizhive/quiz-content-service/internal/docstore"
	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/repositories"
)

type batchDocument struct {
	store docstore.Store
}

// NewBatchDocument creates the testBatches-collection repository.
func NewBatchDocument(store docstore.Store) repositories.BatchRepository {
	return &batchDocument{store: store}
}

func (r *batchDocument) GetByID(ctx context.Context, batchID string) (*models.TestBatch, error) {
	var batch models.TestBatch
	if err := r.store.Get(ctx, docstore.CollectionTestBatches, batchID, &batch); err != nil {
		if docstore.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get batch %s: %w", batchID, err)
	}
	return &batch, nil
}

func (r *batchDocument) Save(ctx context.Context, batchID string, batch *models.TestBatch) error {
	if err := r.store.Set(ctx, docstore.CollectionTestBatches, batchID, batch); err != nil {
		return fmt.Errorf("failed to save batch %s: %w", batchID, err)
	}
	return nil
}

func (r *batchDocument) Exists(ctx context.Context, batchID string) (bool, error) {
	exists, err := r.store.Exists(ctx, docstore.CollectionTestBatches, batchID)
	if err != nil {
		return false, fmt.Errorf("failed to check batch %s: %w", batchID, err)
	}
	return exists, nil
}
