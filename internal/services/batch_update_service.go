package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/quizhive/quiz-content-service/internal/events"
	"github.com/quizhive/quiz-content-service/internal/validator"
)

// updateChunkSize bounds how many entry updates run against the store at once.
const updateChunkSize = 5

// batchUpdateService implements BatchUpdateService on top of the batch
// metadata service.
//
// Updates run in fixed-size chunks: entries within a chunk concurrently,
// chunks sequentially. The first failure aborts its chunk and every later
// chunk; entries committed by earlier chunks stay committed and are not
// compensated. Callers re-fetch the batch afterwards to resynchronize.
type batchUpdateService struct {
	batches   BatchService
	logger    *slog.Logger
	publisher events.EventPublisher
}

// NewBatchUpdateService creates a new bulk update orchestrator.
func NewBatchUpdateService(batches BatchService, logger *slog.Logger, publisher events.EventPublisher) BatchUpdateService {
	return &batchUpdateService{
		batches:   batches,
		logger:    logger,
		publisher: publisher,
	}
}

// UpdateAll applies every update to batchID, reporting progress as entries
// complete. It returns how many entries committed, which on error counts the
// successful entries before the failing chunk stopped the run.
//
// Entries in the same chunk each read-modify-write the whole batch document
// concurrently, so their batch-entry writes race with last-write-wins; the
// per-quiz field pushes are independent patches and survive. Callers that
// need every entry write applied must target distinct chunks.
func (s *batchUpdateService) UpdateAll(ctx context.Context, batchID string, updates []validator.EntryUpdate, progress ProgressFunc) (int, error) {
	total := len(updates)
	var completed atomic.Int64

	for start := 0; start < total; start += updateChunkSize {
		end := start + updateChunkSize
		if end > total {
			end = total
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, update := range updates[start:end] {
			update := update
			g.Go(func() error {
				if err := s.batches.UpdateEntryAtIndex(gctx, batchID, update.QuizIndex, update.Fields); err != nil {
					return fmt.Errorf("update of entry %d failed: %w", update.QuizIndex, err)
				}
				done := int(completed.Add(1))
				if progress != nil {
					progress(done, total)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			done := int(completed.Load())
			s.logger.Error("bulk update aborted",
				"batch_id", batchID, "completed", done, "total", total, "error", err)
			return done, err
		}
	}

	s.publishEvent(ctx, events.TypeBatchUpdated, map[string]interface{}{
		"batchId": batchID,
		"updated": total,
	})

	s.logger.Info("bulk update completed", "batch_id", batchID, "total", total)
	return total, nil
}

func (s *batchUpdateService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("failed to publish event", "event_type", eventType, "error", err)
	}
}
