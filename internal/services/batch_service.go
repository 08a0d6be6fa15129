package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/repositories"
	"github.com/quizhive/quiz-content-service/internal/validator"
)

// titlePlaceholder in an incoming title template is replaced with the quiz's
// sequence number (first digit run of the existing primary title, falling back
// to index+1).
const titlePlaceholder = "$$"

// batchService implements BatchService on the testBatches collection.
//
// Batch writes are whole-document replaces: read, mutate the entries array in
// memory, write back. Entries are addressed by array index; there is no
// deletion or reordering, so indexes stay stable across edits.
type batchService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

// NewBatchService creates a new batch metadata service.
func NewBatchService(repo repositories.Repository, logger *slog.Logger) BatchService {
	return &batchService{repo: repo, logger: logger}
}

// UpsertQuizMetadata folds one upload's summary into its batch document,
// creating the batch if it does not exist yet.
//
// Entries are matched by exact title. A new title appends an entry; a known
// title merges: the ref for info.Language is replaced in place (or appended
// for a new language), primaryQuizId is set only when still empty, and the
// shared display fields are refreshed to the latest upload's values.
func (s *batchService) UpsertQuizMetadata(ctx context.Context, batchID string, info QuizUploadInfo) error {
	now := time.Now().UTC()

	batch, err := s.repo.Batch().GetByID(ctx, batchID)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to load batch %s: %w", batchID, err)
		}
		batch = &models.TestBatch{
			Type:        string(info.NodeType),
			ExamID:      info.ExamID,
			SectionName: batchID,
			CreatedAt:   now,
			ExamDetails: []models.QuizMetadataEntry{},
		}
	}

	if i := batch.FindEntryByTitle(info.Title); i >= 0 {
		entry := &batch.ExamDetails[i]

		// First writer wins for the primary reference.
		if entry.PrimaryQuizID == "" {
			entry.PrimaryQuizID = info.QuizID
		}

		ref := models.LanguageQuizRef{Language: info.Language, QuizID: info.QuizID}
		if li := entry.FindLanguage(info.Language); li >= 0 {
			entry.QuizIDs[li] = ref
		} else {
			entry.QuizIDs = append(entry.QuizIDs, ref)
		}

		entry.Description = info.Description
		entry.Duration = info.Duration
		entry.PositiveScore = info.PositiveScore
		entry.NegativeScore = info.NegativeScore
		entry.ThumbnailLink = info.ThumbnailLink
		entry.SectionName = batchID
		entry.Type = string(info.NodeType)
	} else {
		batch.ExamDetails = append(batch.ExamDetails, models.QuizMetadataEntry{
			Title:         info.Title,
			Description:   info.Description,
			Duration:      info.Duration,
			PositiveScore: info.PositiveScore,
			NegativeScore: info.NegativeScore,
			ThumbnailLink: info.ThumbnailLink,
			PrimaryQuizID: info.QuizID,
			QuizIDs:       []models.LanguageQuizRef{{Language: info.Language, QuizID: info.QuizID}},
			SectionName:   batchID,
			Type:          string(info.NodeType),
		})
		batch.TotalQuizzes++
	}

	batch.UpdatedAt = now
	batch.Version++

	if err := s.repo.Batch().Save(ctx, batchID, batch); err != nil {
		return fmt.Errorf("failed to save batch %s: %w", batchID, err)
	}

	s.logger.Info("batch metadata upserted",
		"batch_id", batchID, "title", info.Title, "language", info.Language, "total_quizzes", batch.TotalQuizzes)
	return nil
}

// UpdateEntryAtIndex edits one batch entry in place and pushes the resolved
// fields to every language variant's quiz document.
//
// The merge keeps an existing value unless the patch carries a truthy one, so
// this path cannot reset a field to its zero value. The batch write commits
// before the quiz documents are patched; a fan-out failure leaves the batch
// updated and the error is surfaced without rollback.
func (s *batchService) UpdateEntryAtIndex(ctx context.Context, batchID string, index int, patch validator.QuizMetadataPatch) error {
	batch, err := s.repo.Batch().GetByID(ctx, batchID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrBatchNotFound
		}
		return fmt.Errorf("failed to load batch %s: %w", batchID, err)
	}
	if index < 0 || index >= len(batch.ExamDetails) {
		return ErrQuizIndexOutOfRange
	}

	entry := &batch.ExamDetails[index]
	resolved := resolveEntryPatch(patch, entry.Title, index)

	if resolved.Title != "" {
		entry.Title = resolved.Title
	}
	if resolved.Description != "" {
		entry.Description = resolved.Description
	}
	if resolved.Duration != 0 {
		entry.Duration = resolved.Duration
	}
	if resolved.PositiveScore != 0 {
		entry.PositiveScore = resolved.PositiveScore
	}
	if resolved.NegativeScore != 0 {
		entry.NegativeScore = resolved.NegativeScore
	}

	batch.UpdatedAt = time.Now().UTC()
	batch.Version++

	if err := s.repo.Batch().Save(ctx, batchID, batch); err != nil {
		return fmt.Errorf("failed to save batch %s: %w", batchID, err)
	}

	fields := truthyPatchFields(resolved)
	if len(fields) == 0 {
		return nil
	}

	for _, quizID := range entryQuizIDs(entry) {
		if err := s.repo.Quiz().PatchFields(ctx, quizID, fields); err != nil {
			return fmt.Errorf("failed to patch quiz %s: %w", quizID, err)
		}
	}

	s.logger.Info("batch entry updated", "batch_id", batchID, "quiz_index", index)
	return nil
}

// TogglePremium flips the premium flag on one entry and on every language
// variant's quiz document.
func (s *batchService) TogglePremium(ctx context.Context, batchID string, index int, isPremium bool) error {
	batch, err := s.repo.Batch().GetByID(ctx, batchID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrBatchNotFound
		}
		return fmt.Errorf("failed to load batch %s: %w", batchID, err)
	}
	if index < 0 || index >= len(batch.ExamDetails) {
		return ErrQuizIndexOutOfRange
	}

	entry := &batch.ExamDetails[index]
	entry.IsPremium = &isPremium
	batch.UpdatedAt = time.Now().UTC()
	batch.Version++

	if err := s.repo.Batch().Save(ctx, batchID, batch); err != nil {
		return fmt.Errorf("failed to save batch %s: %w", batchID, err)
	}

	fields := map[string]interface{}{"isPremium": isPremium}
	for _, quizID := range entryQuizIDs(entry) {
		if err := s.repo.Quiz().PatchFields(ctx, quizID, fields); err != nil {
			return fmt.Errorf("failed to patch quiz %s: %w", quizID, err)
		}
	}

	s.logger.Info("premium flag toggled", "batch_id", batchID, "quiz_index", index, "is_premium", isPremium)
	return nil
}

// GetBatch fetches one batch document. Entries written before the premium flag
// existed carry no isPremium; it is backfilled from the primary quiz document
// for the response without being persisted.
func (s *batchService) GetBatch(ctx context.Context, batchID string) (*models.TestBatch, error) {
	batch, err := s.repo.Batch().GetByID(ctx, batchID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to load batch %s: %w", batchID, err)
	}

	for i := range batch.ExamDetails {
		entry := &batch.ExamDetails[i]
		if entry.IsPremium != nil || entry.PrimaryQuizID == "" {
			continue
		}
		quiz, err := s.repo.Quiz().GetByID(ctx, entry.PrimaryQuizID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				continue
			}
			return nil, fmt.Errorf("failed to load quiz %s: %w", entry.PrimaryQuizID, err)
		}
		premium := quiz.IsPremium
		entry.IsPremium = &premium
	}

	return batch, nil
}

// resolveEntryPatch applies the title templating rule: titlePlaceholder in the
// incoming title is replaced with the first digit run of the entry's current
// title, or index+1 when the current title has no digits.
func resolveEntryPatch(patch validator.QuizMetadataPatch, currentTitle string, index int) validator.QuizMetadataPatch {
	if strings.Contains(patch.Title, titlePlaceholder) {
		seq := firstDigitRun(currentTitle)
		if seq == "" {
			seq = strconv.Itoa(index + 1)
		}
		patch.Title = strings.ReplaceAll(patch.Title, titlePlaceholder, seq)
	}
	return patch
}

func firstDigitRun(s string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}

// truthyPatchFields collects the fields to push to quiz documents, skipping
// zero values so an omitted field never erases stored content.
func truthyPatchFields(patch validator.QuizMetadataPatch) map[string]interface{} {
	fields := make(map[string]interface{})
	if patch.Title != "" {
		fields["title"] = patch.Title
	}
	if patch.Description != "" {
		fields["description"] = patch.Description
	}
	if patch.Duration != 0 {
		fields["duration"] = patch.Duration
	}
	if patch.PositiveScore != 0 {
		fields["positiveScore"] = patch.PositiveScore
	}
	if patch.NegativeScore != 0 {
		fields["negativeScore"] = patch.NegativeScore
	}
	return fields
}

// entryQuizIDs returns every quiz document id an entry references, primary
// first, deduplicated. The primary normally appears in QuizIDs as well.
func entryQuizIDs(entry *models.QuizMetadataEntry) []string {
	seen := make(map[string]bool, len(entry.QuizIDs)+1)
	ids := make([]string, 0, len(entry.QuizIDs)+1)

	if entry.PrimaryQuizID != "" {
		seen[entry.PrimaryQuizID] = true
		ids = append(ids, entry.PrimaryQuizID)
	}
	for _, ref := range entry.QuizIDs {
		if ref.QuizID == "" || seen[ref.QuizID] {
			continue
		}
		seen[ref.QuizID] = true
		ids = append(ids, ref.QuizID)
	}
	return ids
}
