package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/validator"
)

func uploadInfo(title, language, quizID string) QuizUploadInfo {
	return QuizUploadInfo{
		Title:         title,
		Description:   "desc",
		Duration:      60,
		PositiveScore: 2,
		NegativeScore: 0.5,
		QuizID:        quizID,
		Language:      language,
		ExamID:        "ssc_cgl",
		NodeType:      models.NodeSection,
	}
}

func TestUpsertQuizMetadata_FirstUpload(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewBatchService(repo, testLogger())

	if err := svc.UpsertQuizMetadata(ctx, "ssc_cgl_section_quant", uploadInfo("Mock 1", "english", "quiz-en")); err != nil {
		t.Fatalf("UpsertQuizMetadata: %v", err)
	}

	batch, err := repo.Batch().GetByID(ctx, "ssc_cgl_section_quant")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if batch.TotalQuizzes != 1 {
		t.Errorf("totalQuizzes = %d, want 1", batch.TotalQuizzes)
	}
	if len(batch.ExamDetails) != 1 {
		t.Fatalf("examDetails length = %d, want 1", len(batch.ExamDetails))
	}

	entry := batch.ExamDetails[0]
	if entry.PrimaryQuizID != "quiz-en" {
		t.Errorf("primaryQuizId = %q, want %q", entry.PrimaryQuizID, "quiz-en")
	}
	want := []models.LanguageQuizRef{{Language: "english", QuizID: "quiz-en"}}
	if !reflect.DeepEqual(entry.QuizIDs, want) {
		t.Errorf("quizIds = %+v, want %+v", entry.QuizIDs, want)
	}
	if entry.Type != "section" || entry.SectionName != "ssc_cgl_section_quant" {
		t.Errorf("entry type/sectionName = %q/%q", entry.Type, entry.SectionName)
	}
}

func TestUpsertQuizMetadata_SecondLanguageAppends(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewBatchService(repo, testLogger())

	if err := svc.UpsertQuizMetadata(ctx, "batch-1", uploadInfo("Mock 1", "english", "quiz-en")); err != nil {
		t.Fatalf("english upload: %v", err)
	}
	if err := svc.UpsertQuizMetadata(ctx, "batch-1", uploadInfo("Mock 1", "hindi", "quiz-hi")); err != nil {
		t.Fatalf("hindi upload: %v", err)
	}

	batch, err := repo.Batch().GetByID(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(batch.ExamDetails) != 1 {
		t.Fatalf("examDetails length = %d, want 1", len(batch.ExamDetails))
	}
	entry := batch.ExamDetails[0]
	if entry.PrimaryQuizID != "quiz-en" {
		t.Errorf("primaryQuizId = %q, want unchanged %q", entry.PrimaryQuizID, "quiz-en")
	}
	if len(entry.QuizIDs) != 2 {
		t.Fatalf("quizIds length = %d, want 2", len(entry.QuizIDs))
	}
	if entry.FindLanguage("hindi") < 0 {
		t.Errorf("hindi ref missing: %+v", entry.QuizIDs)
	}
}

func TestUpsertQuizMetadata_SameLanguageReplaces(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewBatchService(repo, testLogger())

	if err := svc.UpsertQuizMetadata(ctx, "batch-1", uploadInfo("Mock 1", "english", "quiz-v1")); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if err := svc.UpsertQuizMetadata(ctx, "batch-1", uploadInfo("Mock 1", "english", "quiz-v2")); err != nil {
		t.Fatalf("second upload: %v", err)
	}

	batch, err := repo.Batch().GetByID(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if batch.TotalQuizzes != 1 || len(batch.ExamDetails) != 1 {
		t.Fatalf("batch = %+v, want single entry", batch)
	}
	entry := batch.ExamDetails[0]
	if len(entry.QuizIDs) != 1 || entry.QuizIDs[0].QuizID != "quiz-v2" {
		t.Errorf("quizIds = %+v, want single replaced ref quiz-v2", entry.QuizIDs)
	}
	// First writer keeps the primary reference.
	if entry.PrimaryQuizID != "quiz-v1" {
		t.Errorf("primaryQuizId = %q, want %q", entry.PrimaryQuizID, "quiz-v1")
	}
}

func TestUpsertQuizMetadata_DistinctTitlesAppend(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewBatchService(repo, testLogger())

	for i, title := range []string{"Mock 1", "Mock 2", "mock 1"} {
		if err := svc.UpsertQuizMetadata(ctx, "batch-1", uploadInfo(title, "english", "quiz-"+string(rune('a'+i)))); err != nil {
			t.Fatalf("upload %q: %v", title, err)
		}
	}

	batch, err := repo.Batch().GetByID(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	// Title matching is exact, so "mock 1" is a third quiz.
	if batch.TotalQuizzes != 3 || len(batch.ExamDetails) != 3 {
		t.Errorf("totalQuizzes = %d, entries = %d, want 3/3", batch.TotalQuizzes, len(batch.ExamDetails))
	}
}

func seedBatchWithQuizzes(t *testing.T, repo *testRepo) {
	t.Helper()
	ctx := context.Background()

	for _, q := range []struct{ id, language string }{
		{"quiz-en", "english"},
		{"quiz-hi", "hindi"},
	} {
		err := repo.Quiz().Save(ctx, q.id, &models.QuizContent{
			Title:    "Quiz 7",
			Duration: 60,
			Language: q.language,
		})
		if err != nil {
			t.Fatalf("seed quiz %s: %v", q.id, err)
		}
	}

	batch := &models.TestBatch{
		Type:         "section",
		ExamID:       "ssc_cgl",
		TotalQuizzes: 1,
		ExamDetails: []models.QuizMetadataEntry{{
			Title:         "Quiz 7",
			Description:   "old desc",
			Duration:      60,
			PositiveScore: 2,
			PrimaryQuizID: "quiz-en",
			QuizIDs: []models.LanguageQuizRef{
				{Language: "english", QuizID: "quiz-en"},
				{Language: "hindi", QuizID: "quiz-hi"},
			},
		}},
	}
	if err := repo.Batch().Save(ctx, "batch-1", batch); err != nil {
		t.Fatalf("seed batch: %v", err)
	}
}

func TestUpdateEntryAtIndex_OutOfRange(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewBatchService(repo, testLogger())
	seedBatchWithQuizzes(t, repo)

	before, err := repo.Batch().GetByID(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	err = svc.UpdateEntryAtIndex(ctx, "batch-1", 5, validator.QuizMetadataPatch{Title: "New"})
	if !errors.Is(err, ErrQuizIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrQuizIndexOutOfRange", err)
	}

	after, err := repo.Batch().GetByID(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetByID after: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("batch mutated by failed update:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestUpdateEntryAtIndex_MissingBatch(t *testing.T) {
	svc := NewBatchService(newTestRepo(), testLogger())

	err := svc.UpdateEntryAtIndex(context.Background(), "nope", 0, validator.QuizMetadataPatch{Title: "New"})
	if !errors.Is(err, ErrBatchNotFound) {
		t.Errorf("err = %v, want ErrBatchNotFound", err)
	}
}

func TestUpdateEntryAtIndex_MergeAndFanOut(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewBatchService(repo, testLogger())
	seedBatchWithQuizzes(t, repo)

	patch := validator.QuizMetadataPatch{
		Description:   "new desc",
		NegativeScore: 0.25,
		// Duration omitted: the stored value must survive.
	}
	if err := svc.UpdateEntryAtIndex(ctx, "batch-1", 0, patch); err != nil {
		t.Fatalf("UpdateEntryAtIndex: %v", err)
	}

	batch, err := repo.Batch().GetByID(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	entry := batch.ExamDetails[0]
	if entry.Description != "new desc" || entry.NegativeScore != 0.25 {
		t.Errorf("entry not merged: %+v", entry)
	}
	if entry.Duration != 60 {
		t.Errorf("duration = %d, want untouched 60", entry.Duration)
	}
	if entry.Title != "Quiz 7" {
		t.Errorf("title = %q, want untouched %q", entry.Title, "Quiz 7")
	}

	// Every language variant's document received the same fields.
	for _, quizID := range []string{"quiz-en", "quiz-hi"} {
		quiz, err := repo.Quiz().GetByID(ctx, quizID)
		if err != nil {
			t.Fatalf("quiz %s: %v", quizID, err)
		}
		if quiz.Description != "new desc" || quiz.NegativeScore != 0.25 {
			t.Errorf("quiz %s not patched: %+v", quizID, quiz)
		}
		if quiz.Duration != 60 {
			t.Errorf("quiz %s duration = %d, want untouched 60", quizID, quiz.Duration)
		}
	}
}

func TestUpdateEntryAtIndex_TitlePlaceholder(t *testing.T) {
	tests := []struct {
		name         string
		storedTitle  string
		template     string
		index        int
		wantResolved string
	}{
		{"digits from stored title", "Quiz 7", "Set $$", 0, "Set 7"},
		{"multi digit run", "Mock 12 Final", "Set $$", 0, "Set 12"},
		{"no digits falls back to index", "Algebra Drill", "Set $$", 2, "Set 3"},
		{"no placeholder passes through", "Quiz 7", "Renamed", 0, "Renamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEntryPatch(validator.QuizMetadataPatch{Title: tt.template}, tt.storedTitle, tt.index)
			if got.Title != tt.wantResolved {
				t.Errorf("resolved title = %q, want %q", got.Title, tt.wantResolved)
			}
		})
	}
}

func TestUpdateEntryAtIndex_PlaceholderEndToEnd(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewBatchService(repo, testLogger())
	seedBatchWithQuizzes(t, repo)

	if err := svc.UpdateEntryAtIndex(ctx, "batch-1", 0, validator.QuizMetadataPatch{Title: "Set $$"}); err != nil {
		t.Fatalf("UpdateEntryAtIndex: %v", err)
	}

	batch, err := repo.Batch().GetByID(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got := batch.ExamDetails[0].Title; got != "Set 7" {
		t.Errorf("entry title = %q, want %q", got, "Set 7")
	}
	quiz, err := repo.Quiz().GetByID(ctx, "quiz-en")
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}
	if quiz.Title != "Set 7" {
		t.Errorf("quiz title = %q, want %q", quiz.Title, "Set 7")
	}
}

func TestTogglePremium(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewBatchService(repo, testLogger())
	seedBatchWithQuizzes(t, repo)

	if err := svc.TogglePremium(ctx, "batch-1", 0, true); err != nil {
		t.Fatalf("TogglePremium: %v", err)
	}

	batch, err := repo.Batch().GetByID(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got := batch.ExamDetails[0].IsPremium; got == nil || !*got {
		t.Errorf("entry isPremium = %v, want true", got)
	}
	for _, quizID := range []string{"quiz-en", "quiz-hi"} {
		quiz, err := repo.Quiz().GetByID(ctx, quizID)
		if err != nil {
			t.Fatalf("quiz %s: %v", quizID, err)
		}
		if !quiz.IsPremium {
			t.Errorf("quiz %s isPremium = false, want true", quizID)
		}
	}
}

func TestGetBatch_BackfillsPremiumFromQuiz(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewBatchService(repo, testLogger())
	seedBatchWithQuizzes(t, repo)

	// Mark the stored quiz premium without touching the batch entry.
	if err := repo.Quiz().PatchFields(ctx, "quiz-en", map[string]interface{}{"isPremium": true}); err != nil {
		t.Fatalf("PatchFields: %v", err)
	}

	batch, err := svc.GetBatch(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if got := batch.ExamDetails[0].IsPremium; got == nil || !*got {
		t.Errorf("backfilled isPremium = %v, want true", got)
	}

	// The backfill is response-only; the stored entry stays bare.
	stored, err := repo.Batch().GetByID(ctx, "batch-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.ExamDetails[0].IsPremium != nil {
		t.Errorf("stored isPremium = %v, want nil", stored.ExamDetails[0].IsPremium)
	}
}

func TestGetBatch_NotFound(t *testing.T) {
	svc := NewBatchService(newTestRepo(), testLogger())

	_, err := svc.GetBatch(context.Background(), "missing")
	if !errors.Is(err, ErrBatchNotFound) {
		t.Errorf("err = %v, want ErrBatchNotFound", err)
	}
}
