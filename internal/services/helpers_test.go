package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/quizhive/quiz-content-service/internal/docstore"
	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/repositories"
	"github.com/quizhive/quiz-content-service/internal/repositories/document"
	"github.com/quizhive/quiz-content-service/internal/validator"
)

// testRepo wires the document repositories to an in-memory store, with a
// canned user repository so no identity provider is needed.
type testRepo struct {
	store *docstore.MemoryStore

	exam     repositories.ExamRepository
	batch    repositories.BatchRepository
	quiz     repositories.QuizRepository
	question repositories.QuestionRepository
	user     repositories.UserRepository
}

func newTestRepo() *testRepo {
	store := docstore.NewMemoryStore()
	return &testRepo{
		store:    store,
		exam:     document.NewExamDocument(store),
		batch:    document.NewBatchDocument(store),
		quiz:     document.NewQuizDocument(store),
		question: document.NewQuestionDocument(store),
		user:     &stubUserRepo{},
	}
}

func (r *testRepo) Exam() repositories.ExamRepository         { return r.exam }
func (r *testRepo) Batch() repositories.BatchRepository       { return r.batch }
func (r *testRepo) Quiz() repositories.QuizRepository         { return r.quiz }
func (r *testRepo) Question() repositories.QuestionRepository { return r.question }
func (r *testRepo) User() repositories.UserRepository         { return r.user }
func (r *testRepo) Ping(ctx context.Context) error            { return r.store.Ping(ctx) }

type stubUserRepo struct{}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id, FullName: "Test Uploader", Role: models.RoleUploader}, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return &models.User{ID: "user-1", Email: email, Role: models.RoleUploader}, nil
}

func (s *stubUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	return true, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testValidator() *validator.Validator {
	return validator.New()
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

// sampleQuizJSON builds a structurally valid quiz upload.
func sampleQuizJSON(t *testing.T, title string) []byte {
	t.Helper()
	return mustJSON(t, map[string]interface{}{
		"title":         title,
		"description":   "practice set",
		"duration":      60,
		"positiveScore": 2.0,
		"negativeScore": 0.5,
		"sections": []map[string]interface{}{
			{
				"name": "Reasoning",
				"questions": []map[string]interface{}{
					{
						"question":      "2 + 2 = ?",
						"options":       []string{"3", "4", "5", "6"},
						"correctAnswer": 1,
						"explanation":   "Basic addition.",
					},
					{
						"question":      "5 - 3 = ?",
						"options":       []string{"1", "2", "3", "4"},
						"correctAnswer": 1,
						"explanation":   "Basic subtraction.",
					},
				},
			},
		},
	})
}
