package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/quizhive/quiz-content-service/internal/models"
)

func seedQuizContent(t *testing.T, repo *testRepo, quizID string) *models.QuizContent {
	t.Helper()
	quiz := &models.QuizContent{
		Title:         "Mock 1",
		Description:   "practice set",
		Duration:      60,
		PositiveScore: 2,
		NegativeScore: 0.5,
		Sections: []models.QuizSection{{
			Name: "Reasoning",
			Questions: []models.QuizQuestion{{
				Question:      "2 + 2 = ?",
				Options:       []string{"3", "4", "5", "6"},
				CorrectAnswer: 1,
				Explanation:   "Basic addition.",
				QuestionID:    "q-1",
			}},
		}},
		ExamID:     "ssc_cgl",
		NodeID:     "ssc_cgl_section_quant",
		NodeType:   models.NodeSection,
		Language:   "english",
		UploadedBy: "user-1",
	}
	if err := repo.Quiz().Save(context.Background(), quizID, quiz); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz
}

func TestDownloadQuiz_StripsServerFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewExportService(repo, testLogger())
	seedQuizContent(t, repo, "quiz-1")

	got, err := svc.DownloadQuiz(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("DownloadQuiz: %v", err)
	}
	if got.Title != "Mock 1" || got.Duration != 60 {
		t.Errorf("download = %+v", got)
	}
	if len(got.Sections) != 1 || len(got.Sections[0].Questions) != 1 {
		t.Fatalf("sections = %+v", got.Sections)
	}

	data := mustJSON(t, got)
	for _, field := range []string{"uploadedBy", "nodeId", "examId", "language"} {
		if bytes.Contains(data, []byte(field)) {
			t.Errorf("download shape leaks %q: %s", field, data)
		}
	}
}

func TestDownloadQuiz_NotFound(t *testing.T) {
	svc := NewExportService(newTestRepo(), testLogger())

	_, err := svc.DownloadQuiz(context.Background(), "missing")
	if !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestExportBatchXLSX(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	svc := NewExportService(repo, testLogger())
	seedBatchWithQuizzes(t, repo)

	data, err := svc.ExportBatchXLSX(ctx, "batch-1")
	if err != nil {
		t.Fatalf("ExportBatchXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not parse: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue("Sheet1", "B2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if title != "Quiz 7" {
		t.Errorf("B2 = %q, want %q", title, "Quiz 7")
	}
	languages, err := f.GetCellValue("Sheet1", "H2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if languages != "english, hindi" {
		t.Errorf("H2 = %q, want %q", languages, "english, hindi")
	}
}

func TestExportBatchXLSX_NotFound(t *testing.T) {
	svc := NewExportService(newTestRepo(), testLogger())

	_, err := svc.ExportBatchXLSX(context.Background(), "missing")
	if !errors.Is(err, ErrBatchNotFound) {
		t.Errorf("err = %v, want ErrBatchNotFound", err)
	}
}

func TestRenderQuizPDF(t *testing.T) {
	repo := newTestRepo()
	svc := NewExportService(repo, testLogger())
	seedQuizContent(t, repo, "quiz-1")

	data, err := svc.RenderQuizPDF(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("RenderQuizPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", data[:min(len(data), 8)])
	}
}

func TestRenderQuizPDF_NotFound(t *testing.T) {
	svc := NewExportService(newTestRepo(), testLogger())

	_, err := svc.RenderQuizPDF(context.Background(), "missing")
	if !errors.Is(err, ErrQuizNotFound) {
		t.Errorf("err = %v, want ErrQuizNotFound", err)
	}
}
