package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/repositories"
)

// exportService implements ExportService: admin-facing downloads of quiz
// content and batch metadata.
type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

// NewExportService creates a new export service.
func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// DownloadQuiz returns one quiz in the editable download shape, with the
// server-side bookkeeping fields stripped.
func (s *exportService) DownloadQuiz(ctx context.Context, quizID string) (*models.DownloadableQuiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %s: %w", quizID, err)
	}

	return &models.DownloadableQuiz{
		Title:         quiz.Title,
		Description:   quiz.Description,
		Duration:      quiz.Duration,
		PositiveScore: quiz.PositiveScore,
		NegativeScore: quiz.NegativeScore,
		ThumbnailLink: quiz.ThumbnailLink,
		Sections:      quiz.Sections,
	}, nil
}

// ExportBatchXLSX renders one batch's metadata as a single-sheet workbook, one
// row per entry with a column per language variant count.
func (s *exportService) ExportBatchXLSX(ctx context.Context, batchID string) ([]byte, error) {
	batch, err := s.repo.Batch().GetByID(ctx, batchID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to load batch %s: %w", batchID, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	header := []interface{}{
		"Index", "Title", "Description", "Duration", "Positive Score",
		"Negative Score", "Primary Quiz ID", "Languages", "Premium",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, entry := range batch.ExamDetails {
		languages := make([]string, 0, len(entry.QuizIDs))
		for _, ref := range entry.QuizIDs {
			languages = append(languages, ref.Language)
		}

		premium := ""
		if entry.IsPremium != nil {
			premium = fmt.Sprintf("%t", *entry.IsPremium)
		}

		row := []interface{}{
			i, entry.Title, entry.Description, entry.Duration, entry.PositiveScore,
			entry.NegativeScore, entry.PrimaryQuizID, strings.Join(languages, ", "), premium,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell for row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("batch exported", "batch_id", batchID, "entries", len(batch.ExamDetails))
	return buf.Bytes(), nil
}

// RenderQuizPDF renders one quiz document as a printable A4 PDF: every section
// with its questions, options, the correct answer and the explanation.
func (s *exportService) RenderQuizPDF(ctx context.Context, quizID string) ([]byte, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, quizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz %s: %w", quizID, err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, quiz.Title, "", "L", false)
	if quiz.Description != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, quiz.Description, "", "L", false)
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Duration: %d min    Marking: +%.2f / -%.2f",
		quiz.Duration, quiz.PositiveScore, quiz.NegativeScore), "", "L", false)
	pdf.Ln(4)

	questionNo := 0
	for _, section := range quiz.Sections {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, section.Name, "", "L", false)
		pdf.Ln(1)

		for _, q := range section.Questions {
			questionNo++
			pdf.SetFont("Helvetica", "B", 11)
			pdf.MultiCell(0, 6, fmt.Sprintf("Q%d. %s", questionNo, q.Question), "", "L", false)

			pdf.SetFont("Helvetica", "", 10)
			for oi, option := range q.Options {
				pdf.MultiCell(0, 5, fmt.Sprintf("    %c) %s", 'A'+rune(oi), option), "", "L", false)
			}
			if q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options) {
				pdf.SetFont("Helvetica", "I", 10)
				pdf.MultiCell(0, 5, fmt.Sprintf("Answer: %c", 'A'+rune(q.CorrectAnswer)), "", "L", false)
			}
			if q.Explanation != "" {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.MultiCell(0, 5, "Explanation: "+q.Explanation, "", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf for quiz %s: %w", quizID, err)
	}

	s.logger.Info("quiz rendered as pdf", "quiz_id", quizID, "bytes", buf.Len())
	return buf.Bytes(), nil
}
