package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizhive/quiz-content-service/internal/events"
	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/repositories"
	"github.com/quizhive/quiz-content-service/internal/slugid"
	"github.com/quizhive/quiz-content-service/internal/validator"
)

// uploadService implements UploadService.
//
// The upload pipeline is deliberately not transactional: question logs and the
// quiz document commit step by step, and a failure partway leaves the earlier
// writes in place. The deterministic quiz id makes a retry of the same file an
// overwrite rather than a duplicate, which is the recovery path.
type uploadService struct {
	repo      repositories.Repository
	batches   BatchService
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

// NewUploadService creates a new upload orchestrator.
func NewUploadService(repo repositories.Repository, batches BatchService, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) UploadService {
	return &uploadService{
		repo:      repo,
		batches:   batches,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// Upload ingests one quiz JSON file for one language variant of a node:
// validates shape and structure, logs every question as its own document,
// upserts the full quiz under its deterministic id and folds the summary into
// the node's batch. Returns the quiz document id.
func (s *uploadService) Upload(ctx context.Context, content []byte, req *UploadQuizRequest, userID string) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}

	raw, err := decodeQuizObject(content)
	if err != nil {
		return "", err
	}
	if verrs := s.validator.GetBusinessValidator().ValidateQuizStructure(raw); verrs != nil {
		return "", verrs
	}

	var quiz models.QuizContent
	if err := json.Unmarshal(content, &quiz); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidQuizFormat, err)
	}

	now := time.Now().UTC()

	// Each question gets a standalone log document; the generated id is
	// embedded back into the quiz content. Logs from a superseded upload of
	// the same quiz are left behind.
	for si := range quiz.Sections {
		for qi := range quiz.Sections[si].Questions {
			q := &quiz.Sections[si].Questions[qi]
			logID, err := s.repo.Question().AddLog(ctx, &models.QuestionLog{
				Question:      q.Question,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
				Explanation:   q.Explanation,
				UploadedBy:    userID,
				UploadedAt:    now,
				ExamID:        req.ExamID,
				Language:      req.Language,
			})
			if err != nil {
				return "", fmt.Errorf("failed to log question %d of section %d: %w", qi, si, err)
			}
			q.QuestionID = logID
		}
	}

	quiz.ExamID = req.ExamID
	quiz.NodeID = req.NodeID
	quiz.NodeType = models.NodeType(req.NodeType)
	quiz.Language = req.Language
	quiz.UploadedBy = userID
	quiz.UploadedAt = now

	quizID := slugid.QuizDocID(req.ExamID, req.Language, req.NodeType, quiz.Title)
	if err := s.repo.Quiz().Save(ctx, quizID, &quiz); err != nil {
		return "", fmt.Errorf("failed to save quiz %s: %w", quizID, err)
	}

	err = s.batches.UpsertQuizMetadata(ctx, req.NodeID, QuizUploadInfo{
		Title:         quiz.Title,
		Description:   quiz.Description,
		Duration:      quiz.Duration,
		PositiveScore: quiz.PositiveScore,
		NegativeScore: quiz.NegativeScore,
		ThumbnailLink: quiz.ThumbnailLink,
		QuizID:        quizID,
		Language:      req.Language,
		ExamID:        req.ExamID,
		NodeType:      models.NodeType(req.NodeType),
	})
	if err != nil {
		return "", err
	}

	s.publishEvent(ctx, events.TypeQuizUploaded, map[string]interface{}{
		"quizId":   quizID,
		"batchId":  req.NodeID,
		"examId":   req.ExamID,
		"language": req.Language,
		"title":    quiz.Title,
	})

	s.logger.Info("quiz uploaded",
		"quiz_id", quizID, "batch_id", req.NodeID, "language", req.Language, "uploaded_by", userID)
	return quizID, nil
}

// decodeQuizObject parses the upload and insists on a single JSON object.
// Arrays, primitives and trailing garbage are rejected as format errors before
// structural validation runs.
func decodeQuizObject(content []byte) (map[string]interface{}, error) {
	var raw interface{}
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuizFormat, err)
	}
	doc, ok := raw.(map[string]interface{})
	if !ok {
		return nil, ErrInvalidQuizFormat
	}
	return doc, nil
}

func (s *uploadService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("failed to publish event", "event_type", eventType, "error", err)
	}
}
