package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizhive/quiz-content-service/internal/events"
	"github.com/quizhive/quiz-content-service/internal/models"
	"github.com/quizhive/quiz-content-service/internal/repositories"
	"github.com/quizhive/quiz-content-service/internal/slugid"
	"github.com/quizhive/quiz-content-service/internal/validator"
)

// organizerService implements OrganizerService on the organizer collection.
//
// Sections and topics live embedded in the exam document, so every append is a
// read-modify-write of the whole document. Concurrent appends to the same exam
// race with last-write-wins; contention is rare in this admin tool and the
// store offers no cheap alternative, so the race is documented, not mitigated.
type organizerService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

// NewOrganizerService creates a new organizer service.
func NewOrganizerService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) OrganizerService {
	return &organizerService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// CreateExam creates the organizer document for a new exam plus its two
// exam-level batches (full mock and previous-year questions). The store has no
// uniqueness constraint, so existence is checked before the write.
func (s *organizerService) CreateExam(ctx context.Context, req *CreateExamRequest) (*CreateExamResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	examID := slugid.ExamID(req.Name)
	if examID == "" {
		return nil, validator.ValidationErrors{{Field: "name", Message: "name must contain at least one letter or digit"}}
	}

	exists, err := s.repo.Exam().Exists(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to check exam existence: %w", err)
	}
	if exists {
		return nil, ErrExamAlreadyExists
	}

	now := time.Now().UTC()
	fullMockID := examID + "_full_mock"
	pyqID := examID + "_pyqs"

	exam := &models.Exam{
		Name:      req.Name,
		FullMock:  fullMockID,
		PYQs:      pyqID,
		Sections:  []models.Section{},
		CreatedAt: now,
	}
	if err := s.repo.Exam().Save(ctx, examID, exam); err != nil {
		return nil, fmt.Errorf("failed to create exam %s: %w", examID, err)
	}

	if err := s.repo.Batch().Save(ctx, fullMockID, newEmptyBatch(models.NodeFullMock, examID, now)); err != nil {
		return nil, fmt.Errorf("failed to create full mock batch for exam %s: %w", examID, err)
	}
	if err := s.repo.Batch().Save(ctx, pyqID, newEmptyBatch(models.NodePYQ, examID, now)); err != nil {
		return nil, fmt.Errorf("failed to create pyq batch for exam %s: %w", examID, err)
	}

	s.publishEvent(ctx, events.TypeExamCreated, map[string]interface{}{
		"examId": examID,
		"name":   req.Name,
	})

	s.logger.Info("exam created", "exam_id", examID)

	return &CreateExamResult{
		ExamID:          examID,
		FullMockBatchID: fullMockID,
		PYQBatchID:      pyqID,
	}, nil
}

// CreateSection adds a section under an exam and creates the section's batch
// document. The returned id is the derived section batch id; names that derive
// the batch id of an existing section are rejected.
func (s *organizerService) CreateSection(ctx context.Context, req *CreateSectionRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}

	exam, err := s.repo.Exam().GetByID(ctx, req.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrExamNotFound
		}
		return "", fmt.Errorf("failed to load exam %s: %w", req.ExamID, err)
	}

	sectionID := slugid.SectionID(req.ExamID, req.Name)
	if exam.FindSection(sectionID) >= 0 {
		return "", ErrSectionAlreadyExists
	}
	now := time.Now().UTC()

	if err := s.repo.Batch().Save(ctx, sectionID, newEmptyBatch(models.NodeSection, req.ExamID, now)); err != nil {
		return "", fmt.Errorf("failed to create batch for section %s: %w", sectionID, err)
	}

	exam.Sections = append(exam.Sections, models.Section{
		Name:           req.Name,
		SectionBatchID: sectionID,
		Topics:         []models.Topic{},
		CreatedAt:      now,
	})
	if err := s.repo.Exam().Save(ctx, req.ExamID, exam); err != nil {
		return "", fmt.Errorf("failed to save exam %s: %w", req.ExamID, err)
	}

	s.logger.Info("section created", "exam_id", req.ExamID, "section_id", sectionID)
	return sectionID, nil
}

// CreateTopic adds a topic under an existing section, matched by its batch id,
// and creates the topic's batch document. Names that derive the batch id of an
// existing topic in the section are rejected.
func (s *organizerService) CreateTopic(ctx context.Context, req *CreateTopicRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}

	exam, err := s.repo.Exam().GetByID(ctx, req.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrExamNotFound
		}
		return "", fmt.Errorf("failed to load exam %s: %w", req.ExamID, err)
	}

	si := exam.FindSection(req.SectionID)
	if si < 0 {
		return "", ErrSectionNotFound
	}

	topicID := slugid.TopicID(req.SectionID, req.Name)
	if exam.Sections[si].FindTopic(topicID) >= 0 {
		return "", ErrTopicAlreadyExists
	}
	now := time.Now().UTC()

	if err := s.repo.Batch().Save(ctx, topicID, newEmptyBatch(models.NodeTopic, req.ExamID, now)); err != nil {
		return "", fmt.Errorf("failed to create batch for topic %s: %w", topicID, err)
	}

	exam.Sections[si].Topics = append(exam.Sections[si].Topics, models.Topic{
		Name:         req.Name,
		TopicBatchID: topicID,
		CreatedAt:    now,
	})
	if err := s.repo.Exam().Save(ctx, req.ExamID, exam); err != nil {
		return "", fmt.Errorf("failed to save exam %s: %w", req.ExamID, err)
	}

	s.logger.Info("topic created", "exam_id", req.ExamID, "section_id", req.SectionID, "topic_id", topicID)
	return topicID, nil
}

// ListExams returns every organizer document with its id.
func (s *organizerService) ListExams(ctx context.Context) ([]ExamSummary, error) {
	exams, ids, err := s.repo.Exam().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	summaries := make([]ExamSummary, 0, len(exams))
	for i, exam := range exams {
		summaries = append(summaries, ExamSummary{ID: ids[i], Exam: exam})
	}
	return summaries, nil
}

// publishEvent publishes best-effort; a broker outage never fails the write
// that triggered it.
func (s *organizerService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("failed to publish event", "event_type", eventType, "error", err)
	}
}

// newEmptyBatch builds the initial batch document created alongside a new
// hierarchy node, before any quiz is uploaded to it.
func newEmptyBatch(nodeType models.NodeType, examID string, now time.Time) *models.TestBatch {
	return &models.TestBatch{
		Type:        string(nodeType),
		ExamID:      examID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Version:     1,
		ExamDetails: []models.QuizMetadataEntry{},
	}
}
