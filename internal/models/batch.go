package models

import "time"

// LanguageQuizRef links one language variant of a quiz to its fullQuizzes
// document.
type LanguageQuizRef struct {
	Language string `json:"language"`
	QuizID   string `json:"quizId"`
}

// QuizMetadataEntry is one logical quiz inside a TestBatch. Entries are
// addressed by their position in TestBatch.ExamDetails; there is no deletion
// or reordering path, so the index stays aligned with upload order.
type QuizMetadataEntry struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Duration      int               `json:"duration"`
	PositiveScore float64           `json:"positiveScore"`
	NegativeScore float64           `json:"negativeScore"`
	ThumbnailLink string            `json:"thumbnailLink"`
	PrimaryQuizID string            `json:"primaryQuizId"`
	QuizIDs       []LanguageQuizRef `json:"quizIds"`
	IsPremium     *bool             `json:"isPremium,omitempty"`
	SectionName   string            `json:"sectionName"`
	Type          string            `json:"type"`
}

// FindLanguage returns the index of the ref for language, or -1.
func (e *QuizMetadataEntry) FindLanguage(language string) int {
	for i := range e.QuizIDs {
		if e.QuizIDs[i].Language == language {
			return i
		}
	}
	return -1
}

// TestBatch aggregates metadata for every quiz uploaded to one tree node
// (section, topic, full mock or PYQ). One testBatches document per node,
// keyed by the derived batch id.
//
// Version is bumped on every write. It is informational for now: writes are
// still last-write-wins whole-document replaces.
type TestBatch struct {
	Type         string              `json:"type"`
	ExamID       string              `json:"examId"`
	SectionName  string              `json:"sectionName"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	Version      int                 `json:"version"`
	TotalQuizzes int                 `json:"totalQuizzes"`
	ExamDetails  []QuizMetadataEntry `json:"examDetails"`
}

// FindEntryByTitle returns the index of the entry whose title matches exactly
// (case- and whitespace-sensitive), or -1. Near-duplicate titles are treated
// as distinct quizzes.
func (b *TestBatch) FindEntryByTitle(title string) int {
	for i := range b.ExamDetails {
		if b.ExamDetails[i].Title == title {
			return i
		}
	}
	return -1
}
