package models

import "time"

// QuizQuestion is one question inside an uploaded quiz. QuestionID is filled
// in during upload, after the question-log document has been written.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	QuestionID    string   `json:"questionId,omitempty"`
}

// QuizSection groups questions inside a quiz document.
type QuizSection struct {
	Name      string         `json:"name"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizContent is one fullQuizzes document: the complete question/answer
// payload for a single language variant of a quiz. The document id is
// deterministic, so re-uploading the same title/language/node overwrites the
// previous content.
type QuizContent struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Duration      int           `json:"duration"`
	PositiveScore float64       `json:"positiveScore"`
	NegativeScore float64       `json:"negativeScore"`
	ThumbnailLink string        `json:"thumbnailLink"`
	IsPremium     bool          `json:"isPremium"`
	Sections      []QuizSection `json:"sections"`

	ExamID     string    `json:"examId"`
	NodeID     string    `json:"nodeId"`
	NodeType   NodeType  `json:"nodeType"`
	Language   string    `json:"language"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// QuestionLog is one questions document: a standalone copy of a single
// uploaded question with uploader provenance. Logs from a superseded upload
// are not cleaned up.
type QuestionLog struct {
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer int       `json:"correctAnswer"`
	Explanation   string    `json:"explanation"`
	UploadedBy    string    `json:"uploadedBy"`
	UploadedAt    time.Time `json:"uploadedAt"`
	ExamID        string    `json:"examId"`
	Language      string    `json:"language"`
}

// DownloadableQuiz is the shape served to the admin UI when a quiz is
// downloaded: content fields only, server-side metadata stripped.
type DownloadableQuiz struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Duration      int           `json:"duration"`
	PositiveScore float64       `json:"positiveScore"`
	NegativeScore float64       `json:"negativeScore"`
	ThumbnailLink string        `json:"thumbnailLink"`
	Sections      []QuizSection `json:"sections"`
}
