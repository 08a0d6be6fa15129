package validator

// CreateExamRequest creates a top-level exam category.
type CreateExamRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CreateSectionRequest adds a section under an existing exam.
type CreateSectionRequest struct {
	ExamID string `json:"examId" validate:"required"`
	Name   string `json:"name" validate:"required,min=1,max=200"`
}

// CreateTopicRequest adds a topic under an existing section.
type CreateTopicRequest struct {
	ExamID    string `json:"examId" validate:"required"`
	SectionID string `json:"sectionId" validate:"required"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
}

// QuizMetadataPatch carries the editable fields of one batch entry. Zero
// values mean "leave unchanged": the merge keeps the old value unless the new
// one is truthy, so a score cannot be edited to 0 through this path.
type QuizMetadataPatch struct {
	Title         string  `json:"title" validate:"omitempty,max=300"`
	Description   string  `json:"description" validate:"omitempty,max=2000"`
	Duration      int     `json:"duration" validate:"omitempty,min=0,max=600"`
	PositiveScore float64 `json:"positiveScore" validate:"omitempty,min=0"`
	NegativeScore float64 `json:"negativeScore" validate:"omitempty,min=0"`
}

// UpdateQuizRequest edits one batch entry, addressed by position.
type UpdateQuizRequest struct {
	BatchID     string            `json:"batchId" validate:"required"`
	QuizIndex   int               `json:"quizIndex" validate:"min=0"`
	UpdatedData QuizMetadataPatch `json:"updatedData"`
}

// EntryUpdate is one element of a bulk edit.
type EntryUpdate struct {
	QuizIndex int               `json:"quizIndex" validate:"min=0"`
	Fields    QuizMetadataPatch `json:"fields"`
}

// UpdateAllRequest applies the same kind of edit across many batch entries.
type UpdateAllRequest struct {
	BatchID string        `json:"batchId" validate:"required"`
	Updates []EntryUpdate `json:"updates" validate:"required,min=1,dive"`
}

// TogglePremiumRequest flips the premium flag on one batch entry and all of
// its language variants.
type TogglePremiumRequest struct {
	BatchID   string `json:"batchId" validate:"required"`
	QuizIndex int    `json:"quizIndex" validate:"min=0"`
	IsPremium bool   `json:"isPremium"`
}

// UploadQuizRequest carries the multipart form fields accompanying a quiz
// JSON file.
type UploadQuizRequest struct {
	NodeID   string `form:"nodeId" validate:"required"`
	NodeType string `form:"nodeType" validate:"required,oneof=full_mock pyq section topic"`
	ExamID   string `form:"examId" validate:"required"`
	Language string `form:"language" validate:"required,lowercase"`
}

// GeneratePDFRequest renders one quiz document as a PDF.
type GeneratePDFRequest struct {
	DocID string `json:"docId" validate:"required"`
}
