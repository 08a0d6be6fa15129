package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BusinessValidator handles rules that go beyond struct tags, in particular
// the structural validation of uploaded quiz files. Validation is
// all-or-nothing: the first violation fails the whole upload, nothing is
// partially imported.
type BusinessValidator struct {
	validate *validator.Validate
}

// NewBusinessValidator creates a new business validator
func NewBusinessValidator() *BusinessValidator {
	return &BusinessValidator{validate: validator.New()}
}

// Validate validates struct tags for any request type.
func (bv *BusinessValidator) Validate(s interface{}) ValidationErrors {
	if err := bv.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// ValidateQuizStructure checks a decoded quiz upload. It operates on the
// generic JSON form so that missing fields, wrong types and wrong shapes can
// be told apart from zero values.
func (bv *BusinessValidator) ValidateQuizStructure(doc map[string]interface{}) ValidationErrors {
	if _, ok := doc["title"].(string); !ok {
		return ValidationErrors{{Field: "title", Message: "quiz requires a title"}}
	}

	rawSections, ok := doc["sections"].([]interface{})
	if !ok {
		return ValidationErrors{{Field: "sections", Message: "quiz requires a sections array"}}
	}

	for si, rawSection := range rawSections {
		section, ok := rawSection.(map[string]interface{})
		if !ok {
			return sectionError(si, "section must be an object")
		}
		if name, ok := section["name"].(string); !ok || name == "" {
			return sectionError(si, "section requires a name")
		}
		questions, ok := section["questions"].([]interface{})
		if !ok {
			return sectionError(si, "section requires a questions array")
		}

		for qi, rawQuestion := range questions {
			question, ok := rawQuestion.(map[string]interface{})
			if !ok {
				return questionError(si, qi, "question must be an object")
			}
			if _, ok := question["question"]; !ok {
				return questionError(si, qi, "question text is required")
			}
			if _, ok := question["options"].([]interface{}); !ok {
				return questionError(si, qi, "options must be a list")
			}
			// JSON numbers decode as float64
			if _, ok := question["correctAnswer"].(float64); !ok {
				return questionError(si, qi, "correctAnswer must be a number")
			}
			if _, ok := question["explanation"]; !ok {
				return questionError(si, qi, "explanation is required")
			}
		}
	}

	return nil
}

func sectionError(sectionIndex int, msg string) ValidationErrors {
	return ValidationErrors{{
		Field:   fmt.Sprintf("sections[%d]", sectionIndex),
		Message: msg,
	}}
}

func questionError(sectionIndex, questionIndex int, msg string) ValidationErrors {
	return ValidationErrors{{
		Field:   fmt.Sprintf("sections[%d].questions[%d]", sectionIndex, questionIndex),
		Message: msg,
	}}
}
