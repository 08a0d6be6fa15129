// Package slugid derives the deterministic document identifiers used across
// the organizer, testBatches and fullQuizzes collections. Identical inputs
// always produce identical ids, which is what makes quiz re-uploads upserts
// instead of duplicates.
package slugid

import "strings"

// maxTitleLength bounds the sanitized title segment of a quiz document id.
// Distinct titles longer than this can collide; accepted limitation.
const maxTitleLength = 50

// Sanitize lowercases raw, replaces every character outside [a-z0-9] with an
// underscore, collapses underscore runs and trims leading/trailing underscores.
// Sanitize is idempotent.
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	lastUnderscore := false
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}

// ExamID derives the organizer document id for an exam name.
func ExamID(name string) string {
	return Sanitize(name)
}

// SectionID derives the batch id for a section, which doubles as the primary
// key of its testBatches document.
func SectionID(examID, name string) string {
	return Sanitize(examID) + "_section_" + Sanitize(name)
}

// TopicID derives the batch id for a topic under a section.
func TopicID(sectionID, name string) string {
	return Sanitize(sectionID) + "_topic_" + Sanitize(name)
}

// QuizDocID derives the fullQuizzes document id for one language variant of a
// quiz. The title segment is truncated to keep ids well under the store's
// document id limit.
func QuizDocID(examID, language, nodeType, title string) string {
	sanitized := Sanitize(title)
	if len(sanitized) > maxTitleLength {
		sanitized = sanitized[:maxTitleLength]
	}
	return examID + "_" + language + "_" + nodeType + "_" + sanitized
}
